package editor

import (
	"regexp"
	"strings"

	"github.com/giahoa6/crm/internal/model"
)

var brandPrefix = regexp.MustCompile(`(?i)^Honda\s`)

// Selection is the two-level model selector state, empty Model means nothing selected
type Selection struct {
	Model   string `json:"model"`
	Variant string `json:"variant"`
}

// Decompose reconstructs selection from stored free-text model.
// Entries are tried in alphabetical order: the first one whose remainder is empty or
// a known variant wins, otherwise the first entry prefixing the text is taken without variant.
// This differs from a plain first-prefix lookup, which reads "SH Mode 125cc" as model SH
// without variant. The exact pass keeps Decompose(Compose(sel)) == sel for every catalog entry.
func Decompose(stored string) Selection {
	rest := brandPrefix.ReplaceAllString(stored, "")

	var fallback *Selection
	for _, m := range model.Motorcycles() {
		if !strings.HasPrefix(rest, m.Name) {
			continue
		}

		remainder := strings.TrimSpace(rest[len(m.Name):])
		if remainder == "" || m.HasVariant(remainder) {
			sel := Selection{Model: m.Name}
			if remainder != "" {
				sel.Variant = remainder
			}
			return sel
		}

		if fallback == nil {
			fallback = &Selection{Model: m.Name}
		}
	}

	if fallback != nil {
		return *fallback
	}
	return Selection{}
}

// Compose builds free-text model from selection
func Compose(sel Selection) string {
	if sel.Model == "" {
		return ""
	}

	m, ok := model.FindMotorcycle(sel.Model)
	if !ok {
		return ""
	}

	if len(m.Variants) == 0 || sel.Variant == "" {
		return m.Name
	}
	return m.Name + " " + sel.Variant
}
