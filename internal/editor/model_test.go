package editor

import (
	"testing"

	"github.com/giahoa6/crm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDecomposeRoundtrip(t *testing.T) {
	for _, m := range model.Motorcycles() {
		selections := []Selection{{Model: m.Name}}
		if len(m.Variants) > 0 {
			selections = selections[:0]
			for _, v := range m.Variants {
				selections = append(selections, Selection{Model: m.Name, Variant: v})
			}
		}

		for _, sel := range selections {
			composed := Compose(sel)
			require.Equal(t, sel, Decompose(composed), "roundtrip failed for %q", composed)
		}
	}
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "", Compose(Selection{}), "no model must clear text")
	assert.Equal(t, "Vision", Compose(Selection{Model: "Vision"}), "model without variants must be its name")
	assert.Equal(t, "SH 125i", Compose(Selection{Model: "SH", Variant: "125i"}), "variant must be joined by single space")
	assert.Equal(t, "", Compose(Selection{Model: "Exciter"}), "unknown model must not be composed")
}

func TestDecomposeBrandPrefix(t *testing.T) {
	for _, raw := range []string{"Vario 125cc", "Honda Vario 125cc", "honda Vario 125cc", "HONDA Vario 125cc"} {
		assert.Equal(t, Selection{Model: "Vario", Variant: "125cc"}, Decompose(raw), "unexpected selection for %q", raw)
	}
	assert.Equal(t, Decompose("Winner X"), Decompose("hOnDa Winner X"), "brand prefix must not change result")
}

func TestDecomposeUnknownModel(t *testing.T) {
	assert.Equal(t, Selection{}, Decompose("Yamaha Exciter"), "unknown model must leave selection empty")
	assert.Equal(t, Selection{}, Decompose(""), "empty text must leave selection empty")
}

func TestDecomposeUnknownVariant(t *testing.T) {
	assert.Equal(t, Selection{Model: "Air Blade"}, Decompose("Air Blade 150cc"), "unknown variant must stay unselected")
	assert.Equal(t, Selection{Model: "SH"}, Decompose("SH"), "model without variant text must select no variant")
}

func TestDecomposePrefixAmbiguity(t *testing.T) {
	t.Log("entry whose remainder is exact wins over a shorter prefix")
	{
		assert.Equal(t, Selection{Model: "SH Mode 125cc"}, Decompose("SH Mode 125cc"), "full name must win over SH")
		assert.Equal(t, Selection{Model: "SH", Variant: "160i"}, Decompose("Honda SH 160i"), "SH variant must still be found")
	}

	t.Log("without exact remainder the first alphabetical prefix is taken")
	{
		assert.Equal(t, Selection{Model: "SH"}, Decompose("SH Mode"), "first prefix match must be used as fallback")
		assert.Equal(t, Selection{Model: "SH"}, Decompose("SH Mode 125cc 2024"), "first prefix match must be used as fallback")
	}
}
