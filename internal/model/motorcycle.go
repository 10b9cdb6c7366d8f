package model

import "sort"

// Motorcycle is a catalog entry with optional variants
type Motorcycle struct {
	Name     string   `json:"name"`
	Variants []string `json:"variants"`
}

// HasVariant reports whether variant is listed for the motorcycle
func (m Motorcycle) HasVariant(variant string) bool {
	for _, v := range m.Variants {
		if v == variant {
			return true
		}
	}
	return false
}

var motorcycles = sortedMotorcycles([]Motorcycle{
	{Name: "Air Blade", Variants: []string{"125cc", "160cc"}},
	{Name: "Blade", Variants: []string{}},
	{Name: "Future 125 FI", Variants: []string{}},
	{Name: "LEAD 125 FI", Variants: []string{}},
	{Name: "SH", Variants: []string{"125i", "160i"}},
	{Name: "SH Mode 125cc", Variants: []string{}},
	{Name: "Vario", Variants: []string{"125cc", "160cc"}},
	{Name: "Vision", Variants: []string{}},
	{Name: "Wave Alpha 110cc", Variants: []string{}},
	{Name: "Wave RSX FI 110cc", Variants: []string{}},
	{Name: "Winner", Variants: []string{"X", "R"}},
})

func sortedMotorcycles(mm []Motorcycle) []Motorcycle {
	sort.SliceStable(mm, func(i, j int) bool {
		return mm[i].Name < mm[j].Name
	})
	return mm
}

// Motorcycles returns copy of the built-in catalog sorted by name
func Motorcycles() []Motorcycle {
	res := make([]Motorcycle, len(motorcycles))
	for i, m := range motorcycles {
		res[i] = Motorcycle{Name: m.Name, Variants: append([]string{}, m.Variants...)}
	}
	return res
}

// FindMotorcycle looks up catalog entry by exact name
func FindMotorcycle(name string) (Motorcycle, bool) {
	for _, m := range motorcycles {
		if m.Name == name {
			return m, true
		}
	}
	return Motorcycle{}, false
}
