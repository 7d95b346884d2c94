// Package species recommends plantation species from environmental factors
// using an ordered, data-driven rule table.
package species

// Rule maps minimum environmental thresholds to a set of species. A rule
// matches when every factor exceeds its minimum; a zero minimum always
// passes, so an all-zero rule acts as a catch-all.
type Rule struct {
	Name     string   `yaml:"name"`
	MinNDVI  float64  `yaml:"min_ndvi"`
	MinWater float64  `yaml:"min_water"`
	MinSoil  float64  `yaml:"min_soil"`
	Species  []string `yaml:"species"`
}

// Matches reports whether the factors satisfy the rule's thresholds.
func (r Rule) Matches(ndvi, water, soil float64) bool {
	return exceeds(ndvi, r.MinNDVI) && exceeds(water, r.MinWater) && exceeds(soil, r.MinSoil)
}

func exceeds(v, floor float64) bool {
	return floor <= 0 || v > floor
}

// Table is an ordered list of rules, evaluated uniformly. Read-only after
// construction.
type Table struct {
	rules []Rule
}

// NewTable builds a table from the given rules, preserving order.
func NewTable(rules []Rule) *Table {
	return &Table{rules: rules}
}

// DefaultTable returns the built-in Indian native species rule table.
func DefaultTable() *Table {
	return NewTable([]Rule{
		{
			Name:     "excellent",
			MinNDVI:  0.7,
			MinWater: 0.6,
			MinSoil:  0.7,
			Species: []string{
				"Neem (Azadirachta indica)",
				"Bamboo",
				"Peepal (Ficus religiosa)",
				"Banyan (Ficus benghalensis)",
				"Arjun (Terminalia arjuna)",
			},
		},
		{
			Name:     "good",
			MinNDVI:  0.5,
			MinWater: 0.4,
			MinSoil:  0.5,
			Species: []string{
				"Babool (Acacia nilotica)",
				"Khejri (Prosopis cineraria)",
				"Ber (Ziziphus mauritiana)",
				"Amaltas (Cassia fistula)",
			},
		},
		{
			Name:     "moderate",
			MinNDVI:  0.3,
			MinWater: 0.3,
			MinSoil:  0,
			Species: []string{
				"Babool (Acacia nilotica)",
				"Khejri (Prosopis cineraria)",
				"Dhak (Butea monosperma)",
				"Khair (Acacia catechu)",
			},
		},
		{
			Name:     "hardy",
			MinNDVI:  0,
			MinWater: 0,
			MinSoil:  0,
			Species: []string{
				"Babool (Acacia nilotica)",
				"Khejri (Prosopis cineraria)",
				"Date Palm",
			},
		},
	})
}

// Rules returns a copy of the rule list.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Recommend evaluates every rule against the factors and collects the species
// of all matching rules in rule order, deduplicated. Identical inputs always
// yield an identical, order-stable list.
func (t *Table) Recommend(ndvi, water, soil float64) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range t.rules {
		if !r.Matches(ndvi, water, soil) {
			continue
		}
		for _, sp := range r.Species {
			if seen[sp] {
				continue
			}
			seen[sp] = true
			out = append(out, sp)
		}
	}
	return out
}
