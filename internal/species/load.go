package species

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var titleCaser = cases.Title(language.English)

// ruleFile is the YAML document shape for an external rule table.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadTable reads a rule table from a YAML file. Species names are normalized
// to title case so hand-edited tables render consistently; botanical names in
// parentheses are left as written.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "species: read rule table %s", path)
	}

	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "species: parse rule table %s", path)
	}
	if len(f.Rules) == 0 {
		return nil, eris.Errorf("species: rule table %s has no rules", path)
	}

	for i := range f.Rules {
		r := &f.Rules[i]
		if r.MinNDVI < 0 || r.MinNDVI > 1 || r.MinWater < 0 || r.MinWater > 1 || r.MinSoil < 0 || r.MinSoil > 1 {
			return nil, eris.Errorf("species: rule %q has thresholds outside [0,1]", r.Name)
		}
		if len(r.Species) == 0 {
			return nil, eris.Errorf("species: rule %q lists no species", r.Name)
		}
		for j, sp := range r.Species {
			r.Species[j] = NormalizeName(sp)
		}
	}

	return NewTable(f.Rules), nil
}

// NormalizeName title-cases the common-name part of a species entry, leaving
// any parenthesized botanical name untouched.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	open := strings.Index(name, "(")
	if open < 0 {
		return titleCaser.String(name)
	}
	common := strings.TrimSpace(name[:open])
	return titleCaser.String(common) + " " + name[open:]
}
