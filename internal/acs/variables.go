package acs

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed variables.yaml
var variablesYAML []byte

// Variable is one catalog entry mapping an ACS code to its display label.
type Variable struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
	Group string `yaml:"group"`
	Color string `yaml:"color"`
}

// Variable groups used by the pipeline.
const (
	GroupIncome = "income"
	GroupRace   = "race"
)

// Catalog is the set of ACS variables this pipeline works with.
type Catalog struct {
	Variables []Variable `yaml:"variables"`

	byCode map[string]Variable
}

// LoadCatalog parses the embedded variable catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(variablesYAML, &c); err != nil {
		return nil, eris.Wrap(err, "acs: parse variable catalog")
	}
	c.byCode = make(map[string]Variable, len(c.Variables))
	for _, v := range c.Variables {
		c.byCode[v.Code] = v
	}
	return &c, nil
}

// Group returns the catalog variables belonging to one group,
// in catalog order.
func (c *Catalog) Group(group string) []Variable {
	var out []Variable
	for _, v := range c.Variables {
		if v.Group == group {
			out = append(out, v)
		}
	}
	return out
}

// Codes returns the variable codes for one group, in catalog order.
func (c *Catalog) Codes(group string) []string {
	var out []string
	for _, v := range c.Group(group) {
		out = append(out, v.Code)
	}
	return out
}

// Label returns the display label for a variable code, falling back to the
// code itself for unknown variables.
func (c *Catalog) Label(code string) string {
	if v, ok := c.byCode[code]; ok {
		return v.Label
	}
	return code
}

// Color returns the configured map color for a variable code,
// or empty string if none.
func (c *Catalog) Color(code string) string {
	return c.byCode[code].Color
}
