package js2e

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Emission orderings accepted by Options.EmitSort.
const (
	EmitSortLexicographic    = "lexicographic"
	EmitSortDeclarationOrder = "declaration_order"
)

// Options configures a whole-program run. The zero value is usable:
// empty root module, lexicographic emission, warnings stay warnings.
type Options struct {
	// RootModule is the module prefix applied to every emitted file.
	RootModule string `yaml:"root_module"`
	// EmitSort selects the type walk order; both choices are
	// deterministic.
	EmitSort string `yaml:"emit_sort"`
	// Strict escalates every warning to an error.
	Strict bool `yaml:"strict"`
}

// Normalize fills defaulted fields and rejects unknown values.
func (o Options) Normalize() (Options, error) {
	if o.EmitSort == "" {
		o.EmitSort = EmitSortLexicographic
	}
	switch o.EmitSort {
	case EmitSortLexicographic, EmitSortDeclarationOrder:
	default:
		return o, fmt.Errorf("js2e: unknown emit_sort %q", o.EmitSort)
	}
	return o, nil
}

// LoadOptions reads Options from a YAML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("js2e: read options: %w", err)
	}
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("js2e: parse options: %w", err)
	}
	return o.Normalize()
}
