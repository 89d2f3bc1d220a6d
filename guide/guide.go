// Package guide holds the runnable examples of the prompt engineering guide:
// sample inputs from samples.yml paired with the prompt builders they use.
package guide

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"

	"github.com/birmacher/prompt-guide/llm"
	"github.com/birmacher/prompt-guide/logger"
	"gopkg.in/yaml.v3"
)

var ErrUnknownExample = errors.New("unknown example")

//go:embed samples.yml
var samplesYAML []byte

// Example is one technique from the guide with its sample input.
type Example struct {
	Name        string            `yaml:"name"`
	Section     string            `yaml:"section"`
	Description string            `yaml:"description"`
	Input       string            `yaml:"input"`
	Params      map[string]string `yaml:"params"`

	build builder
}

type catalog struct {
	Examples []Example `yaml:"examples"`
}

var examples = mustLoad(samplesYAML, builders)

// All returns every example in guide order.
func All() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}

// Lookup returns the example called name.
func Lookup(name string) (Example, error) {
	for _, ex := range examples {
		if ex.Name == name {
			return ex, nil
		}
	}
	return Example{}, fmt.Errorf("%w: %s", ErrUnknownExample, name)
}

// Sections returns the section names in the order they first appear.
func Sections() []string {
	var sections []string
	seen := map[string]bool{}
	for _, ex := range examples {
		if !seen[ex.Section] {
			seen[ex.Section] = true
			sections = append(sections, ex.Section)
		}
	}
	return sections
}

// BySection returns the examples of one section in guide order.
func BySection(section string) []Example {
	var out []Example
	for _, ex := range examples {
		if ex.Section == section {
			out = append(out, ex)
		}
	}
	return out
}

// Build returns the prompt for the sample input and parameters.
func (e Example) Build() string {
	return e.BuildWith("", nil)
}

// BuildWith returns the prompt for input, or the sample input when input is
// empty. Overrides replace parameters of the same name.
func (e Example) BuildWith(input string, overrides map[string]string) string {
	if input == "" {
		input = e.Input
	}
	params := make(map[string]string, len(e.Params)+len(overrides))
	maps.Copy(params, e.Params)
	maps.Copy(params, overrides)
	return e.build(input, params)
}

// Run builds the example's prompt and sends it to model through client.
func Run(ctx context.Context, client llm.LLM, model string, e Example, input string, overrides map[string]string) (string, error) {
	p := e.BuildWith(input, overrides)
	logger.Debugf("Running example %s (%s) with model %s", e.Name, e.Section, model)

	content, err := llm.GetCompletion(ctx, client, p, model)
	if err != nil {
		return "", fmt.Errorf("example %s: %w", e.Name, err)
	}
	return content, nil
}

// mustLoad parses the embedded catalog and pairs every entry with its
// builder. A mismatch between the two is a programming error.
func mustLoad(data []byte, builders map[string]builder) []Example {
	loaded, err := load(data, builders)
	if err != nil {
		panic(err)
	}
	return loaded
}

func load(data []byte, builders map[string]builder) ([]Example, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse examples: %w", err)
	}

	seen := make(map[string]bool, len(c.Examples))
	for i := range c.Examples {
		ex := &c.Examples[i]
		if seen[ex.Name] {
			return nil, fmt.Errorf("duplicate example %q", ex.Name)
		}
		seen[ex.Name] = true

		b, ok := builders[ex.Name]
		if !ok {
			return nil, fmt.Errorf("example %q has no prompt builder", ex.Name)
		}
		ex.build = b
	}

	for name := range builders {
		if !seen[name] {
			return nil, fmt.Errorf("prompt builder %q has no sample", name)
		}
	}
	return c.Examples, nil
}
