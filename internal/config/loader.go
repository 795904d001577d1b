package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	reflexerrors "github.com/alexisbeaulieu97/reflex/pkg/errors"
)

const (
	fieldScale       = "scale"
	fieldBreakpoints = "breakpoints"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadOverride reads an ancestor override from a YAML (.yaml, .yml) or HCL (.hcl) file.
//
// Each top-level field is decoded on its own: a field with the wrong shape is
// left nil and recorded in Override.Problems so Resolve can fall back to the
// default for it. Only unreadable or syntactically broken files return an error.
func LoadOverride(path string) (*Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reflexerrors.NewParseError(path, 0, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return decodeHCL(path, data)
	case ".yaml", ".yml", "":
		return decodeYAML(path, data)
	default:
		return nil, reflexerrors.NewParseError(path, 0, fmt.Errorf("unsupported override format %q", filepath.Ext(path)))
	}
}

// DecodeYAML decodes an override document held in memory.
func DecodeYAML(data []byte) (*Override, error) {
	return decodeYAML("<inline>", data)
}

func decodeYAML(path string, data []byte) (*Override, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, reflexerrors.NewParseError(path, extractLine(err), err)
	}

	override := &Override{}
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		node := doc[key]
		switch key {
		case fieldScale:
			var scale []float64
			if err := node.Decode(&scale); err != nil {
				override.addProblem(key, fmt.Errorf("line %d: %w", node.Line, err))
				continue
			}
			override.Scale = scale
		case fieldBreakpoints:
			var breakpoints map[string]string
			if err := node.Decode(&breakpoints); err != nil {
				override.addProblem(key, fmt.Errorf("line %d: %w", node.Line, err))
				continue
			}
			override.Breakpoints = breakpoints
		default:
			override.addProblem(key, fmt.Errorf("line %d: unknown field", node.Line))
		}
	}

	return override, nil
}

func decodeHCL(path string, data []byte) (*Override, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, reflexerrors.NewParseError(path, diagnosticLine(diags), diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, reflexerrors.NewParseError(path, diagnosticLine(diags), diags)
	}

	override := &Override{}
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		attr := attrs[key]
		switch key {
		case fieldScale:
			var scale []float64
			if diags := gohcl.DecodeExpression(attr.Expr, nil, &scale); diags.HasErrors() {
				override.addProblem(key, diags)
				continue
			}
			override.Scale = scale
		case fieldBreakpoints:
			var breakpoints map[string]string
			if diags := gohcl.DecodeExpression(attr.Expr, nil, &breakpoints); diags.HasErrors() {
				override.addProblem(key, diags)
				continue
			}
			override.Breakpoints = breakpoints
		default:
			override.addProblem(key, fmt.Errorf("line %d: unknown field", attr.Range.Start.Line))
		}
	}

	return override, nil
}

func (o *Override) addProblem(field string, err error) {
	o.Problems = append(o.Problems, FieldProblem{Field: field, Err: err})
}

func diagnosticLine(diags hcl.Diagnostics) int {
	for _, diag := range diags {
		if diag.Subject != nil {
			return diag.Subject.Start.Line
		}
	}
	return 0
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
