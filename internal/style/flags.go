package style

import (
	"errors"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/reflex/internal/config"
	reflexerrors "github.com/alexisbeaulieu97/reflex/pkg/errors"
)

// Align is an align-items keyword.
type Align string

const (
	AlignStretch   Align = "stretch"
	AlignCenter    Align = "center"
	AlignBaseline  Align = "baseline"
	AlignFlexStart Align = "flex-start"
	AlignFlexEnd   Align = "flex-end"
)

// Justify is a justify-content keyword.
type Justify string

const (
	JustifyCenter       Justify = "center"
	JustifySpaceAround  Justify = "space-around"
	JustifySpaceBetween Justify = "space-between"
	JustifyFlexStart    Justify = "flex-start"
	JustifyFlexEnd      Justify = "flex-end"
)

// Aligns lists every accepted Align value.
var Aligns = []Align{AlignStretch, AlignCenter, AlignBaseline, AlignFlexStart, AlignFlexEnd}

// Justifies lists every accepted Justify value.
var Justifies = []Justify{JustifyCenter, JustifySpaceAround, JustifySpaceBetween, JustifyFlexStart, JustifyFlexEnd}

// Flags are the per-instance layout intents of a Flex element.
type Flags struct {
	Wrap    bool
	Column  bool
	Align   Align   `validate:"omitempty,oneof=stretch center baseline flex-start flex-end"`
	Justify Justify `validate:"omitempty,oneof=center space-around space-between flex-start flex-end"`
	// Gutter indexes the spacing scale; nil means no gutter.
	Gutter *int `validate:"omitempty,gte=0"`
	// Breakpoints names the breakpoints the element is visible at.
	// Order and duplicates carry no meaning.
	Breakpoints []string `validate:"dive,required"`
	// Style is the caller's base style, lowest precedence.
	Style     map[string]any
	ClassName string
}

// Gutter returns a pointer suitable for Flags.Gutter.
func Gutter(n int) *int {
	return &n
}

// Constrained reports whether the flags declare any breakpoint.
func (f Flags) Constrained() bool {
	return len(f.Breakpoints) > 0
}

// BreakpointSet returns the declared breakpoint names, sorted and de-duplicated.
func (f Flags) BreakpointSet() []string {
	if len(f.Breakpoints) == 0 {
		return nil
	}
	names := slices.Clone(f.Breakpoints)
	slices.Sort(names)
	return slices.Compact(names)
}

// Validate checks the flags against the accepted keyword sets.
// Compute does not require valid flags; this is for input surfaces.
func (f Flags) Validate() error {
	err := config.GetValidator().Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return reflexerrors.NewValidationError("", err.Error(), err)
	}

	first := fieldErrs[0]
	field := strings.ToLower(first.StructField())
	return reflexerrors.NewValidationError(field, config.FieldMessage(first), err)
}
