// Package style computes the inline style and class list of a Flex element
// from its flags and the effective configuration.
package style

import (
	"maps"
	"strings"

	"github.com/alexisbeaulieu97/reflex/internal/config"
)

// Map is a CSS style object keyed by camelCase property name.
// A nil value means the declaration is not set.
type Map map[string]any

// Template keys, always present in a computed Map.
const (
	KeyDisplay        = "display"
	KeyFlexWrap       = "flexWrap"
	KeyFlexDirection  = "flexDirection"
	KeyFlex           = "flex"
	KeyAlignItems     = "alignItems"
	KeyJustifyContent = "justifyContent"
	KeyMarginLeft     = "marginLeft"
	KeyMarginRight    = "marginRight"
)

// TemplateKeys lists the template keys in declaration order.
var TemplateKeys = []string{
	KeyDisplay,
	KeyFlexWrap,
	KeyFlexDirection,
	KeyFlex,
	KeyAlignItems,
	KeyJustifyContent,
	KeyMarginLeft,
	KeyMarginRight,
}

// Display values.
const (
	DisplayFlex  = "flex"
	DisplayBlock = "block"
)

// BaseClass is always the first class of a Flex element.
const BaseClass = "Flex"

// Template returns the eight-key template: display flex, everything else unset.
func Template() Map {
	m := make(Map, len(TemplateKeys))
	for _, key := range TemplateKeys {
		m[key] = nil
	}
	m[KeyDisplay] = DisplayFlex
	return m
}

// Compute resolves the style of one element.
//
// The caller's Style sits underneath the template: every template key in the
// result comes from the flags, even when the caller set the same key and the
// flags leave it unset. Compute is pure and never fails; an out of range
// gutter leaves the margins unset.
func Compute(flags Flags, cfg config.Config) Map {
	computed := Template()

	if flags.Wrap {
		computed[KeyFlexWrap] = "wrap"
	}
	if flags.Column {
		computed[KeyFlexDirection] = "column"
	}
	if flags.Align != "" {
		computed[KeyAlignItems] = string(flags.Align)
	}
	if flags.Justify != "" {
		computed[KeyJustifyContent] = string(flags.Justify)
	}
	if flags.Gutter != nil {
		if magnitude, ok := cfg.Gutter(*flags.Gutter); ok {
			computed[KeyMarginLeft] = -magnitude
			computed[KeyMarginRight] = -magnitude
		}
	}

	result := make(Map, len(flags.Style)+len(computed))
	maps.Copy(result, flags.Style)
	maps.Copy(result, computed)
	return result
}

// ClassName returns the class list: the base class followed by the caller's tokens.
func ClassName(flags Flags) string {
	tokens := strings.Fields(flags.ClassName)
	if len(tokens) == 0 {
		return BaseClass
	}
	return BaseClass + " " + strings.Join(tokens, " ")
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
