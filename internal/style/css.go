package style

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Declaration is one rendered CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value
}

// unitless properties take bare numbers.
var unitless = map[string]struct{}{
	"flex":       {},
	"flexGrow":   {},
	"flexShrink": {},
	"fontWeight": {},
	"lineHeight": {},
	"opacity":    {},
	"order":      {},
	"zIndex":     {},
}

// Declarations renders the set entries of m, sorted by property name.
// Unset (nil) entries are skipped.
func Declarations(m Map) []Declaration {
	decls := make([]Declaration, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		value := m[key]
		if value == nil {
			continue
		}
		decls = append(decls, Declaration{
			Property: Property(key),
			Value:    FormatValue(key, value),
		})
	}
	slices.SortStableFunc(decls, func(a, b Declaration) int {
		return strings.Compare(a.Property, b.Property)
	})
	return decls
}

// Inline renders m as the body of an HTML style attribute.
func Inline(m Map) string {
	decls := Declarations(m)
	parts := make([]string, len(decls))
	for i, decl := range decls {
		parts[i] = decl.String()
	}
	return strings.Join(parts, "; ")
}

// Property converts a camelCase style key to its CSS property name.
// A leading capital or "ms" marks a vendor prefix: WebkitBoxFlex becomes -webkit-box-flex.
func Property(key string) string {
	if strings.HasPrefix(key, "--") {
		return key
	}

	var b strings.Builder
	b.Grow(len(key) + 4)
	if strings.HasPrefix(key, "ms") && len(key) > 2 && unicode.IsUpper(rune(key[2])) {
		b.WriteByte('-')
	}
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 || !strings.HasPrefix(key, "ms") {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatValue renders a style value. Numbers get a px unit unless zero or
// the property is unitless.
func FormatValue(key string, value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return formatNumber(key, v)
	case float32:
		return formatNumber(key, float64(v))
	case int:
		return formatNumber(key, float64(v))
	case int64:
		return formatNumber(key, float64(v))
	default:
		return fmt.Sprint(v)
	}
}

func formatNumber(key string, v float64) string {
	if v == 0 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if _, ok := unitless[key]; ok {
		return s
	}
	return s + "px"
}
