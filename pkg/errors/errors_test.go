package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("reflex.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "reflex.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: reflex.yaml:12: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("reflex.hcl", 0, stdErrors.New("no such file"))
	require.Equal(t, "parse error: reflex.hcl: no such file", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("align", "must be one of stretch center baseline flex-start flex-end", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "align", validationErr.Field)
	require.Contains(t, err.Error(), "validation error: align")
}

func TestQueryErrorReportsOffset(t *testing.T) {
	t.Parallel()

	err := NewQueryError("(min-width 32em)", 11, "expected ':'")

	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	require.Equal(t, 11, queryErr.Offset)
	require.Contains(t, err.Error(), `"(min-width 32em)"`)
}

func TestSubscriptionErrorIncludesQuery(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("not supported")
	err := NewSubscriptionError("(min-width: 32em)", underlying)

	var subErr *SubscriptionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "(min-width: 32em)", subErr.Query)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "subscription error [(min-width: 32em)]: not supported", err.Error())
}

func TestNilErrorsRenderEmpty(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var queryErr *QueryError
	var subErr *SubscriptionError
	require.Empty(t, parseErr.Error())
	require.Empty(t, queryErr.Error())
	require.Empty(t, subErr.Error())
	require.Nil(t, subErr.Unwrap())
}
