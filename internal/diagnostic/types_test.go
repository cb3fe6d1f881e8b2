package diagnostic

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_HandleClassifies(t *testing.T) {
	var d Diagnostics

	d.Handle(&LookupError{Kind: "DialogField", Property: "lable", Suggestions: []string{"label"}})
	d.Handle(&TypeMismatchError{Kind: "DialogField", Property: "ranking", Want: "int", Got: "string"})
	d.Handle(&BoundsError{Kind: "Tabs", Property: "value", Index: 3, Len: 1})
	d.Handle(NewLayoutWarning(CodeAmbiguousOrder, "Article", "title", "ambiguous"))
	d.Handle(NewLayoutError(CodeRecursion, "Article", "self", "recursion"))
	d.Handle(nil)

	require.Len(t, d.Errors, 4)
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, 5, d.Count())

	assert.Equal(t, "lookup", d.Errors[0].Code)
	assert.Equal(t, []string{"label"}, d.Errors[0].Suggestions)
	assert.Equal(t, "type_mismatch", d.Errors[1].Code)
	assert.Equal(t, "bounds", d.Errors[2].Code)
	assert.Equal(t, CodeRecursion, d.Errors[3].Code)
	assert.Equal(t, CodeAmbiguousOrder, d.Warnings[0].Code)
	assert.Equal(t, "title", d.Warnings[0].Member)

	assert.Len(t, d.WithCode(CodeRecursion), 1)
	assert.True(t, d.HasErrors())
	assert.Error(t, d.Error())
}

func TestDiagnostics_WrappedErrorsStillClassify(t *testing.T) {
	var d Diagnostics

	d.Handle(fmt.Errorf("member title: %w", &BoundsError{Kind: "K", Property: "p", Index: 5, Len: 2}))

	require.Len(t, d.Errors, 1)
	assert.Equal(t, "bounds", d.Errors[0].Code)
	assert.True(t, errors.Is(d.Errors[0].Err, ErrBounds))
}

func TestDiagnostics_ConcurrentHandle(t *testing.T) {
	var (
		d  Diagnostics
		wg sync.WaitGroup
	)

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			d.AddWarning("w", fmt.Sprintf("warning %d", i), "", "")
		}()
	}

	wg.Wait()
	assert.Len(t, d.Warnings, 50)
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())
}

func TestTypedErrors_Is(t *testing.T) {
	assert.ErrorIs(t, &LookupError{}, ErrLookup)
	assert.ErrorIs(t, &TypeMismatchError{}, ErrTypeMismatch)
	assert.ErrorIs(t, &BoundsError{}, ErrBounds)
	assert.ErrorIs(t, &LayoutError{}, ErrLayout)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Code: "recursion", Message: "loop", Class: "Article", Member: "self"}
	assert.Equal(t, "[Article] self: [recursion] loop", d.String())

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestLayoutError_Message(t *testing.T) {
	err := NewLayoutError(CodeMissingSection, "Article", "title", "section %q not found", "Main")
	assert.Equal(t, `Article#title: section "Main" not found`, err.Error())
	assert.False(t, err.Warning)
}

func TestLookupError_Message(t *testing.T) {
	err := &LookupError{Kind: "DialogField", Property: "lable", Suggestions: []string{"label"}}
	assert.Equal(t, `DialogField has no property "lable"; did you mean label?`, err.Error())
}
