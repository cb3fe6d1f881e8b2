package handler

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"authoring-kit/internal/meta"
)

// Field is a descriptor kind used by the dispatch tests.
type Field struct {
	Label string
}

func fieldDescriptor(t *testing.T) *meta.Descriptor {
	t.Helper()

	k, err := meta.DefaultCatalog().KindOf(reflect.TypeOf(Field{}))
	require.NoError(t, err)

	return meta.Empty(k)
}
