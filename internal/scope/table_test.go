package scope

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeLookupFallsBackToParent(t *testing.T) {
	parent := New[string](nil)
	parent.Set("a", "1")
	child := New(parent)
	child.Set("b", "2")

	value, err := child.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	_, err = parent.Lookup("b")
	assert.True(t, errors.Is(err, ErrSymbolNotFoundOnScope))
}

func TestSetWritesGlobalsWithoutFrames(t *testing.T) {
	table := NewSymbolTable()
	table.Set("x", "10")
	assert.Equal(t, "10", table.Get("x"))

	table.PushScope()
	assert.Equal(t, "10", table.Get("x"))
	table.Set("y", "20")
	table.PopScope()

	assert.Equal(t, "", table.Get("y"))
}

func TestShadowing(t *testing.T) {
	tests := []struct {
		before string
	}{
		{""},
		{"0"},
		{"outer"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestShadowing('%s')", test.before), func(t *testing.T) {
			table := NewSymbolTable()
			if test.before != "" {
				table.Set("x", test.before)
			}

			table.PushScope()
			table.Set("x", "1")
			table.Set("x", "2")
			assert.Equal(t, "2", table.Get("x"))
			table.PopScope()

			assert.Equal(t, test.before, table.Get("x"))
		})
	}
}

func TestGetSearchesEnclosingFrames(t *testing.T) {
	table := NewSymbolTable()
	table.PushScope()
	table.Set("n", "6")
	table.PushScope()
	assert.Equal(t, "6", table.Get("n"))
	table.Set("n", "7")
	assert.Equal(t, "7", table.Get("n"))
	table.PopScope()
	assert.Equal(t, "6", table.Get("n"))
	table.PopScope()
}

func TestPopOnEmptyStackIsNoop(t *testing.T) {
	table := NewSymbolTable()
	table.PopScope()
	table.PopScope()
	assert.Equal(t, 0, table.Depth())

	pushes, pops := table.Balance()
	assert.Equal(t, 0, pushes)
	assert.Equal(t, 0, pops)
}

func TestBalance(t *testing.T) {
	table := NewSymbolTable()
	for i := 0; i < 5; i++ {
		table.PushScope()
	}
	assert.Equal(t, 5, table.Depth())
	for i := 0; i < 5; i++ {
		table.PopScope()
	}

	pushes, pops := table.Balance()
	assert.Equal(t, pushes, pops)
	assert.Equal(t, 0, table.Depth())
}
