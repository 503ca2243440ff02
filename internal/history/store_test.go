package history

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FreshStore(t *testing.T) {
	s := New("")

	assert.Equal(t, "", s.Value())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Cursor())

	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
	assert.Equal(t, []string{""}, s.Entries())
	assert.Equal(t, 0, s.Cursor())
}

func TestSetValue_UndoWalksBackToFirst(t *testing.T) {
	s := New("v1")
	values := []string{"v2", "v3", "v4", "v5"}
	for _, v := range values {
		require.True(t, s.SetValue(v))
	}

	assert.True(t, s.CanUndo())
	for i := 0; i < len(values); i++ {
		require.True(t, s.Undo())
	}
	assert.Equal(t, "v1", s.Value())
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanRedo())
}

func TestSetValue_DuplicateIsNoOp(t *testing.T) {
	s := New("")
	s.SetValue("x")

	before := s.Entries()
	assert.False(t, s.SetValue("x"))
	assert.False(t, s.SetValue("x"))

	assert.Equal(t, before, s.Entries())
	assert.Equal(t, 1, s.Cursor())
}

func TestSetValue_DuplicateOfInitialIsNoOp(t *testing.T) {
	s := New("")
	assert.False(t, s.SetValue(""))
	assert.Equal(t, 1, s.Len())
}

func TestSetValue_BranchDiscardsRedo(t *testing.T) {
	s := New("v1")
	s.SetValue("v2")
	s.SetValue("v3")
	require.Equal(t, 2, s.Cursor())

	s.Undo()
	require.Equal(t, 1, s.Cursor())
	require.Equal(t, "v2", s.Value())

	s.SetValue("v4")

	assert.Equal(t, []string{"v1", "v2", "v4"}, s.Entries())
	assert.Equal(t, 2, s.Cursor())
	assert.False(t, s.CanRedo())

	// v3 is gone for good
	s.Undo()
	s.Redo()
	assert.Equal(t, "v4", s.Value())
	assert.NotContains(t, s.Entries(), "v3")
}

func TestSetValue_EqualToRedoEntryStillBranches(t *testing.T) {
	s := New("a")
	s.SetValue("b")
	s.Undo()

	// Equality is checked against the current value only.
	assert.True(t, s.SetValue("b"))
	assert.Equal(t, []string{"a", "b"}, s.Entries())
	assert.False(t, s.CanRedo())
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	s := New("")
	s.SetValue("one")
	s.SetValue("two")

	value, cursor := s.Value(), s.Cursor()
	require.True(t, s.Undo())
	require.True(t, s.Redo())

	assert.Equal(t, value, s.Value())
	assert.Equal(t, cursor, s.Cursor())
}

func TestUndoRedo_OutOfBoundsLeavesStateUnchanged(t *testing.T) {
	s := New("")
	s.SetValue("a")

	require.True(t, s.Undo())
	entries, cursor := s.Entries(), s.Cursor()
	assert.False(t, s.Undo())
	assert.Equal(t, entries, s.Entries())
	assert.Equal(t, cursor, s.Cursor())

	require.True(t, s.Redo())
	entries, cursor = s.Entries(), s.Cursor()
	assert.False(t, s.Redo())
	assert.Equal(t, entries, s.Entries())
	assert.Equal(t, cursor, s.Cursor())
}

func TestScenario_TypingSession(t *testing.T) {
	s := New("")
	s.SetValue("a")
	s.SetValue("ab")
	s.SetValue("ab")

	s.Undo()
	assert.Equal(t, "a", s.Value())
	s.Undo()
	assert.Equal(t, "", s.Value())
	s.Undo()
	assert.Equal(t, "", s.Value())

	s.Redo()
	s.Redo()
	assert.Equal(t, "ab", s.Value())
	assert.Equal(t, 3, s.Len())
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := New("a")
	s.SetValue("b")

	entries := s.Entries()
	entries[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, s.Entries())
}

func TestEntries_CopySurvivesBranch(t *testing.T) {
	s := New("a")
	s.SetValue("b")
	s.SetValue("c")
	snapshot := s.Entries()

	s.Undo()
	s.Undo()
	s.SetValue("z")

	assert.Equal(t, []string{"a", "b", "c"}, snapshot)
	assert.Equal(t, []string{"a", "z"}, s.Entries())
}

func TestSetValue_CommitCostIndependentOfDepth(t *testing.T) {
	s := New(0)
	for i := 1; i <= 100_000; i++ {
		s.SetValue(i)
	}

	next := s.Value()
	allocs := testing.AllocsPerRun(1000, func() {
		next++
		s.SetValue(next)
	})
	assert.Less(t, allocs, 1.0, "appending to a deep history should not copy it")

	// Branching reuses the retained prefix
	for i := 0; i < 10; i++ {
		s.Undo()
	}
	allocs = testing.AllocsPerRun(1000, func() {
		s.Undo()
		next++
		s.SetValue(next)
	})
	assert.Less(t, allocs, 1.0, "committing after undo should not copy the history")
	assert.False(t, s.CanRedo())
}

func TestNewFunc_ValueEquality(t *testing.T) {
	s := NewFunc([]string{"go"}, slices.Equal[[]string])

	assert.False(t, s.SetValue([]string{"go"}), "equal slices should collapse")
	assert.True(t, s.SetValue([]string{"go", "rust"}))
	assert.Equal(t, 2, s.Len())

	s.Undo()
	assert.Equal(t, []string{"go"}, s.Value())
}

func TestWithLimit(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		commits     []string
		wantEntries []string
	}{
		{
			name:        "unbounded when zero",
			limit:       0,
			commits:     []string{"a", "b", "c", "d"},
			wantEntries: []string{"", "a", "b", "c", "d"},
		},
		{
			name:        "evicts oldest",
			limit:       3,
			commits:     []string{"a", "b", "c", "d"},
			wantEntries: []string{"b", "c", "d"},
		},
		{
			name:        "under the bound",
			limit:       10,
			commits:     []string{"a", "b"},
			wantEntries: []string{"", "a", "b"},
		},
		{
			name:        "single entry",
			limit:       1,
			commits:     []string{"a", "b"},
			wantEntries: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("", WithLimit(tt.limit))
			for _, v := range tt.commits {
				s.SetValue(v)
			}
			assert.Equal(t, tt.wantEntries, s.Entries())
			assert.Equal(t, len(tt.wantEntries)-1, s.Cursor())
			assert.Equal(t, tt.commits[len(tt.commits)-1], s.Value())
		})
	}
}

func TestWithLimit_BranchBelowBound(t *testing.T) {
	s := New("v1", WithLimit(3))
	s.SetValue("v2")
	s.SetValue("v3")
	s.Undo()
	s.SetValue("v4")

	assert.Equal(t, []string{"v1", "v2", "v4"}, s.Entries())
	assert.False(t, s.CanRedo())
}

func TestWithLimit_CanUndoAtDepthBoundary(t *testing.T) {
	s := New("", WithLimit(2))
	s.SetValue("a")
	s.SetValue("b")

	require.True(t, s.Undo())
	assert.Equal(t, "a", s.Value())
	// The initial "" was evicted.
	assert.False(t, s.CanUndo())
}

func TestSubscribe(t *testing.T) {
	s := New("")
	var got []string
	unsubscribe := s.Subscribe(func(v string) {
		got = append(got, v)
	})

	s.SetValue("a")
	s.SetValue("a") // duplicate, no notification
	s.SetValue("ab")
	s.Undo()
	s.Undo()
	s.Undo() // out of bounds, no notification
	s.Redo()

	assert.Equal(t, []string{"a", "ab", "a", "", "a"}, got)

	unsubscribe()
	s.SetValue("abc")
	assert.Len(t, got, 5)
}

func TestSubscribe_Multiple(t *testing.T) {
	s := New(0)
	counts := make([]int, 3)
	for i := range counts {
		s.Subscribe(func(int) { counts[i]++ })
	}

	s.SetValue(1)
	s.SetValue(2)
	s.Undo()

	assert.Equal(t, []int{3, 3, 3}, counts)
}

func ExampleStore() {
	s := New("")
	s.SetValue("a")
	s.SetValue("ab")
	s.Undo()
	fmt.Println(s.Value(), s.CanUndo(), s.CanRedo())
	// Output: a true true
}
