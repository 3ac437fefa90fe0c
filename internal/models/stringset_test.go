package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet("P2", "", "P1", "P2")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("P1"))
	assert.False(t, s.Has(""))
	assert.Equal(t, []string{"P1", "P2"}, s.Sorted())
	assert.Equal(t, "P1;P2", s.Join())
	assert.Equal(t, "", s.Only())

	single := NewStringSet("7100")
	assert.Equal(t, "7100", single.Only())
	assert.Equal(t, "7100", single.Join())

	empty := StringSet{}
	assert.Equal(t, "", empty.Join())
	assert.Equal(t, "", empty.Only())
	assert.Empty(t, empty.Sorted())
}

func TestStringSet_AddAll(t *testing.T) {
	s := NewStringSet("b")
	s.AddAll(NewStringSet("a", "b", "c"))
	assert.Equal(t, "a;b;c", s.Join())
}
