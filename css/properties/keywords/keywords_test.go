package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	for k := Keyword(1); k < count; k++ {
		got, ok := New(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	assert.Equal(t, Count(), len(names)-1)
}

func TestCaseInsensitive(t *testing.T) {
	k, ok := New("Table-Row-Group")
	assert.True(t, ok)
	assert.Equal(t, TableRowGroup, k)

	_, ok = New("not-a-keyword")
	assert.False(t, ok)
}

func TestMustNewPanics(t *testing.T) {
	assert.Equal(t, Auto, MustNew("auto"))
	assert.Panics(t, func() { MustNew("foo-bar") })
}

func TestWeights(t *testing.T) {
	assert.Equal(t, 700, W700.Weight())
	assert.Equal(t, 0, Bold.Weight())

	k, ok := FromWeight(300)
	assert.True(t, ok)
	assert.Equal(t, W300, k)

	_, ok = FromWeight(350)
	assert.False(t, ok)
	_, ok = FromWeight(1000)
	assert.False(t, ok)
}
