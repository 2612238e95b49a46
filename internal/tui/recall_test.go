package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecall(t *testing.T) {
	t.Parallel()

	r := newRecall()
	_, ok := r.prev("draft")
	assert.False(t, ok)

	r.push("b")
	r.push("b")
	r.load([]string{"a"})
	assert.Equal(t, []string{"a", "b"}, r.past)

	got, ok := r.prev("draft")
	assert.True(t, ok)
	assert.Equal(t, "b", got)
	got, _ = r.prev("ignored")
	assert.Equal(t, "a", got)

	got, _ = r.next()
	assert.Equal(t, "b", got)
	got, _ = r.next()
	assert.Equal(t, "draft", got)
	_, ok = r.next()
	assert.False(t, ok)
}
