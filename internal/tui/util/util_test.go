package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		v, low, high int
		want         int
	}{
		{name: "inside", v: 3, low: 1, high: 5, want: 3},
		{name: "below", v: -1, low: 1, high: 5, want: 1},
		{name: "above", v: 9, low: 1, high: 5, want: 5},
		{name: "swapped bounds", v: 9, low: 5, high: 1, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Clamp(tt.v, tt.low, tt.high))
		})
	}
}

func TestCmdHandler(t *testing.T) {
	t.Parallel()

	type ping struct{ n int }
	assert.Equal(t, ping{n: 2}, CmdHandler(ping{n: 2})())
}
