package growing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  Configuration
		wantErr []string
	}{
		{name: "defaults", config: DefaultConfiguration()},
		{name: "equal bounds", config: Configuration{MinLines: 2, MaxLines: 2}},
		{name: "zero min", config: Configuration{MinLines: 0, MaxLines: 3}, wantErr: []string{"minLines"}},
		{name: "zero max", config: Configuration{MinLines: 1, MaxLines: 0}, wantErr: []string{"maxLines must be at least 1", "must not be less"}},
		{name: "inverted", config: Configuration{MinLines: 4, MaxLines: 2}, wantErr: []string{"must not be less"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.config.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfiguration_Normalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       Configuration
		min, max int
	}{
		{name: "valid unchanged", in: Configuration{MinLines: 2, MaxLines: 5}, min: 2, max: 5},
		{name: "below one", in: Configuration{MinLines: -1, MaxLines: 0}, min: 1, max: 1},
		{name: "max raised to min", in: Configuration{MinLines: 4, MaxLines: 2}, min: 4, max: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.in.Normalized()
			assert.Equal(t, tt.min, got.MinLines)
			assert.Equal(t, tt.max, got.MaxLines)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestParsePlaceholderHidingMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]PlaceholderHidingMode{
		"onFocus":     HideOnFocus,
		"ONFOCUS":     HideOnFocus,
		"onTypedText": HideOnTypedText,
		"":            HideOnTypedText,
	} {
		got, err := ParsePlaceholderHidingMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePlaceholderHidingMode("sometimes")
	assert.Error(t, err)
	assert.Equal(t, "onFocus", HideOnFocus.String())
}

func TestParseHorizontalLayout(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]HorizontalLayout{
		"leading":  LayoutLeading,
		"center":   LayoutCenter,
		"Trailing": LayoutTrailing,
		"right":    LayoutTrailing,
	} {
		got, err := ParseHorizontalLayout(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseHorizontalLayout("diagonal")
	assert.Error(t, err)
	assert.Equal(t, "center", LayoutCenter.String())
}
