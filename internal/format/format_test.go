package format

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Kind   string  `json:"kind" yaml:"kind"`
	Height float64 `json:"height" yaml:"height"`
}

func (r record) String() string {
	return fmt.Sprintf("%s %g", r.Kind, r.Height)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format OutputFormat
		want   bool
	}{
		{name: "text format", format: TextFormat, want: true},
		{name: "json format", format: JSONFormat, want: true},
		{name: "yaml format", format: YAMLFormat, want: true},
		{name: "invalid format", format: "invalid", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "text", want: TextFormat},
		{in: " JSON ", want: JSONFormat},
		{in: "yml", want: YAMLFormat},
		{in: "yaml", want: YAMLFormat},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRecords(t *testing.T) {
	t.Parallel()

	records := []record{{Kind: "willChangeHeight", Height: 2}, {Kind: "didChangeHeight", Height: 2}}

	tests := []struct {
		name    string
		records []record
		format  OutputFormat
		want    string
		wantErr bool
	}{
		{
			name:    "text format",
			records: records,
			format:  TextFormat,
			want:    "willChangeHeight 2\ndidChangeHeight 2",
		},
		{
			name:    "json format",
			records: records,
			format:  JSONFormat,
			want: `{
  "events": [
    {
      "kind": "willChangeHeight",
      "height": 2
    },
    {
      "kind": "didChangeHeight",
      "height": 2
    }
  ]
}`,
		},
		{
			name:    "yaml format",
			records: records,
			format:  YAMLFormat,
			want: `events:
    - kind: willChangeHeight
      height: 2
    - kind: didChangeHeight
      height: 2`,
		},
		{
			name:   "empty json",
			format: JSONFormat,
			want: `{
  "events": []
}`,
		},
		{
			name:    "invalid format",
			records: records,
			format:  "invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FormatRecords("events", tt.records, tt.format, record.String)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
