package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sst/growingtext/internal/components/textarea"
	"github.com/sst/growingtext/internal/format"
	"github.com/sst/growingtext/internal/logging"
	"github.com/sst/growingtext/pkg/growing"
)

// traceRecord is one line of trace output.
type traceRecord struct {
	Step    int     `json:"step" yaml:"step"`
	Kind    string  `json:"kind" yaml:"kind"`
	Height  float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Offset  float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Editing bool    `json:"editing,omitempty" yaml:"editing,omitempty"`
	Text    string  `json:"text,omitempty" yaml:"text,omitempty"`
}

const kindFrame = "frame"

func (r traceRecord) String() string {
	switch r.Kind {
	case kindFrame:
		return fmt.Sprintf("%d %s height=%g offset=%g", r.Step, r.Kind, r.Height, r.Offset)
	case string(growing.EventDidChangeState):
		return fmt.Sprintf("%d %s editing=%t text=%q", r.Step, r.Kind, r.Editing, r.Text)
	default:
		return fmt.Sprintf("%d %s height=%g", r.Step, r.Kind, r.Height)
	}
}

var traceCmd = &cobra.Command{
	Use:   "trace [line...]",
	Short: "Run fit passes on a headless input and print the events",
	Long: `trace lays out an input at --width cells, then appends each argument as a
new line of text, one fit pass per argument. It prints every height and
state notification the input emits, and the frame height and scroll offset
after each step. With no arguments, lines are read from piped stdin.`,
	Example: `  growtext trace --width 20 --max-lines 3 one two three four
  printf 'a\nb\n' | growtext trace -f json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.NewCLILogger(cmd.ErrOrStderr(), level)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		formatStr, _ := cmd.Flags().GetString("format")
		outputFormat, err := format.Parse(formatStr)
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")
		if width < 1 {
			return fmt.Errorf("invalid width %d: must be at least 1", width)
		}

		lines := args
		if len(lines) == 0 {
			if data, ok := checkStdinPipe(); ok {
				lines = strings.Split(strings.TrimRight(data, "\n"), "\n")
			}
		}

		records := runTrace(cfg.Growing(), width, lines, logger)
		out, err := format.FormatRecords("events", records, outputFormat, traceRecord.String)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// runTrace drives a growing.View over a headless textarea. Step 0 is
// construction plus the first layout; step i appends lines[i-1].
func runTrace(config growing.Configuration, width int, lines []string, logger *slog.Logger) []traceRecord {
	var records []traceRecord
	step := 0
	record := func(r traceRecord) {
		r.Step = step
		records = append(records, r)
	}

	observer := growing.Handlers{
		OnWillChangeHeight: func(h float64) {
			record(traceRecord{Kind: string(growing.EventWillChangeHeight), Height: h})
		},
		OnDidChangeHeight: func(h float64) {
			record(traceRecord{Kind: string(growing.EventDidChangeHeight), Height: h})
		},
		OnDidChangeState: func(s growing.State) {
			record(traceRecord{Kind: string(growing.EventDidChangeState), Editing: s.IsEditing, Text: s.Text})
		},
	}

	surface := textarea.New()
	view := growing.New(surface,
		growing.WithConfiguration(config),
		growing.WithObserver(observer),
		growing.WithLogger(logger),
	)
	defer view.Close()

	frame := func() {
		record(traceRecord{Kind: kindFrame, Height: view.Frame().Height(), Offset: view.ContentOffset().Y})
	}

	view.Layout(float64(width))
	frame()

	text := ""
	for i, line := range lines {
		step = i + 1
		if i > 0 {
			text += "\n"
		}
		text += line
		view.SetText(text)
		frame()
	}
	return records
}

// checkStdinPipe returns stdin's contents when it is a pipe or file rather
// than a terminal.
func checkStdinPipe() (string, bool) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", false
	}
	if stat.Mode()&os.ModeCharDevice != 0 {
		return "", false
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func init() {
	traceCmd.Flags().Int("width", 40, "Frame width in cells")
	traceCmd.Flags().Int("min-lines", 0, "Minimum visible lines")
	traceCmd.Flags().Int("max-lines", 0, "Maximum visible lines before scrolling")
	traceCmd.Flags().StringP("format", "f", format.TextFormat.String(), "Output format (text, json, yaml)")
}
