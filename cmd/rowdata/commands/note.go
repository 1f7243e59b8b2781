package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/internal/output"
	"github.com/jmylchreest/rowdata/pkg/club"
	"github.com/jmylchreest/rowdata/pkg/penalty"
)

var noteCmd = &cobra.Command{
	Use:   "note [flags] NOTE",
	Short: "Classify a race note",
	Long: `Note reads a free-text race note and prints what it says about the race
and its participants: cancellation, penalties, time corrections and
retired, guest or absent crews.

Participant names are canonicalized before matching, so sponsor names and
club titles may be used.

Examples:
  rowdata note "Orio fue descalificado por cruzarse de calle." -p Orio -p Zarautz
  rowdata note -p "Perillo B" -p "Mecos B" --format yaml \
      "Perillo B y Mecos B, sus tiempos fueron de 19:52 y 19:58, respectivamente."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNote,
}

func init() {
	rootCmd.AddCommand(noteCmd)

	noteCmd.Flags().StringArrayP("participant", "p", nil, "participant club (can be repeated)")
	addOutputFlags(noteCmd, output.FormatJSON)
}

func runNote(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetStringArray("participant")
	participants := make([]string, 0, len(raw))
	for _, p := range raw {
		if name := club.Normalize(p); name != "" {
			participants = append(participants, name)
		}
	}

	note := strings.Join(args, " ")
	logger.Debug("classifying note", "note", note, "participants", participants)
	c, err := classify(note, participants)
	if err != nil {
		return err
	}

	writer, closeOutput, err := openOutput(cmd, output.FormatJSON)
	if err != nil {
		return err
	}
	defer func() { _ = closeOutput() }()

	if err := writer.Write(c); err != nil {
		return err
	}
	return closeOutput()
}

// classify reports a note the engine cannot assign consistently as an error.
func classify(note string, participants []string) (c penalty.Classification, err error) {
	defer func() {
		if v := recover(); v != nil {
			var ce *penalty.ConsistencyError
			if e, ok := v.(error); ok && errors.As(e, &ce) {
				err = fmt.Errorf("classify note: %w", ce)
				return
			}
			panic(v)
		}
	}()

	return penalty.Classify(note, participants), nil
}
