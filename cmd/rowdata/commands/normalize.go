package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/rowdata/pkg/club"
	"github.com/jmylchreest/rowdata/pkg/laptime"
)

var clubCmd = &cobra.Command{
	Use:     "club NAME...",
	Short:   "Print the canonical form of club names",
	Example: `  rowdata club "C.R. Cabo da Cruz" "Kaiku Bizkaiko Foru Aldundia"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, club.Normalize(name))
		}
		return nil
	},
}

var laptimeCmd = &cobra.Command{
	Use:   "laptime TOKEN...",
	Short: "Normalize lap time tokens",
	Long: `Laptime repairs lap time tokens as they appear in published results
(":18,62", "2102:48", "19:522") and prints them as MM:SS.ffffff. Tokens that
cannot be read are reported and make the command fail.`,
	Example: `  rowdata laptime 2102:48 :18,62 19:522`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invalid := 0
		for _, token := range args {
			t, ok := laptime.Normalize(token)
			if !ok {
				invalid++
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tinvalid\n", token)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", token, t.LapString())
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d tokens could not be parsed", invalid, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clubCmd)
	rootCmd.AddCommand(laptimeCmd)
}
