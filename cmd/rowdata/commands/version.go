package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/rowdata/internal/output"
	"github.com/jmylchreest/rowdata/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			w, err := output.NewWriter(cmd.OutOrStdout(), output.FormatJSON)
			if err != nil {
				return err
			}
			if err := w.Write(version.Get()); err != nil {
				return err
			}
			return w.Close()
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "print as JSON")
}
