// Package commands implements the CLI commands for rowdata.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/internal/output"
)

var rootCmd = &cobra.Command{
	Use:   "rowdata",
	Short: "Rowing results scraper and race note classifier",
	Long: `Rowdata collects traditional rowing (trainera) results from league
websites, spreadsheets and PDFs, canonicalizes club names and lap times,
and reads the free-text race notes to attach penalties, disqualifications
and time corrections to each crew.

Examples:
  # Scrape a results page with a datasource from the config file
  rowdata scrape -d act "https://act.example/regata/1"

  # Parse a local workbook
  rowdata scrape --tag xlsx results.xlsx --format csv

  # Classify a race note
  rowdata note "Orio fue descalificado por cruzarse de calle." -p Orio -p Zarautz`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.rowdata.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".rowdata")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ROWDATA")
	viper.AutomaticEnv()

	// A missing config file is fine; datasources can be given with --tag.
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openOutput returns the writer selected by the --output and --format flags.
// The returned close function flushes the writer and closes the file; calls
// after the first are no-ops.
func openOutput(cmd *cobra.Command, defaultFormat output.Format) (output.Writer, func() error, error) {
	formatStr, _ := cmd.Flags().GetString("format")
	if formatStr == "" {
		formatStr = string(defaultFormat)
	}
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = cmd.OutOrStdout()
	var file *os.File
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		file, err = os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		out = file
	}

	w, err := output.NewWriter(out, format)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, nil, err
	}
	closed := false
	closeFn := func() error {
		if closed {
			return nil
		}
		closed = true
		err := w.Close()
		if file != nil {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return w, closeFn, nil
}

func addOutputFlags(cmd *cobra.Command, defaultFormat output.Format) {
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("format", string(defaultFormat), fmt.Sprintf("output format: %v", output.Formats))
}
