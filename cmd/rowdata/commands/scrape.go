package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/internal/output"
	"github.com/jmylchreest/rowdata/pkg/datasource"
	"github.com/jmylchreest/rowdata/pkg/fetcher"
	"github.com/jmylchreest/rowdata/pkg/race"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [flags] SOURCE...",
	Short: "Extract races from result pages, workbooks or PDFs",
	Long: `Scrape parses every SOURCE (URL, file:// URL or local path) with a
datasource and writes the races found.

Datasources are defined in the config file under "datasources":

  datasources:
    act:
      tag: html
      gender: MALE
      index:
        link_pattern: '/regata/\d+'
        next_selector: a.next
      html:
        title: h1
        rows: table.results tr
        notes: p.note
        columns: {series: 1, lane: 2, club: 3, laps: [4, 5, 6], time: 7}

Examples:
  # Named datasource
  rowdata scrape -d act "https://act.example/regatas"

  # Ad hoc workbook
  rowdata scrape --tag xlsx --gender FEMALE results.xlsx -o races.csv --format csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()

	// Datasource selection
	flags.StringP("datasource", "d", "", "datasource name from the config file")
	flags.String("tag", "", fmt.Sprintf("datasource tag when no named datasource is used: %v", datasource.Tags))
	flags.String("gender", "", "gender of the races: MALE, FEMALE, MIX")
	flags.String("category", "", "category of the races")
	flags.IntP("concurrency", "c", 0, "concurrent race pages (default 4)")

	// HTML selectors for ad hoc datasources
	flags.String("rows", "", "CSS selector of result rows (html)")
	flags.Int("club-column", 0, "1-based column of the club name (html)")
	flags.Int("time-column", 0, "1-based column of the finish time (html)")
	flags.IntSlice("lap-columns", nil, "1-based columns of lap times (html)")
	flags.String("notes", "", "CSS selector of the race notes (html)")

	// Index walking
	flags.String("follow-pattern", "", "regex of race links on an index page")
	flags.String("next", "", "CSS selector of the next index page")
	flags.Int("max-pages", 0, "max index pages (0=unlimited)")

	// Fetch settings
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("max-body-size", "20MB", "max response size (e.g. 512KB, 20MB)")
	flags.Duration("rate-limit", 500*time.Millisecond, "minimum interval between requests (0=unlimited)")
	flags.String("user-agent", "", "override the User-Agent header")

	addOutputFlags(scrapeCmd, output.FormatJSON)

	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("max_body_size", flags.Lookup("max-body-size"))
	_ = viper.BindPFlag("rate_limit", flags.Lookup("rate-limit"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := scrapeConfig(cmd)
	if err != nil {
		logger.Error("invalid datasource", "error", err)
		return err
	}

	maxBodySize, err := humanize.ParseBytes(viper.GetString("max_body_size"))
	if err != nil {
		logger.Error("invalid max-body-size", "value", viper.GetString("max_body_size"), "error", err)
		return err
	}
	f := fetcher.NewStatic(fetcher.StaticConfig{
		UserAgent:   viper.GetString("user_agent"),
		Timeout:     viper.GetDuration("timeout"),
		MaxBodySize: int(maxBodySize),
		RateLimit:   viper.GetDuration("rate_limit"),
	})
	defer func() { _ = f.Close() }()

	ds, err := datasource.New(cfg, f)
	if err != nil {
		logger.Error("failed to create datasource", "error", err)
		return err
	}

	writer, closeOutput, err := openOutput(cmd, output.FormatJSON)
	if err != nil {
		logger.Error("failed to create output writer", "error", err)
		return err
	}
	defer func() { _ = closeOutput() }()

	log := logger.Datasource(cfg.Name)
	log.Info("starting scrape", "tag", ds.Tag(), "sources", len(args), "max_body_size", humanize.Bytes(maxBodySize))

	var errs []error
	count := 0
	for _, source := range args {
		races, err := ds.Races(ctx, source)
		if err != nil {
			log.Error("source failed", "source", source, "error", err)
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		for _, r := range races {
			if err := writer.Write(r); err != nil {
				logger.Error("failed to write output", "error", err)
				return err
			}
		}
		count += len(races)
		log.Debug("source done", "source", source, "races", len(races))
	}

	if err := closeOutput(); err != nil {
		return err
	}
	log.Info("scrape complete", "races", count, "errors", len(errs))
	return errors.Join(errs...)
}

// scrapeConfig builds the datasource config from the named config entry,
// then applies the flags that were set explicitly.
func scrapeConfig(cmd *cobra.Command) (datasource.Config, error) {
	flags := cmd.Flags()
	var cfg datasource.Config

	if name, _ := flags.GetString("datasource"); name != "" {
		key := "datasources." + strings.ToLower(name)
		if !viper.IsSet(key) {
			return cfg, fmt.Errorf("datasource %q not found in config", name)
		}
		if err := viper.UnmarshalKey(key, &cfg); err != nil {
			return cfg, fmt.Errorf("datasource %q: %w", name, err)
		}
		if cfg.Name == "" {
			cfg.Name = name
		}
	}

	if flags.Changed("tag") {
		tag, _ := flags.GetString("tag")
		cfg.Tag = datasource.Tag(tag)
	}
	if cfg.Tag == "" {
		return cfg, errors.New("either --datasource or --tag is required")
	}
	if flags.Changed("gender") {
		gender, _ := flags.GetString("gender")
		cfg.Gender = race.Gender(strings.ToUpper(gender))
	}
	if flags.Changed("category") {
		cfg.Category, _ = flags.GetString("category")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}

	if flags.Changed("rows") {
		cfg.HTML.Rows, _ = flags.GetString("rows")
	}
	if flags.Changed("club-column") {
		cfg.HTML.Columns.Club, _ = flags.GetInt("club-column")
	}
	if flags.Changed("time-column") {
		cfg.HTML.Columns.Time, _ = flags.GetInt("time-column")
	}
	if flags.Changed("lap-columns") {
		cfg.HTML.Columns.Laps, _ = flags.GetIntSlice("lap-columns")
	}
	if flags.Changed("notes") {
		cfg.HTML.Notes, _ = flags.GetString("notes")
	}

	if flags.Changed("follow-pattern") {
		cfg.Index.LinkPattern, _ = flags.GetString("follow-pattern")
	}
	if flags.Changed("next") {
		cfg.Index.NextSelector, _ = flags.GetString("next")
	}
	if flags.Changed("max-pages") {
		cfg.Index.MaxPages, _ = flags.GetInt("max-pages")
	}
	return cfg, nil
}
