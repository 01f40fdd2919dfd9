package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pitwall/config"
	"github.com/s0up4200/pitwall/filter"
	"github.com/s0up4200/pitwall/openf1"
	"github.com/s0up4200/pitwall/report"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	client     *openf1.Client
	summarizer *report.Summarizer
	presets    *filter.Presets

	// Command flags
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: "Race weekend reports from OpenF1 timing data",
	Long: `pitwall pulls timing data from the OpenF1 API and turns it into race
summaries, per-driver lap deltas and stint and pit-stop overviews. Reports
are printed as tables or JSON, or served over HTTP.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pitwall.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json (default from config)")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(lapsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if outputFormat != "" {
		switch outputFormat {
		case "table", "json":
			cfg.Output.Format = outputFormat
		default:
			return fmt.Errorf("invalid output format: %s", outputFormat)
		}
	}

	opts := []openf1.Option{openf1.WithTimeout(cfg.OpenF1.Timeout)}
	if cfg.OpenF1.UserAgent != "" {
		opts = append(opts, openf1.WithUserAgent(cfg.OpenF1.UserAgent))
	}
	client, err = openf1.NewClient(cfg.OpenF1.BaseURL, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OpenF1 client: %w", err)
	}

	summarizer = report.NewSummarizer(client, logger, report.WithConcurrency(cfg.OpenF1.MaxConcurrency))

	presets, err = filter.NewPresets(filter.NewExprCompiler(filter.WithCache(filter.DefaultCacheSize)), cfg.Filter.Presets)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Int("max_concurrency", cfg.OpenF1.MaxConcurrency).
		Int("presets", len(cfg.Filter.Presets)).
		Msg("Initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	return newLogger(cfg, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
}

func newLogger(cfg config.LoggingConfig, out io.Writer, terminal bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printReport writes v as indented JSON or as the rendered table
func printReport(w io.Writer, v any, table func() string) error {
	if cfg.Output.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(w, table())
	return err
}
