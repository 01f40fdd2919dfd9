package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pitwall/filter"
	"github.com/s0up4200/pitwall/report"
)

var (
	lapYear    int
	lapSeason  int
	lapRace    string
	lapSession string
	filterExpr string
	preset     string
)

// lapsCmd prints a driver's lap deltas
var lapsCmd = &cobra.Command{
	Use:   "laps <driver-number>",
	Short: "Show a driver's lap times and deltas",
	Long: `Show a driver's laps grouped by session, with each lap's delta to the
session best and to the previous timed lap.

Laps can be narrowed with a filter expression, e.g.
  pitwall laps 44 --race 9 --filter 'HasTime && withinPercent(2) && !IsPit'
  pitwall laps 44 --race 9 --filter 'icontains(SessionName, "sprint")'`,
	Args: cobra.ExactArgs(1),
	RunE: runLaps,
}

func init() {
	lapsCmd.Flags().IntVar(&lapYear, "year", 0, "season year")
	lapsCmd.Flags().IntVar(&lapSeason, "season", 0, "season year, used when --year is not set")
	lapsCmd.Flags().StringVar(&lapRace, "race", "", "race key")
	lapsCmd.Flags().StringVar(&lapSession, "session", "", "session key")
	lapsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "lap filter expression")
	lapsCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	lapsCmd.MarkFlagsMutuallyExclusive("filter", "preset")
}

func runLaps(cmd *cobra.Command, args []string) error {
	lapFilter, err := presets.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	opts := report.DeltaOptions{
		Year:       lapYear,
		Season:     lapSeason,
		RaceKey:    lapRace,
		SessionKey: lapSession,
	}

	logger.Info().Str("driver", args[0]).Str("race", lapRace).Str("session", lapSession).Msg("Building lap deltas")

	deltas, err := summarizer.LapDeltas(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if lapFilter != nil {
		logger.Debug().Str("filter", lapFilter.Expression()).Msg("Applying lap filter")
		deltas = filter.Apply(lapFilter, deltas)
	}

	formatter := report.NewTextFormatter()
	return printReport(cmd.OutOrStdout(), deltas, func() string {
		return formatter.FormatLapDeltas(deltas)
	})
}
