package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pitwall/report"
	"github.com/s0up4200/pitwall/telemetry"
)

var sessionTypes []string

// summaryCmd prints the summary of one race weekend
var summaryCmd = &cobra.Command{
	Use:   "summary <race-key>",
	Short: "Summarize a race weekend",
	Long: `Summarize every session of a race weekend: drivers, stints, pit stops,
laps and fastest and average lap metrics. Use --session-type to limit the
summary to practice, qualifying or race sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringSliceVarP(&sessionTypes, "session-type", "t", nil, "session types to include (practice, qualifying, race; aliases fp1-3, quali, q, grandprix)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	types := telemetry.ParseSessionTypes(sessionTypes...)
	if len(sessionTypes) > 0 && len(types) == 0 {
		return fmt.Errorf("no known session type in %v", sessionTypes)
	}

	logger.Info().Str("race", args[0]).Strs("session_types", sessionTypeNames(types)).Msg("Building race summary")

	summary, err := summarizer.Summarize(cmd.Context(), args[0], report.SummaryOptions{SessionTypes: types})
	if err != nil {
		return err
	}

	formatter := report.NewTextFormatter()
	return printReport(cmd.OutOrStdout(), summary, func() string {
		return formatter.FormatSummary(summary)
	})
}

func sessionTypeNames(types []telemetry.SessionType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
