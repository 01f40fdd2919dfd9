package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pitwall/openf1"
)

// fetchCmd prints raw upstream records
var fetchCmd = &cobra.Command{
	Use:   "fetch <resource> [key=value...]",
	Short: "Fetch raw records from the OpenF1 API",
	Long: `Fetch raw records of one resource and print them as JSON. Repeating a
key sends it once per value, e.g.
  pitwall fetch laps session_key=9158 driver_number=1 driver_number=44`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: openf1.Resources,
	RunE:      runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	resource := args[0]
	if !lo.Contains(openf1.Resources, resource) {
		return fmt.Errorf("unknown resource %q (valid: %s)", resource, strings.Join(openf1.Resources, ", "))
	}

	filters, err := parseFilterArgs(args[1:])
	if err != nil {
		return err
	}

	records, err := client.Fetch(cmd.Context(), resource, filters)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// parseFilterArgs turns key=value arguments into filters. Numeric values are
// sent as numbers and repeated keys collect every value.
func parseFilterArgs(args []string) (openf1.Filters, error) {
	filters := make(openf1.Filters)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", arg)
		}

		v := openf1.KeyValue(value)
		switch existing := filters[key].(type) {
		case nil:
			filters[key] = v
		case []any:
			filters[key] = append(existing, v)
		default:
			filters[key] = []any{existing, v}
		}
	}
	return filters, nil
}
