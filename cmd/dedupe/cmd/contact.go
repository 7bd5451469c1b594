package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	hubspotfun "github.com/peted77/hubspot-fun"
)

var contactCmd = &cobra.Command{
	Use:   "contact <id>...",
	Short: "Resolve duplicate contacts",
	Long: `Resolve duplicates for one or more contacts by record ID.

Each contact runs independently: its stored phone number is
canonicalized, the match cascade is evaluated in order, and on a single
confident match the less recently active record is merged into the
other.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deduper, err := newDeduper()
		if err != nil {
			return err
		}
		return runResolutions(cmd, args, deduper.Contact)
	},
}

func init() {
	rootCmd.AddCommand(contactCmd)
}

// runResolutions resolves each ID in order and renders the outcomes.
// The command fails if any run ended in an error status.
func runResolutions(cmd *cobra.Command, ids []string, resolve func(ctx context.Context, id string) *hubspotfun.RunResult) error {
	results := make([]*hubspotfun.RunResult, 0, len(ids))
	failures := 0
	for _, id := range ids {
		result := resolve(cmd.Context(), id)
		if result.Status == hubspotfun.StatusError {
			failures++
		}
		results = append(results, result)
	}

	cmd.Println(renderResults(results))
	if failures > 0 {
		return fmt.Errorf("%d of %d run(s) failed", failures, len(ids))
	}
	return nil
}
