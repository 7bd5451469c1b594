package cmd

import (
	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:   "company <id>...",
	Short: "Resolve duplicate companies",
	Long: `Resolve duplicates for one or more companies by record ID.

Every matched candidate joins a single group with the enrolled company:
the oldest record survives and all others are merged into it, one at a
time. Records that already absorbed a merge are left alone unless the
match was confirmed by domain equality.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deduper, err := newDeduper()
		if err != nil {
			return err
		}
		return runResolutions(cmd, args, deduper.Company)
	},
}

func init() {
	rootCmd.AddCommand(companyCmd)
}
