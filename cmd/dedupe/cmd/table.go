package cmd

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	hubspotfun "github.com/peted77/hubspot-fun"
)

// renderResults renders one row per resolution run.
func renderResults(results []*hubspotfun.RunResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"RECORD", "STATUS", "STRATEGY", "SURVIVOR", "MERGED", "DETAIL"})

	for _, r := range results {
		detail := r.Reason
		if len(r.FailedIDs) > 0 {
			detail = "failed: " + strings.Join(r.FailedIDs, ",")
		}
		tw.AppendRow(table.Row{
			r.RecordID,
			string(r.Status),
			r.MatchStrategy,
			r.SurvivorID,
			strconv.Itoa(len(r.MergedIDs)),
			detail,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
