package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ari/clemstats/internal/summary"
	"github.com/olekukonko/tablewriter"
)

// DisplayMonthly prints one row per month with its play count and total length
func DisplayMonthly(w io.Writer, months []summary.MonthlyRecord) {
	var plays, secs int64

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Month", "Songs", "Total length"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, m := range months {
		table.Append([]string{
			m.Month.String(),
			strconv.FormatInt(m.PlayCount, 10),
			FormatDuration(m.TotalDuration),
		})
		plays += m.PlayCount
		secs += m.TotalDuration
	}
	table.SetFooter([]string{"Total", strconv.FormatInt(plays, 10), FormatDuration(secs)})
	table.Render()

	if len(months) > 0 {
		fmt.Fprintf(w, "%d months from %s to %s.\n", len(months), months[0].Month, months[len(months)-1].Month)
	}
}
