package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// pairRow is one line of a two-column table. Every table the cataloger
// prints pairs a name with a value: run metrics, genre tallies, files
// with missing fields.
type pairRow struct {
	name  string
	value string
}

// renderPairTable renders rows under the given headers. numeric
// right-aligns the value column for count tables.
func renderPairTable(nameHeader, valueHeader string, rows []pairRow, numeric bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{nameHeader, valueHeader})
	for _, row := range rows {
		tw.AppendRow(table.Row{row.name, row.value})
	}

	valueAlign := text.AlignLeft
	if numeric {
		valueAlign = text.AlignRight
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: valueAlign, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
