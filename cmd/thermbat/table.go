package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderRecord tabulates record rows; columns follow first appearance.
func renderRecord(rec models.Record) string {
	var (
		headers []string
		index   = map[string]int{}
		aligns  []columnAlignment
	)
	rows := rec.Rows()
	for _, row := range rows {
		for _, k := range row.Keys() {
			if _, ok := index[k]; ok {
				continue
			}
			index[k] = len(headers)
			headers = append(headers, k)
			align := alignLeft
			if v, _ := row.Get(k); v.IsNumber() {
				align = alignRight
			}
			aligns = append(aligns, align)
		}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(headers))
		for _, k := range row.Keys() {
			v, _ := row.Get(k)
			line[index[k]] = v.String()
		}
		out = append(out, line)
	}
	return renderTable(headers, out, aligns)
}
