// Package formatter renders gold facts as a Markdown summary.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"steamfeatured/internal/models"

	"github.com/mattn/go-runewidth"
)

// minCellWidth keeps separator cells at least "---".
const minCellWidth = 3

var factColumns = []string{"Category", "Game ID", "Name", "Original", "Final", "Discount"}

// FactsSummary renders rows as a Markdown document with one aligned table.
// Column widths follow display width, so wide CJK names line up.
func FactsSummary(rows []models.FactRow, processedAt string) string {
	var sb strings.Builder

	sb.WriteString("# Featured games\n\n")
	fmt.Fprintf(&sb, "Processed at %s. %d rows.\n\n", processedAt, len(rows))

	table := make([][]string, 0, len(rows)+1)
	table = append(table, factColumns)

	for _, row := range rows {
		table = append(table, []string{
			cell(row.Category),
			cell(row.GameID),
			cell(row.GameName),
			price(row.OriginalPrice),
			price(row.FinalPrice),
			percent(row.DiscountPercent),
		})
	}

	for _, line := range alignTable(table) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// alignTable pads every cell to its column's display width. The first row is
// the header and is followed by a separator.
func alignTable(table [][]string) []string {
	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	widths := make([]int, colCount)
	for i := range widths {
		widths[i] = minCellWidth
	}

	for _, row := range table {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	result := make([]string, 0, len(table)+1)

	for i, row := range table {
		result = append(result, renderRow(row, widths, false))

		if i == 0 {
			result = append(result, renderRow(nil, widths, true))
		}
	}

	return result
}

func renderRow(row []string, widths []int, separator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, w := range widths {
		sb.WriteString(" ")

		if separator {
			sb.WriteString(strings.Repeat("-", w))
		} else {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(runewidth.FillRight(content, w))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

func cell(v any) string {
	if v == nil {
		return ""
	}

	return strings.ReplaceAll(fmt.Sprint(v), "|", `\|`)
}

func price(p *float64) string {
	if p == nil {
		return ""
	}

	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func percent(v any) string {
	s := cell(v)
	if s == "" {
		return ""
	}

	return s + "%"
}
