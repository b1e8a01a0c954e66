package tui

import (
	"fmt"
	"strings"

	btable "github.com/charmbracelet/bubbles/table"

	"github.com/bssshyamsundhar/float-chat/internal/table"
)

// maxToggleColumns is how many columns the number keys can reach.
const maxToggleColumns = 9

func newResultsGrid() btable.Model {
	grid := btable.New()
	styles := btable.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(tableHeadStyle.GetForeground())
	styles.Selected = tableSelStyle
	grid.SetStyles(styles)
	grid.Focus()
	return grid
}

// rebuildResultsGrid pushes the current page of the result model into
// the grid widget. Rows are cleared before columns change so a shrinking
// column set never renders against stale cells.
func (m *model) rebuildResultsGrid() {
	if m.results == nil {
		return
	}
	cols := m.results.VisibleColumns()
	page := m.results.Page()

	m.resultsGrid.SetRows(nil)
	if len(cols) == 0 {
		m.resultsGrid.SetColumns(nil)
		return
	}

	widths := columnWidths(cols, page)
	bcols := make([]btable.Column, len(cols))
	for i, name := range cols {
		bcols[i] = btable.Column{Title: name, Width: widths[i]}
	}
	rows := make([]btable.Row, len(page))
	for ri, rec := range page {
		row := make(btable.Row, len(cols))
		for ci, name := range cols {
			row[ci] = table.FormatCell(rec[name])
		}
		rows[ri] = row
	}
	m.resultsGrid.SetColumns(bcols)
	m.resultsGrid.SetRows(rows)
	height := len(rows) + 1
	if height < 2 {
		height = 2
	}
	m.resultsGrid.SetHeight(height)
}

func columnWidths(cols []string, rows []map[string]any) []int {
	widths := make([]int, len(cols))
	for i, name := range cols {
		w := len([]rune(name))
		for _, rec := range rows {
			if cw := len([]rune(table.FormatCell(rec[name]))); cw > w {
				w = cw
			}
		}
		if w < 4 {
			w = 4
		}
		if w > 28 {
			w = 28
		}
		widths[i] = w
	}
	return widths
}

func (m model) viewResults() string {
	if m.results == nil {
		return dimStyle.Render("No results yet. Ask a question in the chat view and the rows land here.")
	}
	summary := fmt.Sprintf("%d of %d rows · page %d/%d",
		m.results.FilteredLen(), m.results.Len(), m.results.PageIndex()+1, m.results.PageCount())
	parts := []string{headerStyle.Render("Results") + "  " + dimStyle.Render(summary)}

	switch {
	case m.filtering:
		parts = append(parts, m.filterInput.View())
	case m.results.Filter() != "":
		parts = append(parts, dimStyle.Render("filter: "+m.results.Filter()+"  (ctrl+f to edit, clears on empty)"))
	default:
		parts = append(parts, dimStyle.Render("ctrl+f filter · ←/→ pages · 1-9 toggle columns · e export csv"))
	}
	parts = append(parts, "")

	if len(m.results.VisibleColumns()) == 0 {
		parts = append(parts, dimStyle.Render("All columns hidden. Press 1-9 to bring them back."))
	} else if m.results.FilteredLen() == 0 {
		parts = append(parts, dimStyle.Render("No rows match the filter."))
	} else {
		parts = append(parts, m.resultsGrid.View())
	}
	parts = append(parts, "", m.columnLegend())
	return strings.Join(parts, "\n")
}

func (m model) columnLegend() string {
	cols := m.results.Columns()
	labels := make([]string, 0, len(cols))
	for i, c := range cols {
		if i >= maxToggleColumns {
			labels = append(labels, dimStyle.Render(fmt.Sprintf("+%d more", len(cols)-maxToggleColumns)))
			break
		}
		label := fmt.Sprintf("%d:%s", i+1, c.Name)
		if c.Visible {
			labels = append(labels, label)
		} else {
			labels = append(labels, dimStyle.Render(label+" (hidden)"))
		}
	}
	return footerStyle.Render("columns  ") + strings.Join(labels, "  ")
}

// toggleColumnByIndex maps a pressed digit onto the column at that
// position, counting from one.
func (m *model) toggleColumnByIndex(idx int) bool {
	if m.results == nil {
		return false
	}
	cols := m.results.Columns()
	if idx < 1 || idx > len(cols) || idx > maxToggleColumns {
		return false
	}
	if !m.results.ToggleColumn(cols[idx-1].Name) {
		return false
	}
	m.rebuildResultsGrid()
	return true
}
