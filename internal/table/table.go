// Package table holds the result grid state: which columns are shown,
// which rows survive the filter, and where the pager sits. It renders
// nothing itself; the terminal view and the CSV exporter both read from
// it.
package table

import (
	"sort"
	"strings"
)

// Column is one named column and its visibility toggle.
type Column struct {
	Name    string
	Visible bool
}

// Model is the full state of one result set. The zero value is unusable;
// construct with New.
type Model struct {
	columns  []Column
	rows     []map[string]any
	filter   string
	filtered []map[string]any
	page     int
	pageSize int
}

// New builds a model over the given rows. Column order is preserved as
// given and every column starts visible. Without a column list the keys
// of the first row are used, sorted, since map iteration order would
// differ run to run. A non-positive pageSize falls back to showing ten
// rows per page.
func New(columns []string, rows []map[string]any, pageSize int) *Model {
	if pageSize <= 0 {
		pageSize = 10
	}
	if len(columns) == 0 && len(rows) > 0 {
		for name := range rows[0] {
			columns = append(columns, name)
		}
		sort.Strings(columns)
	}
	m := &Model{
		columns:  make([]Column, 0, len(columns)),
		rows:     rows,
		pageSize: pageSize,
	}
	for _, name := range columns {
		m.columns = append(m.columns, Column{Name: name, Visible: true})
	}
	m.refilter()
	return m
}

// Len is the total row count before filtering.
func (m *Model) Len() int { return len(m.rows) }

// Empty reports whether the model holds no rows at all.
func (m *Model) Empty() bool { return len(m.rows) == 0 }

// Columns returns a snapshot of every column with its current visibility.
func (m *Model) Columns() []Column {
	out := make([]Column, len(m.columns))
	copy(out, m.columns)
	return out
}

// VisibleColumns returns the names of the columns currently shown, in
// their original order.
func (m *Model) VisibleColumns() []string {
	var out []string
	for _, c := range m.columns {
		if c.Visible {
			out = append(out, c.Name)
		}
	}
	return out
}

// ToggleColumn flips visibility of the named column and reports whether
// the name was known. Hiding a column never discards its data.
func (m *Model) ToggleColumn(name string) bool {
	for i := range m.columns {
		if m.columns[i].Name == name {
			m.columns[i].Visible = !m.columns[i].Visible
			return true
		}
	}
	return false
}

// Filter returns the active filter text.
func (m *Model) Filter() string { return m.filter }

// SetFilter replaces the filter text and snaps the pager back to the
// first page. Matching is a case-insensitive substring test against any
// cell of the row, hidden columns included.
func (m *Model) SetFilter(q string) {
	m.filter = q
	m.page = 0
	m.refilter()
}

func (m *Model) refilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter))
	if q == "" {
		m.filtered = m.rows
		m.clampPage()
		return
	}
	out := make([]map[string]any, 0, len(m.rows))
	for _, row := range m.rows {
		if rowMatches(row, q) {
			out = append(out, row)
		}
	}
	m.filtered = out
	m.clampPage()
}

func rowMatches(row map[string]any, q string) bool {
	for _, v := range row {
		if strings.Contains(cellSearchText(v), q) {
			return true
		}
	}
	return false
}

// Filtered returns every row passing the current filter, in original
// order.
func (m *Model) Filtered() []map[string]any { return m.filtered }

// FilteredLen is the number of rows passing the current filter.
func (m *Model) FilteredLen() int { return len(m.filtered) }

// PageCount is the number of pages the filtered rows span, never less
// than one.
func (m *Model) PageCount() int {
	n := (len(m.filtered) + m.pageSize - 1) / m.pageSize
	if n < 1 {
		return 1
	}
	return n
}

// PageIndex is the zero-based index of the current page.
func (m *Model) PageIndex() int { return m.page }

// PageSize is the configured rows-per-page.
func (m *Model) PageSize() int { return m.pageSize }

// Page returns the filtered rows belonging to the current page.
func (m *Model) Page() []map[string]any {
	start := m.page * m.pageSize
	if start >= len(m.filtered) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	return m.filtered[start:end]
}

// NextPage advances one page, stopping at the last.
func (m *Model) NextPage() {
	if m.page < m.PageCount()-1 {
		m.page++
	}
}

// PrevPage steps back one page, stopping at the first.
func (m *Model) PrevPage() {
	if m.page > 0 {
		m.page--
	}
}

func (m *Model) clampPage() {
	if last := m.PageCount() - 1; m.page > last {
		m.page = last
	}
	if m.page < 0 {
		m.page = 0
	}
}

// ExportView is the slice of the model a CSV export writes: the visible
// column names and every filtered row, not just the current page.
func (m *Model) ExportView() (columns []string, rows []map[string]any) {
	return m.VisibleColumns(), m.Filtered()
}
