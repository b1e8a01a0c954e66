package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxCellRunes caps how wide a single cell renders before truncation.
const maxCellRunes = 50

// emptyCell stands in for missing and null values in the grid. A
// present-but-empty string is not a null and renders as blank.
const emptyCell = "—"

// FormatCell renders one untyped cell value for display. Whole numbers
// drop their decimal point, other floats round to four places, and
// anything longer than maxCellRunes is cut with a trailing ellipsis.
func FormatCell(v any) string {
	return truncateCell(cellDisplay(v))
}

func cellDisplay(v any) string {
	switch x := v.(type) {
	case nil:
		return emptyCell
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
		return strconv.FormatFloat(x, 'f', 4, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func truncateCell(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCellRunes {
		return s
	}
	return string(runes[:maxCellRunes-3]) + "..."
}

// RawCell renders a value without display affordances such as the null
// placeholder, float rounding, and truncation. Filtering and CSV export
// both read cells through it so neither is fooled by what the grid
// happens to show.
func RawCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return cellDisplay(v)
	}
}

// cellSearchText is the form a cell takes for filtering. Nulls match
// nothing.
func cellSearchText(v any) string {
	return strings.ToLower(RawCell(v))
}
