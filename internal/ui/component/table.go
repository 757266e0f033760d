package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// TableColumn represents a column configuration. A zero Width sizes the
// column to its content.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableCell is one value with an optional style layered over the row style.
type TableCell struct {
	Text  string
	Style lipgloss.Style
}

// TableRow represents a row of data
type TableRow struct {
	Cells []TableCell
}

// Table renders rows with per-cell styles, a selection cursor and vertical
// scrolling when the rows do not fit.
type Table struct {
	columns     []TableColumn
	rows        []TableRow
	width       int
	height      int
	selectedRow int
	offset      int

	headerStyle      lipgloss.Style
	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style
	borderStyle      lipgloss.Style

	showBorder bool
	selectable bool
	emptyText  string
}

// NewTable creates a new table component
func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text),

		selectedRowStyle: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder: true,
		selectable: true,
		emptyText:  "No data",
	}
}

// SetColumns sets the table columns
func (t *Table) SetColumns(columns []TableColumn) *Table {
	t.columns = columns
	return t
}

// SetRows replaces the rows and keeps the cursor in range.
func (t *Table) SetRows(rows []TableRow) *Table {
	t.rows = rows
	t.clampSelection()
	return t
}

// SetTextRows is SetRows for unstyled data.
func (t *Table) SetTextRows(rows [][]string) *Table {
	out := make([]TableRow, len(rows))
	for i, data := range rows {
		cells := make([]TableCell, len(data))
		for j, text := range data {
			cells[j] = TableCell{Text: text}
		}
		out[i] = TableRow{Cells: cells}
	}
	return t.SetRows(out)
}

// SetSize sets the table dimensions
func (t *Table) SetSize(width, height int) *Table {
	t.width = width
	t.height = height
	t.clampSelection()
	return t
}

// SetSelectedRow sets the currently selected row
func (t *Table) SetSelectedRow(index int) *Table {
	if index >= 0 && index < len(t.rows) {
		t.selectedRow = index
		t.scrollToSelection()
	}
	return t
}

// GetSelectedRow returns the currently selected row index
func (t *Table) GetSelectedRow() int {
	return t.selectedRow
}

// MoveUp moves selection up
func (t *Table) MoveUp() *Table {
	if t.selectable && t.selectedRow > 0 {
		t.selectedRow--
		t.scrollToSelection()
	}
	return t
}

// MoveDown moves selection down
func (t *Table) MoveDown() *Table {
	if t.selectable && t.selectedRow < len(t.rows)-1 {
		t.selectedRow++
		t.scrollToSelection()
	}
	return t
}

// SetSelectable enables/disables row selection
func (t *Table) SetSelectable(selectable bool) *Table {
	t.selectable = selectable
	return t
}

// SetShowBorder enables/disables table border
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// SetEmptyText sets what is shown when there are no rows.
func (t *Table) SetEmptyText(text string) *Table {
	t.emptyText = text
	return t
}

// GetRowCount returns the number of rows
func (t *Table) GetRowCount() int {
	return len(t.rows)
}

func (t *Table) clampSelection() {
	if t.selectedRow >= len(t.rows) {
		t.selectedRow = len(t.rows) - 1
	}
	if t.selectedRow < 0 {
		t.selectedRow = 0
	}
	t.scrollToSelection()
}

// visibleRows is how many data rows fit, or all of them without a height.
func (t *Table) visibleRows() int {
	if t.height <= 0 {
		return len(t.rows)
	}
	chrome := 2 // header and separator
	if t.showBorder {
		chrome += 2
	}
	if n := t.height - chrome; n > 0 {
		return n
	}
	return 1
}

func (t *Table) scrollToSelection() {
	visible := t.visibleRows()
	if t.selectedRow < t.offset {
		t.offset = t.selectedRow
	}
	if t.selectedRow >= t.offset+visible {
		t.offset = t.selectedRow - visible + 1
	}
	if maxOffset := len(t.rows) - visible; t.offset > maxOffset {
		t.offset = maxOffset
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return "No columns defined"
	}

	widths := t.columnWidths()
	var content strings.Builder

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = renderCell(col.Header, widths[i], col.Align, t.headerStyle)
	}
	content.WriteString(strings.Join(headers, "│"))
	content.WriteString("\n")

	separators := make([]string, len(t.columns))
	for i := range t.columns {
		separators[i] = strings.Repeat("─", widths[i]+2)
	}
	content.WriteString(strings.Join(separators, "┼"))

	if len(t.rows) == 0 {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(style.Base01).Italic(true).Render(" " + t.emptyText))
	}

	end := t.offset + t.visibleRows()
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for rowIndex := t.offset; rowIndex < end; rowIndex++ {
		row := t.rows[rowIndex]
		rowStyle := t.rowStyle
		if t.selectable && rowIndex == t.selectedRow {
			rowStyle = t.selectedRowStyle.Inherit(t.rowStyle)
		}

		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			var cell TableCell
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			cells[i] = renderCell(cell.Text, widths[i], col.Align, cell.Style.Inherit(rowStyle))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(cells, "│"))
	}

	result := content.String()
	if t.showBorder {
		result = t.borderStyle.Render(result)
	}
	return result
}

// renderCell pads content to width with one space of margin on each side.
// The margin stays unstyled so adjacent backgrounds do not merge.
func renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	content = truncate(content, width)
	return " " + cellStyle.Width(width).Align(align).Render(content) + " "
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width > 3 {
		return string(r[:width-3]) + "..."
	}
	return string(r[:width])
}

// columnWidths sizes auto columns to their content and shrinks them evenly
// when the total would overflow the table width.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	fixed, auto := 0, 0
	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixed += col.Width
			continue
		}
		auto++
		w := lipgloss.Width(col.Header)
		for _, row := range t.rows {
			if i < len(row.Cells) {
				if cw := lipgloss.Width(row.Cells[i].Text); cw > w {
					w = cw
				}
			}
		}
		widths[i] = w
	}

	if t.width <= 0 || auto == 0 {
		return widths
	}

	// Each column carries two padding cells and one separator.
	overhead := len(t.columns)*3 - 1
	if t.showBorder {
		overhead += 2
	}
	available := t.width - overhead - fixed

	total := 0
	for i, col := range t.columns {
		if col.Width <= 0 {
			total += widths[i]
		}
	}
	if total <= available {
		return widths
	}

	share := available / auto
	if share < 4 {
		share = 4
	}
	for i, col := range t.columns {
		if col.Width <= 0 && widths[i] > share {
			widths[i] = share
		}
	}
	return widths
}
