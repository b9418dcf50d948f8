package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

// NewStyledTable creates a themed interactive table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// LibraryHeaders are the library table column titles.
var LibraryHeaders = []string{"Name", "Play time", "Last played", "Published"}

// LibraryTableColumns returns columns for the interactive library table.
func LibraryTableColumns(width int) []table.Column {
	const fixed = 12 + 14 + 14
	name := width - fixed - 8
	if name < 24 {
		name = 24
	}
	return []table.Column{
		{Title: LibraryHeaders[0], Width: name},
		{Title: LibraryHeaders[1], Width: 12},
		{Title: LibraryHeaders[2], Width: 14},
		{Title: LibraryHeaders[3], Width: 14},
	}
}

// LibraryRow converts a library row to cells. The short text follows the
// title when there is one.
func LibraryRow(r usecase.LibraryRow) []string {
	name := r.Name
	if r.ShortText != "" {
		name += " - " + r.ShortText
	}
	return []string{name, r.PlayTime, r.LastPlayed, r.Published}
}

// LibraryTableRows converts library rows for the interactive table.
func LibraryTableRows(rows []usecase.LibraryRow) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = LibraryRow(r)
	}
	return out
}

// RenderLibraryTable renders rows as a static bordered table.
func (t *Theme) RenderLibraryTable(rows []usecase.LibraryRow) string {
	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
	muted := cell.Foreground(t.Muted)

	tbl := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(LibraryHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return header
			case col == 0:
				return cell
			default:
				return muted
			}
		})
	for _, r := range rows {
		tbl.Row(LibraryRow(r)...)
	}
	return tbl.String()
}

// UploadHeaders are the uploads table column titles.
var UploadHeaders = []string{"ID", "File", "Type", "Size", "Platforms"}

// RenderUploadsTable renders a game's uploads as a static bordered table.
func (t *Theme) RenderUploadsTable(uploads []entity.Upload) string {
	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)

	tbl := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(UploadHeaders...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return header
			}
			return cell
		})
	for _, u := range uploads {
		name := u.DisplayName
		if name == "" {
			name = u.Filename
		}
		tbl.Row(strconv.FormatInt(u.ID, 10), name, u.Type, FormatSize(u.Size), PlatformList(u.Platforms))
	}
	return tbl.String()
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// PlatformList names the platforms of a set, "-" when empty.
func PlatformList(p entity.Platforms) string {
	var names []string
	if p.Windows {
		names = append(names, "windows")
	}
	if p.OSX {
		names = append(names, "macos")
	}
	if p.Linux {
		names = append(names, "linux")
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
