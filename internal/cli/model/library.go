// Package model holds the Bubble Tea models behind interactive commands.
package model

import (
	"context"
	"fmt"

	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/cli/styles"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LibraryLister loads library rows.
type LibraryLister interface {
	Execute(ctx context.Context, input usecase.ListLibraryInput) (*usecase.ListLibraryOutput, error)
}

// LibraryModel is the interactive game library table.
type LibraryModel struct {
	ctx    context.Context
	lister LibraryLister
	theme  *styles.Theme

	input     usecase.ListLibraryInput
	filter    textinput.Model
	filtering bool

	table   table.Model
	rows    []usecase.LibraryRow
	hidden  int
	loading bool
	err     error
	width   int
	height  int

	// Selected is the row chosen with enter, if any.
	Selected *usecase.LibraryRow
}

// NewLibraryModel creates a library table starting from input.
func NewLibraryModel(ctx context.Context, theme *styles.Theme, lister LibraryLister, input usecase.ListLibraryInput) LibraryModel {
	if input.SortBy == "" {
		input.SortBy = usecase.SortByTitle
	}

	ti := textinput.New()
	ti.Placeholder = "filter by title"
	ti.Prompt = "/ "
	ti.SetValue(input.Query)

	m := LibraryModel{
		ctx:     ctx,
		lister:  lister,
		theme:   theme,
		input:   input,
		filter:  ti,
		loading: true,
		width:   100,
		height:  24,
	}
	m.rebuildTable()
	return m
}

type libraryLoadedMsg struct {
	out *usecase.ListLibraryOutput
	err error
}

// Init implements tea.Model.
func (m LibraryModel) Init() tea.Cmd {
	return m.load()
}

func (m LibraryModel) load() tea.Cmd {
	ctx, lister, input := m.ctx, m.lister, m.input
	return func() tea.Msg {
		out, err := lister.Execute(ctx, input)
		return libraryLoadedMsg{out: out, err: err}
	}
}

// Update implements tea.Model.
func (m LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil

	case libraryLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.rows = msg.out.Rows
			m.hidden = msg.out.HiddenCount
		}
		m.rebuildTable()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m LibraryModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		m.table.Focus()
		if msg.String() == "esc" {
			m.filter.SetValue(m.input.Query)
			return m, nil
		}
		m.input.Query = m.filter.Value()
		return m.reload()
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m LibraryModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.table.Blur()
		return m, m.filter.Focus()
	case "s":
		m.input.SortBy = nextSort(m.input.SortBy)
		return m.reload()
	case "r":
		m.input.Descending = !m.input.Descending
		return m.reload()
	case "c":
		m.input.OnlyCompatible = !m.input.OnlyCompatible
		return m.reload()
	case "enter":
		if i := m.table.Cursor(); i >= 0 && i < len(m.rows) {
			row := m.rows[i]
			m.Selected = &row
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LibraryModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, m.load()
}

func nextSort(current usecase.LibrarySort) usecase.LibrarySort {
	for i, s := range usecase.LibrarySorts {
		if s == current {
			return usecase.LibrarySorts[(i+1)%len(usecase.LibrarySorts)]
		}
	}
	return usecase.SortByTitle
}

func (m *LibraryModel) rebuildTable() {
	height := m.height - 8
	if height < 3 {
		height = 3
	}
	m.table = styles.NewStyledTable(
		m.theme,
		styles.LibraryTableColumns(m.width),
		styles.LibraryTableRows(m.rows),
		m.width-4,
		height,
	)
	if m.filtering {
		m.table.Blur()
	}
}

// Input returns the current filter and sort settings.
func (m LibraryModel) Input() usecase.ListLibraryInput {
	return m.input
}

// Rows returns the rows currently displayed.
func (m LibraryModel) Rows() []usecase.LibraryRow {
	return m.rows
}

// View implements tea.Model.
func (m LibraryModel) View() string {
	t := m.theme

	if m.err != nil {
		return t.Box.Render(t.ErrorStyle.Render("Error: " + m.err.Error()))
	}

	order := "asc"
	if m.input.Descending {
		order = "desc"
	}
	status := fmt.Sprintf("%d games", len(m.rows))
	if m.hidden > 0 {
		status += fmt.Sprintf(", %d hidden", m.hidden)
	}
	if m.loading {
		status = "loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		t.Title.Render("Library"),
		"  ",
		t.BadgeMuted.Render("sort: "+string(m.input.SortBy)+" "+order),
		" ",
		t.BadgeMuted.Render(status),
	)
	if m.input.OnlyCompatible {
		header = lipgloss.JoinHorizontal(lipgloss.Left, header, " ", t.Badge.Render("compatible"))
	}

	filter := t.Input.Render(m.filter.View())
	if m.filtering {
		filter = t.InputFocused.Render(m.filter.View())
	}

	body := m.table.View()
	if !m.loading && len(m.rows) == 0 {
		body = t.Subtle.Render("No games match.")
	}

	help := t.Help("/", "filter", "s", "sort", "r", "reverse", "c", "compatible only", "enter", "select", "q", "quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, filter, body, help)
}
