package ui

import (
	"fmt"
	"strings"

	"github.com/snoosift/snoosift/internal/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// browseModel is the interactive results browser: a scrollable table of the
// fetched records with a toggleable detail pane for the selected row.
type browseModel struct {
	title      string
	records    []models.Record
	table      table.Model
	showDetail bool
	width      int
	quitting   bool
}

func newBrowseModel(title string, records []models.Record) browseModel {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Kind", Width: 10},
		{Title: "Author", Width: 18},
		{Title: "Subreddit", Width: 18},
		{Title: "Score", Width: 7},
		{Title: "Title", Width: 50},
	}

	rows := make([]table.Row, 0, len(records))
	for i, rec := range records {
		flat := models.Flatten(rec)
		rowTitle := flat.Title
		if rowTitle == "" {
			rowTitle = flat.Body
		}
		rowTitle = strings.ReplaceAll(rowTitle, "\n", " ")
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			flat.Kind,
			flat.Author,
			flat.Subreddit,
			fmt.Sprintf("%d", flat.Score),
			truncate(rowTitle, 50),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(purple).
		BorderBottom(true).
		Bold(true).
		Foreground(pink)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("0")).
		Background(yellow).
		Bold(true)
	t.SetStyles(styles)

	return browseModel{title: title, records: records, table: t}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.showDetail = !m.showDetail
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(m.detailView())
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("↑/↓: navigate | Enter: toggle detail | q/Esc: quit"))
	return b.String()
}

func (m browseModel) detailView() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.records) {
		return ""
	}
	flat := models.Flatten(m.records[cursor])

	lines := []string{
		detailLine("Kind", flat.Kind),
		detailLine("Fullname", flat.Fullname),
		detailLine("Author", flat.Author),
		detailLine("Subreddit", flat.Subreddit),
		detailLine("Score", fmt.Sprintf("%d", flat.Score)),
		detailLine("Created", formatEpoch(flat.CreatedUTC)),
	}
	if flat.Permalink != "" {
		lines = append(lines, detailLine("Permalink", flat.Permalink))
	}
	body := flat.Body
	if body == "" {
		body = flat.Title
	}
	if body != "" {
		lines = append(lines, "", truncate(body, 400))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// BrowseRecords runs the interactive results browser until the user quits.
func BrowseRecords(title string, records []models.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("nothing to browse")
	}
	p := tea.NewProgram(newBrowseModel(title, records), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("results browser error: %w", err)
	}
	return nil
}
