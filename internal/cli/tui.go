package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/CursiveCrow/cadence/pkg/pipeline"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// taskRow is one task with its derived schedule values, flattened for display.
type taskRow struct {
	ID       string
	Start    int64
	Duration int64
	Slack    int64
	Lane     int
	Row      int
	HasRow   bool
	Critical bool
}

// TaskListModel is the bubbletea model for browsing a computed schedule.
// Tasks are listed in topological order; the cursor scrolls through a
// window when the schedule is taller than the terminal.
type TaskListModel struct {
	Tasks  []taskRow
	Cursor int
	Height int
	Offset int
}

// NewTaskListModel flattens a pipeline result into a browsable task list.
func NewTaskListModel(p *plan.Plan, result *pipeline.Result) TaskListModel {
	tasks := p.TaskIndex()
	rows := make([]taskRow, 0, len(result.Order))
	for _, id := range result.Order {
		t := tasks[id]
		row := taskRow{
			ID:       id,
			Start:    t.Start,
			Duration: t.Duration,
			Lane:     result.Lanes.Lanes[id],
		}
		if slack, ok := result.Timing.Slack[id]; ok {
			row.Slack = slack
			row.Critical = slack == 0
		}
		if result.Rows != nil {
			if r, ok := result.Rows.Rows[id]; ok {
				row.Row = r
				row.HasRow = true
			}
		}
		rows = append(rows, row)
	}
	return TaskListModel{
		Tasks:  rows,
		Height: 15,
	}
}

func (m TaskListModel) Init() tea.Cmd {
	return nil
}

func (m TaskListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tasks)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Tasks) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TaskListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Schedule"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G jump  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Tasks) {
		end = len(m.Tasks)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Tasks[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		slack := fmt.Sprintf("%d", t.Slack)
		if t.Critical {
			slack = "critical"
		}

		row := "—"
		if t.HasRow {
			row = fmt.Sprintf("%d", t.Row)
		}

		rows = append(rows, []string{
			cursor,
			t.ID,
			fmt.Sprintf("%d", t.Start),
			fmt.Sprintf("%d", t.Duration),
			slack,
			fmt.Sprintf("%d", t.Lane),
			row,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Task", "Start", "Dur", "Slack", "Lane", "Row").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Tasks) {
				return lipgloss.NewStyle()
			}
			t := m.Tasks[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if t.Critical {
				base = base.Foreground(colorRed)
			}
			if isCurrent {
				return base.Bold(true).Foreground(colorCyan)
			}
			if !t.Critical {
				base = base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Tasks))))

	return b.String()
}
