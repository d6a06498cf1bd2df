// Package tui runs the chart widget in the terminal.
package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/samplechart/internal/ui/features/common"
	"github.com/leapstack-labs/samplechart/internal/widget"
	"github.com/leapstack-labs/samplechart/pkg/core"
)

// submitDoneMsg carries the result of a Submit run off the UI goroutine.
type submitDoneMsg struct {
	err error
}

// Model is the bubbletea model wrapping a widget.
type Model struct {
	ctx     context.Context
	widget  *widget.Widget
	plot    PlotConfig
	spinner spinner.Model
	table   table.Model

	state   widget.State
	cursor  int
	loading bool
	width   int
}

// NewModel creates a terminal model for an initialized widget.
func NewModel(ctx context.Context, w *widget.Widget) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "X", Width: 14},
			{Title: "Y", Width: 14},
		}),
		table.WithHeight(8),
		table.WithFocused(true),
	)

	m := Model{
		ctx:     ctx,
		widget:  w,
		plot:    DefaultPlotConfig(),
		spinner: sp,
		table:   tbl,
	}
	m.refresh()
	m.cursor = max(slices.Index(m.state.SampleSizes, m.state.SampleSize), 0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.plot.Width = max(msg.Width-16, 20)
		return m, nil

	case submitDoneMsg:
		m.loading = false
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sizes := m.state.SampleSizes
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "left", "h", "shift+tab":
		if len(sizes) > 0 {
			m.cursor = (m.cursor - 1 + len(sizes)) % len(sizes)
			m.widget.SelectSampleSize(sizes[m.cursor])
			m.state.SampleSize = sizes[m.cursor]
		}
		return m, nil

	case "right", "l", "tab":
		if len(sizes) > 0 {
			m.cursor = (m.cursor + 1) % len(sizes)
			m.widget.SelectSampleSize(sizes[m.cursor])
			m.state.SampleSize = sizes[m.cursor]
		}
		return m, nil

	case "enter", "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.submit(), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	ctx, w := m.ctx, m.widget
	return func() tea.Msg {
		return submitDoneMsg{err: w.Submit(ctx)}
	}
}

// refresh copies the widget state into the model.
func (m *Model) refresh() {
	m.state = m.widget.State()

	rows := make([]table.Row, len(m.state.Points))
	for i, p := range m.state.Points {
		rows[i] = table.Row{core.FormatValue(p.X), core.FormatValue(p.Y)}
	}
	m.table.SetRows(rows)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sample chart"))
	b.WriteString("\n")
	b.WriteString(m.selectorView())
	b.WriteString("\n\n")

	if msg := m.state.ErrMessage(); msg != "" {
		b.WriteString(errorStyle.Render("Error: " + msg))
		b.WriteString("\n\n")
	}

	b.WriteString(boxStyle.Render(Plot(m.state.Points, m.state.Bounds, m.plot)))
	b.WriteString("\n")

	if m.state.TableVisible() {
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("←/→ sample size • enter load data • q quit"))
	return b.String()
}

func (m Model) selectorView() string {
	items := make([]string, 0, len(m.state.SampleSizes)+2)
	items = append(items, "Sample size:")
	for _, size := range m.state.SampleSizes {
		label := common.SizeLabel(size)
		if size == m.state.SampleSize {
			items = append(items, selectedStyle.Render(label))
		} else {
			items = append(items, optionStyle.Render(label))
		}
	}
	if m.loading {
		items = append(items, m.spinner.View()+" loading")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, items...)
}

// Run starts the terminal program and blocks until the user quits.
func Run(ctx context.Context, w *widget.Widget, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(ctx, w), opts...).Run()
	return err
}
