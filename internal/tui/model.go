// Package tui hosts a sand world in the terminal with Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sandfall/internal/app"
	"sandfall/internal/ui"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

func tickCmd(tps int) tea.Cmd {
	if tps <= 0 {
		tps = 30
	}
	return tea.Tick(time.Second/time.Duration(tps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// Model is the Bubble Tea model for an interactive session.
type Model struct {
	session  *app.Session
	controls *ui.Controls
	tps      int

	showParams bool
	focus      int
	// painting is the mouse button held over the grid, if any.
	painting tea.MouseButton
	quitting bool
}

// NewModel wraps session, ticking at tps.
func NewModel(session *app.Session, tps int) Model {
	return Model{
		session:  session,
		controls: ui.NewControls(session.World()),
		tps:      tps,
		painting: tea.MouseButtonNone,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd { return tickCmd(m.tps) }

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case TickMsg:
		m.session.Advance()
		return m, tickCmd(m.tps)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "tab" {
		m.showParams = !m.showParams
		m.controls.Refresh()
		return m, nil
	}
	if m.showParams && m.controls.Len() > 0 {
		switch key {
		case "up", "k":
			m.focus = (m.focus + m.controls.Len() - 1) % m.controls.Len()
			return m, nil
		case "down", "j":
			m.focus = (m.focus + 1) % m.controls.Len()
			return m, nil
		case "left", "h":
			m.controls.Adjust(m.focus, -1)
			return m, nil
		case "right", "l":
			m.controls.Adjust(m.focus, 1)
			return m, nil
		}
	}
	if m.session.HandleKey(key) == app.CommandQuit {
		m.quitting = true
		return m, tea.Quit
	}
	// Brush keys change a parameter behind the panel's back.
	m.controls.Refresh()
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		m.painting = msg.Button
	case tea.MouseActionRelease:
		m.painting = tea.MouseButtonNone
		return m, nil
	}
	size := m.session.World().Size()
	x, y := CellToGrid(msg.X, msg.Y, size.H)
	if x < 0 || x >= size.W || y < 0 || y >= size.H {
		return m, nil
	}
	switch m.painting {
	case tea.MouseButtonLeft:
		m.session.Paint(x, y)
	case tea.MouseButtonRight:
		m.session.Erase(x, y)
	}
	return m, nil
}

// View renders the grid followed by the status lines and, when toggled, the
// parameter panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	w := m.session.World()
	size := w.Size()

	var sb strings.Builder
	sb.WriteString(RenderHalfBlocks(w.Pixels(), size.W, size.H))
	sb.WriteByte('\n')

	st := m.session.Status()
	sb.WriteString(statusStyle.Render(st.Title + "  " + strings.Join(st.Lines[:2], "  ")))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Join(st.Lines[2:], "  ")))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render("1-7 kind  +/- brush  space pause  n step  c clear  r reset  s reseed  tab params  q quit"))

	if m.showParams {
		for i := 0; i < m.controls.Len(); i++ {
			c := m.controls.At(i)
			line := fmt.Sprintf("  %-20s %8s", c.Spec.Label, c.Value)
			sb.WriteByte('\n')
			if i == m.focus {
				sb.WriteString(focusStyle.Render(">" + line[1:]))
				continue
			}
			sb.WriteString(dimStyle.Render(line))
		}
	}
	return sb.String()
}

// Run starts the Bubble Tea program for session.
func Run(session *app.Session, tps int) error {
	p := tea.NewProgram(
		NewModel(session, tps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
