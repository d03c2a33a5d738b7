package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidanlsb/muninn/internal/search"
	"github.com/aidanlsb/muninn/internal/ui"
	"github.com/aidanlsb/muninn/internal/vault"
)

type state int

const (
	stateIdle state = iota
	stateSearching
	stateResults
	stateEmpty
	stateFailed
)

// Model is the live-search screen. All mutation happens in Update; the
// session delivers its events as messages through the program sink.
type Model struct {
	input   textinput.Model
	spin    spinner.Model
	session *search.Session
	editor  string

	state    state
	results  []search.MatchRecord
	selected int
	skipped  int
	count    int
	err      error

	preview     bool
	previewText string

	width  int
	height int
}

// NewModel creates the live-search model around an existing session.
func NewModel(session *search.Session, editor string) Model {
	ti := textinput.New()
	ti.Placeholder = "type to search"
	ti.Prompt = "/ "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		input:   ti,
		spin:    sp,
		session: session,
		editor:  editor,
		state:   stateIdle,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case spinner.TickMsg:
		if m.state != stateSearching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SearchStartedMsg:
		m.state = stateSearching
		m.results = nil
		m.selected = 0
		m.skipped = 0
		m.count = 0
		m.err = nil
		m.previewText = ""
		return m, m.spin.Tick

	case MatchMsg:
		m.results = append(m.results, msg.Record)
		return m, nil

	case SkippedMsg:
		m.skipped++
		return m, nil

	case EmptyMsg:
		m.state = stateEmpty
		return m, nil

	case DoneMsg:
		m.state = stateResults
		m.count = msg.Count
		m.loadPreview()
		return m, nil

	case FailedMsg:
		m.state = stateFailed
		m.err = msg.Err
		return m, nil

	case ClearedMsg:
		m.state = stateIdle
		m.results = nil
		m.selected = 0
		m.skipped = 0
		m.count = 0
		m.err = nil
		m.previewText = ""
		return m, nil

	case VaultChangedMsg:
		m.session.Requery()
		return m, nil
	}

	return m.updateInput(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.input.Value() == "" {
			return m, tea.Quit
		}
		m.input.SetValue("")
		m.session.SetQuery("")
		return m, nil

	case "up":
		if m.selected > 0 {
			m.selected--
			m.loadPreview()
		}
		return m, nil

	case "down":
		if m.selected < len(m.results)-1 {
			m.selected++
			m.loadPreview()
		}
		return m, nil

	case "enter":
		if rec, ok := m.selectedRecord(); ok {
			vault.OpenInEditor(m.editor, rec.Doc.Path)
		}
		return m, nil

	case "tab":
		m.preview = !m.preview
		m.loadPreview()
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput forwards a message to the text input and pushes any query
// change into the session.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.session.SetQuery(v)
	}
	return m, cmd
}

func (m Model) selectedRecord() (search.MatchRecord, bool) {
	if m.selected < 0 || m.selected >= len(m.results) {
		return search.MatchRecord{}, false
	}
	return m.results[m.selected], true
}

// loadPreview renders the selected note for the preview pane.
func (m *Model) loadPreview() {
	if !m.preview {
		m.previewText = ""
		return
	}
	rec, ok := m.selectedRecord()
	if !ok {
		m.previewText = ""
		return
	}

	content, err := os.ReadFile(rec.Doc.Path)
	if err != nil {
		m.previewText = ui.Warningf("preview unavailable: %v", err)
		return
	}

	width := m.width
	if width <= 0 {
		width = ui.TermWidth()
	}
	rendered, err := ui.RenderMarkdown(string(content), width)
	if err != nil {
		m.previewText = ui.Warningf("preview unavailable: %v", err)
		return
	}
	m.previewText = rendered
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	for i, rec := range m.results {
		marker := "  "
		if i == m.selected && m.state == stateResults {
			marker = ui.Accent.Render("▸ ")
		}
		block := ui.RenderRecord(rec, true)
		for j, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
			if j == 0 {
				b.WriteString(marker)
			} else {
				b.WriteString("  ")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.preview && m.previewText != "" {
		b.WriteString("\n")
		b.WriteString(m.previewText)
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("↑/↓ select · enter open · tab preview · esc clear · ctrl+c quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) statusLine() string {
	switch m.state {
	case stateIdle:
		return ui.Muted.Render("Search your vault")
	case stateSearching:
		return fmt.Sprintf("%s searching…", m.spin.View())
	case stateEmpty:
		return ui.Muted.Render("No matches")
	case stateFailed:
		return ui.Error(fmt.Sprintf("search failed: %v", m.err))
	case stateResults:
		status := fmt.Sprintf("%d matching notes", m.count)
		if m.skipped > 0 {
			status += ui.Muted.Render(fmt.Sprintf("  (%d unreadable, skipped)", m.skipped))
		}
		return status
	}
	return ""
}
