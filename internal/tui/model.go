package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vecalign/internal/domain"
	"vecalign/internal/search"
)

// Model is the Bubble Tea model for the neighbor explorer. A queried word is
// looked up in the source space and its nearest neighbors are listed in both
// spaces, which only reads sensibly after alignment.
type Model struct {
	source    domain.MutableSpace
	target    domain.MutableSpace
	srcIndex  *search.Index
	tgtIndex  *search.Index
	input     textinput.Model
	viewport  viewport.Model
	status    string
	ready     bool
	lastQuery string
	topK      int
}

// New creates the explorer over an aligned source space and its target space.
func New(source, target domain.MutableSpace, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a source-space word and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	if topK <= 0 {
		topK = 10
	}
	return Model{
		source:   source,
		target:   target,
		srcIndex: search.NewIndex(source),
		tgtIndex: search.NewIndex(target),
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("Loaded %d source and %d target words.", source.Len(), target.Len()),
		topK:     topK,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + query box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.lastQuery = q
				m.viewport.SetContent(m.renderNeighbors(q))
				return m, nil
			}
		case "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("vecalign explorer")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m *Model) renderNeighbors(word string) string {
	vector, err := m.source.Vector(word)
	if err != nil {
		m.status = fmt.Sprintf("%q is not in the source space", word)
		return "No results."
	}
	m.status = fmt.Sprintf("Neighbors of %q", word)
	var b strings.Builder
	b.WriteString(titleStyle.Render("target space"))
	b.WriteByte('\n')
	writeResults(&b, m.tgtIndex.Neighbors(vector, m.topK))
	b.WriteByte('\n')
	b.WriteString(titleStyle.Render("source space"))
	b.WriteByte('\n')
	writeResults(&b, m.srcIndex.Neighbors(vector, m.topK))
	return b.String()
}

func writeResults(b *strings.Builder, results []domain.SearchResult) {
	for i, r := range results {
		fmt.Fprintf(b, "%2d. %-24s %.4f\n", i+1, r.Word, r.Score)
	}
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
