package main

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/layerkit/psd/document"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E86AB")).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	layerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E86AB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseModel struct {
	err      error
	doc      *document.Document
	filename string
	trim     bool
	rows     []treeRow
	selected int
	input    textinput.Model
	message  string
	state    modelState
}

// treeRow is one line of the flattened tree view. Collapsed groups hide
// their descendants from the flattening.
type treeRow struct {
	node  *document.Node
	depth int
}

type modelState int

const (
	stateBrowse modelState = iota
	stateExportPath
	stateMessage
)

func newBrowseModel(filename string, trim bool) *browseModel {
	return &browseModel{
		filename: filename,
		trim:     trim,
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err error
	doc *document.Document
}

type exportedMsg struct {
	err  error
	path string
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadDocument
}

func (m *browseModel) loadDocument() tea.Msg {
	doc, err := document.DecodeFile(m.filename, document.Options{TrimEdges: m.trim})
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{doc: doc}
}

func (m *browseModel) flatten() {
	m.rows = m.rows[:0]
	var walk func(n *document.Node, depth int)
	walk = func(n *document.Node, depth int) {
		for _, c := range n.Children {
			m.rows = append(m.rows, treeRow{node: c, depth: depth})
			if c.Kind == document.KindGroup && c.Expanded {
				walk(c, depth+1)
			}
		}
	}
	walk(m.doc.Root, 0)
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A path is being typed: keys go to the text input except the
		// control keys.
		if m.state == stateExportPath {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.state = stateBrowse
				return m, nil
			case "enter":
				return m, m.exportSelected
			}
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter", " ":
			switch m.state {
			case stateBrowse:
				if len(m.rows) == 0 {
					break
				}
				n := m.rows[m.selected].node
				if n.Kind == document.KindGroup {
					n.Expanded = !n.Expanded
					m.flatten()
				}
			case stateMessage:
				m.state = stateBrowse
				m.message = ""
				m.err = nil
			}

		case "e":
			if m.state == stateBrowse && len(m.rows) > 0 {
				n := m.rows[m.selected].node
				if n.Kind == document.KindRaster && n.Image != nil {
					m.prepareExportInput(n)
					m.state = stateExportPath
				}
			}

		case "esc":
			if m.state == stateMessage {
				m.state = stateBrowse
				m.message = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.doc = msg.doc
		m.flatten()

	case exportedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.message = "Exported " + msg.path
		}
		m.state = stateMessage
	}

	if m.state == stateExportPath {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *browseModel) prepareExportInput(n *document.Node) {
	ti := textinput.New()
	ti.Prompt = "path: "
	ti.Width = 40
	ti.SetValue(fileSafe(displayName(n)) + ".png")
	ti.Focus()
	m.input = ti
}

func (m *browseModel) exportSelected() tea.Msg {
	path := m.input.Value()
	if path == "" {
		return exportedMsg{err: fmt.Errorf("empty export path")}
	}

	n := m.rows[m.selected].node
	f, err := os.Create(path)
	if err != nil {
		return exportedMsg{err: err}
	}
	defer f.Close()

	if err := png.Encode(f, n.Image.ToRGBA()); err != nil {
		return exportedMsg{err: err}
	}
	return exportedMsg{path: path}
}

func (m *browseModel) View() string {
	if m.err != nil && m.state != stateMessage {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.doc == nil {
		return "Loading document..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Layer Browser"))
	b.WriteString(fmt.Sprintf(" %s (%dx%d)", m.filename, m.doc.Width, m.doc.Height))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateMessage:
		if len(m.rows) == 0 {
			b.WriteString(helpStyle.Render("(no layers)"))
			b.WriteString("\n")
		}
		for i, row := range m.rows {
			line := m.formatRow(row)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if m.state == stateMessage {
			if m.err != nil {
				b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			} else {
				b.WriteString(resultStyle.Render(m.message))
			}
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("enter continue • q quit"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter toggle group • e export layer • q quit"))
		}

	case stateExportPath:
		n := m.rows[m.selected].node
		b.WriteString(fmt.Sprintf("Export %s\n\n", layerStyle.Render(displayName(n))))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter export • esc back"))
	}

	return b.String()
}

func (m *browseModel) formatRow(row treeRow) string {
	indent := strings.Repeat("  ", row.depth)
	n := row.node

	style := layerStyle
	if !n.Visible {
		style = hiddenStyle
	}

	if n.Kind == document.KindGroup {
		marker := "v"
		if !n.Expanded {
			marker = ">"
		}
		if n.Visible {
			style = groupStyle
		}
		return indent + marker + " " + style.Render(displayName(n)+"/")
	}

	detail := fmt.Sprintf("  %s %d%%", n.Blend, int(n.Opacity)*100/255)
	if n.Image != nil {
		detail += fmt.Sprintf("  %dx%d", n.Image.Width, n.Image.Height)
	}
	return indent + "  " + style.Render(displayName(n)) + helpStyle.Render(detail)
}

func runInteractive(filename string, trim bool) error {
	p := tea.NewProgram(newBrowseModel(filename, trim), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
