// Package ui implements the interactive terminal interface: pick a model,
// describe the scene, adjust options, and copy the compiled prompt.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/seoku/promptforge/internal/clipboard"
	"github.com/seoku/promptforge/internal/models"
	"github.com/seoku/promptforge/internal/service"
)

type viewState int

const (
	viewModels viewState = iota
	viewInput
	viewResult
	viewGuideline
)

// option field indices for the input view; the textarea sits before them in
// the focus cycle.
const (
	fieldEngine = iota
	fieldAspect
	fieldStylize
	fieldSeed
	fieldNegative
	fieldCount
)

type guidelineMsg struct {
	doc *models.GuidelineDocument
	err error
}

type copiedMsg struct{ err error }

// Model is the bubbletea model for the whole interface.
type Model struct {
	service *service.Service

	state    viewState
	doc      *models.GuidelineDocument
	cursor   int
	selected *models.ModelRecord

	input   textarea.Model
	fields  [fieldCount]textinput.Model
	focus   int // 0 = textarea, 1..fieldCount = fields
	result  models.BuildResult
	status  string
	err     error

	width  int
	height int
}

// NewModel creates the TUI model.
func NewModel(svc *service.Service) Model {
	input := textarea.New()
	input.Placeholder = "향수병, 대리석 위, 따뜻한 조명..."
	input.SetHeight(4)
	input.Focus()

	var fields [fieldCount]textinput.Model
	for i, placeholder := range [fieldCount]string{"engine", "16:9", "50", "seed", "exclude..."} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = 64
		fields[i] = ti
	}

	return Model{
		service: svc,
		input:   input,
		fields:  fields,
	}
}

// Init resolves the guideline document before anything is shown.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.service.Refresh(context.Background())
		return guidelineMsg{doc: doc, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(m.wrapWidth(80))
		return m, nil

	case guidelineMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.doc = msg.doc
		if m.cursor >= len(m.doc.Models) {
			m.cursor = 0
		}
		m.status = fmt.Sprintf("guideline %s (%s)", m.doc.Version, m.doc.Source)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case viewModels:
		return m.handleModelsKey(msg)
	case viewInput:
		return m.handleInputKey(msg)
	case viewResult:
		return m.handleResultKey(msg)
	case viewGuideline:
		if msg.String() == "esc" || msg.String() == "q" {
			m.state = viewResult
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleModelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.status = "refreshing..."
		return m, m.refreshCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.doc != nil && m.cursor < len(m.doc.Models)-1 {
			m.cursor++
		}
	case "enter":
		if m.doc == nil || len(m.doc.Models) == 0 {
			return m, nil
		}
		m.selected = &m.doc.Models[m.cursor]
		m.state = viewInput
		m.focus = 0
		m.input.Focus()
		if len(m.selected.Engines) > 0 {
			m.fields[fieldEngine].SetValue(m.selected.Engines[0])
		}
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = viewModels
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		if msg.Type == tea.KeyTab {
			m.focus = (m.focus + 1) % (fieldCount + 1)
		} else {
			m.focus = (m.focus + fieldCount) % (fieldCount + 1)
		}
		m.input.Blur()
		for i := range m.fields {
			m.fields[i].Blur()
		}
		if m.focus == 0 {
			m.input.Focus()
		} else {
			m.fields[m.focus-1].Focus()
		}
		return m, nil
	case tea.KeyCtrlB:
		return m.build()
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.fields[m.focus-1], cmd = m.fields[m.focus-1].Update(msg)
	}
	return m, cmd
}

func (m Model) build() (tea.Model, tea.Cmd) {
	stylize := 0
	if v := strings.TrimSpace(m.fields[fieldStylize].Value()); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			stylize = n
		}
	}

	res, err := m.service.Build(
		m.selected.ID,
		strings.TrimSpace(m.fields[fieldEngine].Value()),
		m.input.Value(),
		models.BuildOptions{
			Aspect:   strings.TrimSpace(m.fields[fieldAspect].Value()),
			Stylize:  stylize,
			Seed:     strings.TrimSpace(m.fields[fieldSeed].Value()),
			Negative: strings.TrimSpace(m.fields[fieldNegative].Value()),
		},
	)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.result = res
	m.state = viewResult
	m.status = ""
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = viewInput
	case "q":
		return m, tea.Quit
	case "c":
		text := m.result.Full
		return m, func() tea.Msg { return copiedMsg{err: clipboard.Copy(text)} }
	case "g":
		m.state = viewGuideline
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	switch m.state {
	case viewModels:
		b.WriteString(titleStyle.Render("promptforge"))
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
			b.WriteString("\n\n")
		}
		if m.doc == nil {
			b.WriteString(statusStyle.Render("resolving guideline..."))
		} else {
			b.WriteString(statusStyle.Render(m.status))
			b.WriteString("\n\n")
			for i, rec := range m.doc.Models {
				line := fmt.Sprintf("%s (%s)", rec.Name, rec.Latest)
				if i == m.cursor {
					b.WriteString(selectedStyle.Render("> " + line))
				} else {
					b.WriteString(itemStyle.Render("  " + line))
				}
				b.WriteString("\n")
			}
		}
		b.WriteString(helpStyle.Render("enter select · r refresh · q quit"))

	case viewInput:
		b.WriteString(titleStyle.Render(m.selected.Name))
		b.WriteString("\n")
		b.WriteString(m.labelFor(0, "Description"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		names := [fieldCount]string{"Engine", "Aspect", "Stylize", "Seed", "Negative"}
		for i := 0; i < fieldCount; i++ {
			b.WriteString(m.labelFor(i+1, names[i]))
			b.WriteString(" ")
			b.WriteString(m.fields[i].View())
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		}
		b.WriteString(helpStyle.Render("tab next field · ctrl+b build · esc back"))

	case viewResult:
		b.WriteString(titleStyle.Render("Prompt"))
		b.WriteString("\n")
		b.WriteString(resultBoxStyle.Width(m.wrapWidth(82)).Render(m.result.Full))
		b.WriteString("\n")
		if m.result.Params != "" {
			b.WriteString(paramsStyle.Render("Parameters: " + m.result.Params))
			b.WriteString("\n")
		}
		if m.status != "" {
			b.WriteString(statusStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("c copy · g guideline rules · esc edit · q quit"))

	case viewGuideline:
		b.WriteString(m.guidelineView())
		b.WriteString(helpStyle.Render("esc back"))
	}

	return b.String()
}

func (m Model) labelFor(focusIdx int, name string) string {
	if m.focus == focusIdx && m.state == viewInput {
		return focusedLabelStyle.Render(name + ":")
	}
	return labelStyle.Render(name + ":")
}

// guidelineView renders the selected model's rules as markdown.
func (m Model) guidelineView() string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s guidelines\n\n", m.selected.Name)
	if len(m.selected.Guideline) == 0 {
		md.WriteString("_No rules published for this model._\n")
	}
	for _, rule := range m.selected.Guideline {
		fmt.Fprintf(&md, "- %s\n", rule)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.wrapWidth(80)),
	)
	if err != nil {
		return md.String()
	}
	out, err := r.Render(md.String())
	if err != nil {
		return md.String()
	}
	return out
}

// wrapWidth bounds render width by the terminal, falling back to max before
// the first WindowSizeMsg arrives.
func (m Model) wrapWidth(max int) int {
	if m.width <= 2 || m.width-2 > max {
		return max
	}
	return m.width - 2
}
