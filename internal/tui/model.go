// Package tui renders the upload wizard as a bubbletea program. The Model
// holds only view state (focus, inputs, open dropdowns); the draft and the
// submission flags live in the wizard.Machine it drives.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"grantdocs/internal/catalog"
	"grantdocs/internal/client"
	"grantdocs/internal/wizard"
)

// ChangedMsg tells the Model the machine's state moved on outside Update,
// e.g. when the delayed reset fires. NewProgram sends it from wizard.WithOnChange.
type ChangedMsg struct{}

type submitDoneMsg struct{ err error }

// Focus targets on the metadata step.
const (
	focusTitle = iota
	focusFiscalYear
	focusSource
	focusGrantType
	focusRemarks
	focusNext
	numMetadataFocus
)

// Focus targets on the documents step.
const (
	focusPath = iota
	focusPrevious
	focusSubmit
	numDocumentFocus
)

// Model is the wizard screen.
type Model struct {
	machine *wizard.Machine
	ctx     context.Context
	state   wizard.State
	styles  Styles

	focus   int
	title   textinput.Model
	remarks textinput.Model
	fiscal  Select
	source  Select
	grant   Select

	category   catalog.Category
	fileCursor int
	path       textinput.Model
	pathErr    string

	width int
}

// New builds the Model around m. ctx bounds submissions.
func New(ctx context.Context, m *wizard.Machine) Model {
	title := textinput.New()
	title.Placeholder = "Document title"
	title.CharLimit = 255
	title.Width = 48

	remarks := textinput.New()
	remarks.Placeholder = "Optional remarks"
	remarks.CharLimit = 1000
	remarks.Width = 48

	path := textinput.New()
	path.Placeholder = "path/to/file.pdf (comma separated, globs allowed)"
	path.Width = 56

	fys := catalog.FiscalYears()
	fyOpts := make([]Option, len(fys))
	for i, fy := range fys {
		fyOpts[i] = Option{Value: fy.ID, Label: fy.Name}
	}

	model := Model{
		machine: m,
		ctx:     ctx,
		state:   m.State(),
		styles:  DefaultStyles(),
		title:   title,
		remarks: remarks,
		path:    path,
		fiscal:  NewSelect("Fiscal Year", "Select fiscal year", fyOpts),
		source:  NewSelect("Source", "Select source", plainOptions(catalog.Sources)),
		grant:   NewSelect("Grant Type", "Select grant type", plainOptions(catalog.GrantTypes)),
	}
	model.syncInputs()
	model.applyFocus()
	return model
}

func plainOptions(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

// State is the machine state as last seen by the view.
func (m Model) State() wizard.State { return m.state }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ChangedMsg:
		m.refresh()
		return m, nil

	case submitDoneMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state.Success {
			return m, nil
		}
		if sel := m.openSelect(); sel != nil {
			return m.updateSelect(msg)
		}
		if msg.String() == "esc" && m.state.Notice != "" {
			m.state = m.machine.Dispatch(wizard.DismissNotice{})
			return m, nil
		}
		if m.state.Step == wizard.StepMetadata {
			return m.updateMetadata(msg)
		}
		return m.updateDocuments(msg)
	}

	return m.updateInputs(msg)
}

// refresh reloads the machine state. Leaving the success panel means the
// draft was reset, so the inputs are cleared to match.
func (m *Model) refresh() {
	prev := m.state
	m.state = m.machine.State()
	if prev.Success && !m.state.Success {
		m.syncInputs()
	}
	if prev.Step != m.state.Step {
		m.focus = 0
		m.applyFocus()
	}
}

func (m *Model) syncInputs() {
	d := m.state.Draft
	m.title.SetValue(d.Title)
	m.remarks.SetValue(d.Remarks)
	m.fiscal.SetValue(d.FiscalYear)
	m.source.SetValue(d.Source)
	m.grant.SetValue(d.GrantType)
	m.path.SetValue("")
	m.pathErr = ""
	m.category = catalog.CategoryA4
	m.fileCursor = 0
}

func (m *Model) applyFocus() {
	m.title.Blur()
	m.remarks.Blur()
	m.path.Blur()
	if m.state.Step == wizard.StepMetadata {
		switch m.focus {
		case focusTitle:
			m.title.Focus()
		case focusRemarks:
			m.remarks.Focus()
		}
		return
	}
	if m.focus == focusPath {
		m.path.Focus()
	}
}

func (m *Model) moveFocus(delta int) {
	n := numMetadataFocus
	if m.state.Step == wizard.StepDocuments {
		n = numDocumentFocus
	}
	m.focus = (m.focus + delta + n) % n
	m.applyFocus()
}

func (m *Model) openSelect() *Select {
	for _, s := range []*Select{&m.fiscal, &m.source, &m.grant} {
		if s.Open() {
			return s
		}
	}
	return nil
}

func (m Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		cmd    tea.Cmd
		picked bool
		field  wizard.Field
		value  string
	)
	switch {
	case m.fiscal.Open():
		m.fiscal, cmd, picked = m.fiscal.Update(msg)
		field, value = wizard.FieldFiscalYear, m.fiscal.Value()
	case m.source.Open():
		m.source, cmd, picked = m.source.Update(msg)
		field, value = wizard.FieldSource, m.source.Value()
	default:
		m.grant, cmd, picked = m.grant.Update(msg)
		field, value = wizard.FieldGrantType, m.grant.Value()
	}
	if picked {
		m.state = m.machine.Dispatch(wizard.SetField{Field: field, Value: value})
		m.moveFocus(1)
	}
	return m, cmd
}

func (m Model) updateMetadata(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	}

	switch m.focus {
	case focusTitle, focusRemarks:
		if msg.String() == "enter" {
			m.moveFocus(1)
			return m, nil
		}
		return m.updateInputs(msg)

	case focusFiscalYear:
		m.fiscal, _, _ = m.fiscal.Update(msg)
	case focusSource:
		m.source, _, _ = m.source.Update(msg)
	case focusGrantType:
		m.grant, _, _ = m.grant.Update(msg)

	case focusNext:
		if msg.String() == "enter" {
			if err := m.machine.Next(); err == nil {
				m.refresh()
			}
		}
	}
	return m, nil
}

func (m Model) updateDocuments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.moveFocus(1)
		return m, nil
	case "shift+tab":
		m.moveFocus(-1)
		return m, nil
	case "up":
		m.selectCategory(-1)
		return m, nil
	case "down":
		m.selectCategory(1)
		return m, nil
	case "shift+up":
		m.moveFileCursor(-1)
		return m, nil
	case "shift+down":
		m.moveFileCursor(1)
		return m, nil
	case "ctrl+d":
		m.removeSelectedFile()
		return m, nil
	case "ctrl+b":
		m.previous()
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	switch m.focus {
	case focusPath:
		if msg.String() == "enter" {
			m.addPaths(m.path.Value())
			return m, nil
		}
		return m.updateInputs(msg)
	case focusPrevious:
		if msg.String() == "enter" {
			m.previous()
		}
	case focusSubmit:
		if msg.String() == "enter" {
			return m.submit()
		}
	}
	return m, nil
}

// updateInputs feeds msg to the focused text input and mirrors its value
// into the draft.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.state.Step == wizard.StepMetadata && m.focus == focusTitle:
		m.title, cmd = m.title.Update(msg)
		m.setField(wizard.FieldTitle, m.title.Value())
	case m.state.Step == wizard.StepMetadata && m.focus == focusRemarks:
		m.remarks, cmd = m.remarks.Update(msg)
		m.setField(wizard.FieldRemarks, m.remarks.Value())
	case m.state.Step == wizard.StepDocuments && m.focus == focusPath:
		m.path, cmd = m.path.Update(msg)
	}
	return m, cmd
}

func (m *Model) setField(f wizard.Field, v string) {
	if m.state.Draft.Get(f) == v {
		return
	}
	m.state = m.machine.Dispatch(wizard.SetField{Field: f, Value: v})
}

func (m *Model) previous() {
	if !m.state.CanPrevious() {
		return
	}
	m.machine.Previous()
	m.refresh()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.CanSubmit() {
		return m, nil
	}
	// Mark the submission locally so a repeated key does not start another.
	m.state.Submitting = true
	machine, ctx := m.machine, m.ctx
	return m, func() tea.Msg {
		return submitDoneMsg{err: machine.Submit(ctx)}
	}
}

func (m *Model) selectCategory(delta int) {
	n := catalog.Category(catalog.NumCategories)
	m.category = (m.category + catalog.Category(delta) + n) % n
	m.fileCursor = 0
	m.pathErr = ""
}

func (m *Model) moveFileCursor(delta int) {
	n := m.state.Draft.FileCount(m.category)
	if n == 0 {
		m.fileCursor = 0
		return
	}
	m.fileCursor = min(max(m.fileCursor+delta, 0), n-1)
}

func (m *Model) removeSelectedFile() {
	if m.state.Draft.FileCount(m.category) == 0 {
		return
	}
	m.state = m.machine.Dispatch(wizard.RemoveFile{Category: m.category, Index: m.fileCursor})
	m.moveFileCursor(0)
}

// addPaths resolves the comma separated paths or globs in raw and attaches
// the files the category's picker filter accepts. Rejected entries are
// reported in pathErr; accepted ones are added either way.
func (m *Model) addPaths(raw string) {
	files, rejected := resolvePaths(m.category, raw)
	if len(files) > 0 {
		m.state = m.machine.Dispatch(wizard.AddFiles{Category: m.category, Files: files})
		m.path.SetValue("")
	}
	m.pathErr = ""
	if len(rejected) > 0 {
		m.pathErr = strings.Join(rejected, "; ")
	}
}

var errNotAccepted = errors.New("file type not accepted here")

func resolvePaths(c catalog.Category, raw string) ([]wizard.LocalFile, []string) {
	var (
		files    []wizard.LocalFile
		rejected []string
	)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		matches, err := filepath.Glob(entry)
		if err != nil || len(matches) == 0 {
			matches = []string{entry}
		}
		for _, p := range matches {
			lf, err := client.LocalFile(p)
			if err == nil && !c.Accepts(lf.Name) {
				err = errNotAccepted
			}
			if err != nil {
				rejected = append(rejected, fmt.Sprintf("%s: %v", p, err))
				continue
			}
			files = append(files, lf)
		}
	}
	return files, rejected
}

func (m Model) View() string {
	st := m.styles
	var body []string

	body = append(body, m.stepIndicator())
	if m.state.Success {
		body = append(body,
			st.Success.Render("Files uploaded successfully!\nThe form will reset shortly."))
		return st.card("Upload Grant Documents", body...) + "\n"
	}
	if n := st.alert(m.state.Notice); n != "" {
		body = append(body, n+st.Muted.Render("  (esc to dismiss)"))
	}

	if m.state.Step == wizard.StepMetadata {
		body = append(body, m.metadataView()...)
	} else {
		body = append(body, m.documentsView()...)
	}
	return st.card("Upload Grant Documents", body...) + "\n" +
		st.Muted.Render("tab: next field · enter: select · ctrl+c: quit") + "\n"
}

func (m Model) stepIndicator() string {
	st := m.styles
	steps := []string{"1. Document Details", "2. Upload Files"}
	out := make([]string, len(steps))
	for i, s := range steps {
		if wizard.Step(i) == m.state.Step {
			out[i] = st.StepActive.Render(s)
		} else {
			out[i] = st.StepInactive.Render(s)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out[0], st.Muted.Render("  →  "), out[1]) + "\n"
}

func (m Model) label(f wizard.Field, required bool) string {
	l := f.Label()
	if required {
		l += " *"
	}
	return m.styles.Label.Render(l)
}

func (m Model) metadataView() []string {
	st := m.styles
	return []string{
		m.label(wizard.FieldTitle, true),
		m.title.View(),
		m.label(wizard.FieldFiscalYear, true),
		m.fiscal.View(st, m.focus == focusFiscalYear),
		m.label(wizard.FieldSource, true),
		m.source.View(st, m.focus == focusSource),
		m.label(wizard.FieldGrantType, true),
		m.grant.View(st, m.focus == focusGrantType),
		m.label(wizard.FieldRemarks, false),
		m.remarks.View(),
		"",
		st.button("Next", m.focus == focusNext, !m.state.CanNext()),
	}
}

func (m Model) documentsView() []string {
	st := m.styles
	var out []string
	for _, c := range catalog.Categories() {
		head := fmt.Sprintf("%s (%d)", c.Label(), m.state.Draft.FileCount(c))
		if accept := c.Accept(); accept != "" {
			head += st.Muted.Render("  " + accept)
		}
		if c == m.category {
			out = append(out, st.Focused.Render("▸ ")+st.Label.Render(head))
		} else {
			out = append(out, "  "+head)
		}
		for i, f := range m.state.Draft.Files[c] {
			marker := "    "
			if c == m.category && i == m.fileCursor {
				marker = "  • "
			}
			out = append(out, marker+f.Name+st.Muted.Render(fmt.Sprintf("  %s", humanize.Bytes(uint64(f.Size)))))
		}
	}
	out = append(out, "", m.path.View())
	if m.pathErr != "" {
		out = append(out, st.alert(m.pathErr))
	}
	out = append(out,
		st.Muted.Render("up/down: category · enter: add · shift+up/down, ctrl+d: remove"),
		"",
		st.button("Previous", m.focus == focusPrevious, !m.state.CanPrevious())+
			st.button(m.submitLabel(), m.focus == focusSubmit, !m.state.CanSubmit()),
	)
	return out
}

func (m Model) submitLabel() string {
	if m.state.Submitting {
		return "Uploading..."
	}
	return "Submit"
}
