package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantdocs/internal/catalog"
	"grantdocs/internal/client"
	"grantdocs/internal/wizard"
)

type stopTimer struct{}

func (stopTimer) Stop() bool { return true }

// harness runs a Model against a Machine whose reset timer is fired by hand.
type harness struct {
	t       *testing.T
	model   Model
	machine *wizard.Machine

	mu    sync.Mutex
	reset func()
	sent  []wizard.Draft
	fail  error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t}
	h.machine = wizard.New(
		wizard.SubmitterFunc(func(_ context.Context, d wizard.Draft) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.sent = append(h.sent, d)
			return h.fail
		}),
		wizard.WithAfterFunc(func(_ time.Duration, f func()) wizard.Timer {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.reset = f
			return stopTimer{}
		}),
	)
	t.Cleanup(h.machine.Close)
	h.model = New(context.Background(), h.machine)
	return h
}

func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = h.model.Update(msg)
		h.model = next.(Model)
	}
	return cmd
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlD    = tea.KeyMsg{Type: tea.KeyCtrlD}
	keyCtrlB    = tea.KeyMsg{Type: tea.KeyCtrlB}
)

// fillMetadata completes step 0 through the keyboard and leaves focus on Next.
func (h *harness) fillMetadata() {
	h.typeText("Q1 Report")
	h.send(keyTab)             // fiscal year
	h.send(keyEnter, keyDown)  // open, move to the second year
	h.send(keyEnter)           // pick, focus moves to source
	h.send(keyEnter, keyEnter) // first source
	h.send(keyEnter, keyEnter) // first grant type
	h.send(keyTab)             // remarks -> Next
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("content"), 0o600))
	return p
}

func TestMetadataStep(t *testing.T) {
	h := newHarness(t)

	h.fillMetadata()

	d := h.machine.State().Draft
	assert.Equal(t, "Q1 Report", d.Title)
	assert.Equal(t, catalog.FiscalYears()[1].ID, d.FiscalYear)
	assert.Equal(t, catalog.Sources[0], d.Source)
	assert.Equal(t, catalog.GrantTypes[0], d.GrantType)
	assert.Equal(t, focusNext, h.model.focus)
	assert.True(t, h.model.State().CanNext())

	h.send(keyEnter)

	assert.Equal(t, wizard.StepDocuments, h.model.State().Step)
	assert.Equal(t, focusPath, h.model.focus)
}

func TestMetadataStep_NextBlockedUntilComplete(t *testing.T) {
	h := newHarness(t)
	h.typeText("Only a title")
	h.send(keyShiftTab) // wraps to Next

	h.send(keyEnter)

	assert.Equal(t, wizard.StepMetadata, h.machine.State().Step)
	assert.Contains(t, h.model.View(), "Next")
}

func TestSelect_EscClosesWithoutPicking(t *testing.T) {
	h := newHarness(t)
	h.send(keyTab, keyEnter)
	require.True(t, h.model.fiscal.Open())

	h.send(keyDown, keyEsc)

	assert.False(t, h.model.fiscal.Open())
	assert.Empty(t, h.machine.State().Draft.FiscalYear)
	assert.Equal(t, focusFiscalYear, h.model.focus)
}

func TestSelect_SetValue(t *testing.T) {
	s := NewSelect("Source", "Select source", plainOptions(catalog.Sources))
	assert.Empty(t, s.Label())

	s.SetValue(catalog.SourceLocal)
	assert.Equal(t, catalog.SourceLocal, s.Value())
	assert.Equal(t, catalog.SourceLocal, s.Label())

	s.SetValue("Moon Government")
	assert.Empty(t, s.Value())
}

func TestDocumentsStep_AddAndRemoveFiles(t *testing.T) {
	h := newHarness(t)
	h.fillMetadata()
	h.send(keyEnter)

	pdf := writeFile(t, "q1.pdf")
	exe := writeFile(t, "setup.exe")
	h.typeText(pdf + ", " + exe)
	h.send(keyEnter)

	d := h.machine.State().Draft
	require.Equal(t, 1, d.FileCount(catalog.CategoryA4))
	assert.Equal(t, "q1.pdf", d.Files[catalog.CategoryA4][0].Name)
	assert.Contains(t, h.model.pathErr, "setup.exe")
	assert.Empty(t, h.model.path.Value())

	// Other Documents accepts anything.
	h.send(keyUp)
	assert.Equal(t, catalog.CategoryOther, h.model.category)
	h.typeText(exe)
	h.send(keyEnter)
	assert.Equal(t, 1, h.machine.State().Draft.FileCount(catalog.CategoryOther))
	assert.Empty(t, h.model.pathErr)

	h.send(keyCtrlD)
	assert.Zero(t, h.machine.State().Draft.FileCount(catalog.CategoryOther))
	assert.Equal(t, 1, h.model.State().Draft.TotalFiles())
}

func TestDocumentsStep_PreviousKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.fillMetadata()
	h.send(keyEnter)

	h.send(keyCtrlB)

	s := h.model.State()
	assert.Equal(t, wizard.StepMetadata, s.Step)
	assert.Equal(t, "Q1 Report", s.Draft.Title)
	assert.Equal(t, "Q1 Report", h.model.title.Value())
}

func TestSubmit_SuccessThenReset(t *testing.T) {
	h := newHarness(t)
	h.fillMetadata()
	h.send(keyEnter)
	h.typeText(writeFile(t, "q1.pdf"))
	h.send(keyEnter)

	cmd := h.send(keyCtrlS)
	require.NotNil(t, cmd)
	assert.True(t, h.model.State().Submitting)
	assert.Nil(t, h.send(keyCtrlS), "a second submit must not start")

	h.send(cmd())

	assert.True(t, h.model.State().Success)
	assert.Contains(t, h.model.View(), "Files uploaded successfully!")
	require.Len(t, h.sent, 1)
	assert.Equal(t, "q1.pdf", h.sent[0].Files[catalog.CategoryA4][0].Name)

	// Keys are ignored on the success panel.
	h.typeText("x")
	assert.True(t, h.model.State().Success)

	h.mu.Lock()
	reset := h.reset
	h.mu.Unlock()
	require.NotNil(t, reset)
	reset()
	h.send(ChangedMsg{})

	s := h.model.State()
	assert.Equal(t, wizard.StepMetadata, s.Step)
	assert.False(t, s.Success)
	assert.Empty(t, h.model.title.Value())
	assert.Empty(t, h.model.fiscal.Value())
	assert.Equal(t, focusTitle, h.model.focus)
}

func TestSubmit_FailureShowsNotice(t *testing.T) {
	h := newHarness(t)
	h.fail = &client.SubmissionError{Status: 400, Message: "Invalid fiscal year"}
	h.fillMetadata()
	h.send(keyEnter)

	h.send(h.send(keyCtrlS)())

	s := h.model.State()
	assert.Equal(t, "Invalid fiscal year", s.Notice)
	assert.Equal(t, wizard.StepDocuments, s.Step)
	assert.Equal(t, "Q1 Report", s.Draft.Title)
	assert.Contains(t, h.model.View(), "Invalid fiscal year")

	h.send(keyEsc)
	assert.Empty(t, h.model.State().Notice)
}

func TestSubmit_NetworkFailureUsesFallback(t *testing.T) {
	h := newHarness(t)
	h.fail = errors.New("dial tcp: connection refused")
	h.fillMetadata()
	h.send(keyEnter)

	h.send(h.send(keyCtrlS)())

	assert.Equal(t, wizard.GenericFailureMessage, h.model.State().Notice)
}

func TestCtrlCQuits(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
