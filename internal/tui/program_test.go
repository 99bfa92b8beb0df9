package tui

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantdocs/internal/catalog"
	"grantdocs/internal/wizard"
)

// seen records what the running Model looked like when each message arrived.
type seen struct {
	mu         sync.Mutex
	last       wizard.State
	sawSuccess bool
	changed    int
}

func (s *seen) filter(m tea.Model, msg tea.Msg) tea.Msg {
	st := m.(Model).State()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = st
	if st.Success {
		s.sawSuccess = true
	}
	if _, ok := msg.(ChangedMsg); ok {
		s.changed++
	}
	return msg
}

func (s *seen) snapshot() (wizard.State, bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.sawSuccess, s.changed
}

// sendWithin fails the test when the event loop stops accepting messages.
func sendWithin(t *testing.T, p *tea.Program, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		done := make(chan struct{})
		go func() {
			p.Send(msg)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("event loop stopped reading messages at %T", msg)
		}
	}
}

func TestProgram_RunsWizardEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		sent []wizard.Draft
	)
	sub := wizard.SubmitterFunc(func(_ context.Context, d wizard.Draft) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, d)
		return nil
	})

	rec := &seen{}
	p, machine := NewProgram(ctx, sub,
		[]wizard.Option{wizard.WithResetDelay(50 * time.Millisecond)},
		tea.WithContext(ctx),
		tea.WithInput(bytes.NewReader(nil)),
		tea.WithOutput(io.Discard),
		tea.WithoutSignals(),
		tea.WithoutRenderer(),
		tea.WithFilter(rec.filter),
	)
	defer machine.Close()

	type result struct {
		model tea.Model
		err   error
	}
	finished := make(chan result, 1)
	go func() {
		m, err := p.Run()
		finished <- result{m, err}
	}()

	// Metadata step, one keystroke at a time.
	for _, r := range "Q1 Report" {
		sendWithin(t, p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	sendWithin(t, p,
		keyTab, keyEnter, keyDown, keyEnter, // fiscal year
		keyEnter, keyEnter, // source
		keyEnter, keyEnter, // grant type
		keyTab, keyEnter, // Next
	)
	require.Eventually(t, func() bool {
		return machine.State().Step == wizard.StepDocuments
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Q1 Report", machine.State().Draft.Title)

	for _, r := range writeFile(t, "q1.pdf") {
		sendWithin(t, p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	sendWithin(t, p, keyEnter, keyCtrlS)

	// The delayed reset reaches the Model only through ChangedMsg.
	require.Eventually(t, func() bool {
		p.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
		st, sawSuccess, _ := rec.snapshot()
		return sawSuccess && !st.Success && st.Step == wizard.StepMetadata && st.Draft.Title == ""
	}, 2*time.Second, 20*time.Millisecond)

	_, _, changed := rec.snapshot()
	assert.Positive(t, changed)

	mu.Lock()
	require.Len(t, sent, 1)
	assert.Equal(t, "Q1 Report", sent[0].Title)
	assert.Equal(t, "q1.pdf", sent[0].Files[catalog.CategoryA4][0].Name)
	mu.Unlock()

	p.Quit()
	select {
	case res := <-finished:
		require.NoError(t, res.err)
		final := res.model.(Model).State()
		assert.Equal(t, wizard.StepMetadata, final.Step)
		assert.Empty(t, final.Draft.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("program did not exit on Quit")
	}
}
