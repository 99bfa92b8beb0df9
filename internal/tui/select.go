package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Option is one entry of a Select.
type Option struct {
	Value string
	Label string
}

func (o Option) Title() string       { return o.Label }
func (o Option) Description() string { return o.Value }
func (o Option) FilterValue() string { return o.Label + " " + o.Value }

// Select is a searchable dropdown over a static option list. Closed, it
// shows the chosen label. Open, it is a filterable list: "/" starts a
// search, enter picks, esc closes.
type Select struct {
	placeholder string
	options     []Option
	list        list.Model
	open        bool
	value       string
}

// NewSelect builds a closed Select with nothing chosen.
func NewSelect(title, placeholder string, options []Option) Select {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = o
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New(items, d, 48, 12)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return Select{placeholder: placeholder, options: options, list: l}
}

// Value is the chosen option's value, or "".
func (s Select) Value() string { return s.value }

// Open reports whether the option list is showing.
func (s Select) Open() bool { return s.open }

// Label is the chosen option's label, or "".
func (s Select) Label() string {
	for _, o := range s.options {
		if o.Value == s.value {
			return o.Label
		}
	}
	return ""
}

// SetValue chooses v without opening the list. Unknown values clear it.
func (s *Select) SetValue(v string) {
	s.value = ""
	for i, o := range s.options {
		if o.Value == v {
			s.value = v
			s.list.Select(i)
			return
		}
	}
}

// Update handles a key while the Select is focused. picked is true when
// the user chose an option in this call.
func (s Select) Update(msg tea.Msg) (_ Select, cmd tea.Cmd, picked bool) {
	km, isKey := msg.(tea.KeyMsg)
	if !s.open {
		if isKey && (km.String() == "enter" || km.String() == " ") {
			s.open = true
		}
		return s, nil, false
	}

	if isKey && s.list.FilterState() != list.Filtering {
		switch km.String() {
		case "enter":
			if o, ok := s.list.SelectedItem().(Option); ok {
				s.value = o.Value
				picked = true
			}
			s.close()
			return s, nil, picked
		case "esc":
			if s.list.FilterState() == list.Unfiltered {
				s.close()
				return s, nil, false
			}
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd, false
}

func (s *Select) close() {
	s.open = false
	s.list.ResetFilter()
}

// View renders the closed field or the open list.
func (s Select) View(st Styles, focused bool) string {
	if s.open {
		return s.list.View()
	}
	text := s.Label()
	if text == "" {
		text = st.Muted.Render(s.placeholder)
	}
	if focused {
		return st.Focused.Render("▸ ") + text
	}
	return "  " + text
}
