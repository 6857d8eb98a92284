package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type step struct {
	label       string
	placeholder string
}

// formModel collects one answer per step for the chosen action.
type formModel struct {
	action string
	steps  []step
	values []string
	input  textinput.Model
}

var forms = map[string][]step{
	"1": {
		{"Name", "required"},
		{"Phone", "required"},
		{"Email", "optional"},
		{"Address", "optional"},
	},
	"2": {{"ID of the contact to delete", "number"}},
	"3": {{"Search", "part of a name, phone or email"}},
	"5": {
		{"Contact ID", "number"},
		{"Field", "name, phone, email or address"},
		{"New value", ""},
	},
	"7": {{"Format", "yaml, xlsx or markdown"}},
}

func newForm(action string, width int) (formModel, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 256
	if width > 10 {
		ti.Width = width - 10
	}

	f := formModel{
		action: action,
		steps:  forms[action],
		input:  ti,
	}
	f.prepare()
	cmd := f.input.Focus()
	return f, cmd
}

func (f *formModel) prepare() {
	s := f.current()
	f.input.Reset()
	f.input.Placeholder = s.placeholder
}

func (f formModel) current() step {
	return f.steps[len(f.values)]
}

// submit records the current answer and reports whether every step is done.
func (f *formModel) submit() bool {
	f.values = append(f.values, strings.TrimRight(f.input.Value(), "\r\n"))
	if len(f.values) == len(f.steps) {
		return true
	}
	f.prepare()
	return false
}

func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f formModel) View() string {
	var b strings.Builder
	for i, v := range f.values {
		b.WriteString(HelpStyle.Render(f.steps[i].label+": ") + v + "\n")
	}
	b.WriteString(LabelStyle.Render(f.current().label) + "\n")
	b.WriteString(f.input.View())
	return PromptStyle.Render(b.String())
}
