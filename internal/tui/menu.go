package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/contactbook/internal/menu"
)

type item struct {
	key, title, desc string
}

func (i item) Title() string       { return i.key + ". " + i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

var descriptions = map[string]string{
	"1": "Create a new contact",
	"2": "Remove a contact by id",
	"3": "Find by name, phone or email",
	"4": "Show every contact",
	"5": "Change one field of a contact",
	"6": "Leave the program",
	"7": "Write the list to yaml, xlsx or markdown",
}

// MenuModel is the action picker shown between operations.
type MenuModel struct {
	list list.Model
}

func NewMenuModel() MenuModel {
	items := make([]list.Item, len(menu.Actions))
	for i, a := range menu.Actions {
		items[i] = item{key: a.Key, title: a.Title, desc: descriptions[a.Key]}
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DimAccent)

	l := list.New(items, d, 40, 26)
	l.Title = "Contacts"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Accent).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

// Selected returns the key of the highlighted action.
func (m MenuModel) Selected() string {
	if it, ok := m.list.SelectedItem().(item); ok {
		return it.key
	}
	return ""
}

func (m *MenuModel) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	return m.list.View()
}
