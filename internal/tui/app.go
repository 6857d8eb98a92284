package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/contactbook/internal/contact"
	"github.com/jeanpaul/contactbook/internal/export"
	"github.com/jeanpaul/contactbook/internal/menu"
)

// Options configures the TUI.
type Options struct {
	ExportDir string
	Theme     string
	// GlamourStyle is a glamour standard style name. Empty means "dark";
	// tests use "notty" to get plain output.
	GlamourStyle string
}

type mode int

const (
	modeMenu mode = iota
	modeForm
)

// resultMsg carries the outcome of a store operation back to Update.
type resultMsg struct {
	title    string
	body     string
	markdown bool
	failed   bool
	// fatal is set for store failures the program cannot continue past.
	fatal error
}

type Model struct {
	width, height int

	store     *contact.Store
	exportDir string

	mode     mode
	menu     MenuModel
	form     formModel
	viewport viewport.Model
	renderer *glamour.TermRenderer

	status string
	err    error
}

func NewModel(store *contact.Store, opts Options) Model {
	ApplyTheme(opts.Theme)

	style := opts.GlamourStyle
	if style == "" {
		style = "dark"
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	m := Model{
		store:     store,
		exportDir: exportDir,
		menu:      NewMenuModel(),
		viewport:  viewport.New(80, 12),
		renderer:  r,
		status:    fmt.Sprintf("%d contacts", store.Len()),
	}
	m.viewport.SetContent(HelpStyle.Render("Pick an action with ↑/↓ and enter, or press its number."))
	return m
}

// Err returns the store failure that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH := 6
		menuH := 26
		m.menu.SetSize(msg.Width/2, menuH)
		m.viewport.Width = msg.Width - 4 // border (2) and padding (2)
		m.viewport.Height = max(msg.Height-headerH-menuH-4, 3)
		m.form.input.Width = max(msg.Width-10, 10)
		return m, nil

	case resultMsg:
		return m.applyResult(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateMenu(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		return m.start(m.menu.Selected())
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}
	for _, a := range menu.Actions {
		if msg.String() == a.Key {
			return m.start(a.Key)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
		m.status = "cancelled"
		return m, nil
	case tea.KeyEnter:
		if !m.form.submit() {
			return m, nil
		}
		m.mode = modeMenu
		return m, m.run(m.form.action, m.form.values)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// start begins the action with the given menu key.
func (m Model) start(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "6":
		return m, tea.Quit
	case "4":
		return m, m.run(key, nil)
	case "":
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = newForm(key, m.width)
	m.mode = modeForm
	return m, cmd
}

func (m Model) applyResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if msg.fatal != nil {
		m.err = msg.fatal
		return m, tea.Quit
	}

	body := msg.body
	if msg.markdown && m.renderer != nil {
		if out, err := m.renderer.Render(body); err == nil {
			body = out
		}
	}

	title := SuccessStyle.Render(msg.title)
	if msg.failed {
		title = ErrorStyle.Render(msg.title)
	}
	content := title
	if strings.TrimSpace(body) != "" {
		content += "\n" + body
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
	m.status = fmt.Sprintf("%d contacts", m.store.Len())
	return m, nil
}

// run returns the command performing action with the collected answers.
func (m Model) run(action string, v []string) tea.Cmd {
	s := m.store
	exportDir := m.exportDir

	return func() tea.Msg {
		switch action {
		case "1":
			c, err := s.Add(v[0], v[1], v[2], v[3])
			if errors.Is(err, contact.ErrMissingField) {
				return resultMsg{title: menu.MsgMissingField, failed: true}
			}
			if err != nil {
				return resultMsg{fatal: err}
			}
			return resultMsg{title: fmt.Sprintf("Contact added with ID: %d", c.ID), body: contactCard(c), markdown: true}

		case "2":
			id, err := strconv.Atoi(strings.TrimSpace(v[0]))
			if err != nil {
				return resultMsg{title: menu.MsgBadID, failed: true}
			}
			if err := s.Delete(id); err != nil {
				return resultMsg{fatal: err}
			}
			return resultMsg{title: menu.MsgDeleted}

		case "3":
			results := s.Search(v[0])
			if len(results) == 0 {
				return resultMsg{title: menu.MsgNotFound}
			}
			return resultMsg{title: fmt.Sprintf("%d found", len(results)), body: export.MarkdownTable(results), markdown: true}

		case "4":
			all := s.List()
			if len(all) == 0 {
				return resultMsg{title: menu.MsgEmpty}
			}
			return resultMsg{title: fmt.Sprintf("%d contacts", len(all)), body: export.MarkdownTable(all), markdown: true}

		case "5":
			id, err := strconv.Atoi(strings.TrimSpace(v[0]))
			if err != nil {
				return resultMsg{title: menu.MsgBadID, failed: true}
			}
			f, err := contact.ParseField(v[1])
			if err != nil {
				return resultMsg{title: err.Error(), failed: true}
			}
			c, err := s.Update(id, map[contact.Field]string{f: v[2]})
			if errors.Is(err, contact.ErrNotFound) {
				return resultMsg{title: menu.MsgNoSuchID, failed: true}
			}
			if err != nil {
				return resultMsg{fatal: err}
			}
			return resultMsg{title: menu.MsgUpdated, body: contactCard(c), markdown: true}

		case "7":
			format, err := export.ParseFormat(v[0])
			if err != nil {
				return resultMsg{title: err.Error(), failed: true}
			}
			path, err := export.ToFile(exportDir, s.List(), format)
			if err != nil {
				return resultMsg{title: "export failed: " + err.Error(), failed: true}
			}
			return resultMsg{title: "Exported to " + path}
		}
		return resultMsg{title: menu.MsgInvalid, failed: true}
	}
}

// contactCard renders one contact as a Markdown definition block.
func contactCard(c contact.Contact) string {
	email := c.Email
	if email == "" {
		email = menu.MsgEmailNotSet
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", c.Name)
	fmt.Fprintf(&b, "- **ID:** %d\n", c.ID)
	fmt.Fprintf(&b, "- **Phone:** %s\n", c.Phone)
	fmt.Fprintf(&b, "- **Email:** %s\n", email)
	if c.Address != "" {
		fmt.Fprintf(&b, "- **Address:** %s\n", c.Address)
	}
	fmt.Fprintf(&b, "- **Created:** %s\n", c.Created)
	return b.String()
}

func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		Banner(),
		"  ",
		StatusPathStyle.Render(m.store.Path()),
		StatusBarStyle.Render(m.status),
	)

	var middle string
	if m.mode == modeForm {
		middle = m.form.View()
	} else {
		middle = m.menu.View()
	}

	help := "↑/↓ move • enter select • 1-7 jump • pgup/pgdown scroll • q quit"
	if m.mode == modeForm {
		help = "enter next • esc cancel"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		middle,
		ResultBoxStyle.Render(m.viewport.View()),
		HelpStyle.Render(help),
	)
}
