package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/contactbook/internal/contact"
	"github.com/jeanpaul/contactbook/internal/menu"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	s, err := contact.Open(filepath.Join(dir, "contacts.json"))
	require.NoError(t, err)

	m := NewModel(s, Options{ExportDir: filepath.Join(dir, "export"), GlamourStyle: "notty"})
	// Send WindowSize first so the viewport has real dimensions
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return updated.(Model)
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	if s != "" {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

// finish submits the last answer and feeds the resulting store message back.
func finish(t *testing.T, m Model, s string) Model {
	t.Helper()
	if s != "" {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(resultMsg)
	require.True(t, ok, "expected a resultMsg, got %T", msg)
	m, _ = press(t, m, msg)
	return m
}

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func addContact(t *testing.T, m Model, name, phone, email, address string) Model {
	t.Helper()
	m, _ = press(t, m, key("1"))
	require.Equal(t, modeForm, m.mode)
	m = typeText(t, m, name)
	m = typeText(t, m, phone)
	m = typeText(t, m, email)
	return finish(t, m, address)
}

func TestMenuStartsActive(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, modeMenu, m.mode)
	view := m.View()
	for _, a := range menu.Actions {
		assert.Contains(t, view, a.Title)
	}
}

func TestAddThroughForm(t *testing.T) {
	m := newTestModel(t)
	m = addContact(t, m, "Alice", "555-1111", "", "Main St")

	assert.Equal(t, modeMenu, m.mode)
	assert.Equal(t, 1, m.store.Len())
	assert.Contains(t, m.viewport.View(), "Contact added with ID: 1")

	c, err := m.store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Main St", c.Address)
}

func TestAddMissingName(t *testing.T) {
	m := newTestModel(t)
	m = addContact(t, m, "", "555", "", "")

	assert.Equal(t, 0, m.store.Len())
	assert.Contains(t, m.viewport.View(), menu.MsgMissingField)
}

func TestListRendersTable(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, key("4"))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Contains(t, m.viewport.View(), menu.MsgEmpty)

	m = addContact(t, m, "Alice", "555-1111", "", "")
	m = addContact(t, m, "Bob", "555-2222", "", "")

	m, cmd = press(t, m, key("4"))
	m, _ = press(t, m, cmd())
	view := m.viewport.View()
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "Bob")
}

func TestSearchAndDelete(t *testing.T) {
	m := newTestModel(t)
	m = addContact(t, m, "Alice", "555-1111", "", "")
	m = addContact(t, m, "Bob", "555-2222", "", "")

	m, _ = press(t, m, key("3"))
	m = finish(t, m, "bob")
	assert.Contains(t, m.viewport.View(), "1 found")

	m, _ = press(t, m, key("2"))
	m = finish(t, m, "2")
	assert.Contains(t, m.viewport.View(), menu.MsgDeleted)
	assert.Equal(t, 1, m.store.Len())

	m, _ = press(t, m, key("3"))
	m = finish(t, m, "bob")
	assert.Contains(t, m.viewport.View(), menu.MsgNotFound)
}

func TestDeleteBadID(t *testing.T) {
	m := newTestModel(t)
	m = addContact(t, m, "Alice", "555-1111", "", "")

	m, _ = press(t, m, key("2"))
	m = finish(t, m, "abc")

	assert.Contains(t, m.viewport.View(), menu.MsgBadID)
	assert.Equal(t, 1, m.store.Len())
}

func TestUpdateFlow(t *testing.T) {
	m := newTestModel(t)
	m = addContact(t, m, "Alice", "555-1111", "", "")

	m, _ = press(t, m, key("5"))
	m = typeText(t, m, "1")
	m = typeText(t, m, "Email")
	m = finish(t, m, "alice@example.com")
	assert.Contains(t, m.viewport.View(), menu.MsgUpdated)

	c, err := m.store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", c.Email)

	m, _ = press(t, m, key("5"))
	m = typeText(t, m, "1")
	m = typeText(t, m, "created")
	m = finish(t, m, "never")
	assert.Contains(t, m.viewport.View(), "unknown field")

	m, _ = press(t, m, key("5"))
	m = typeText(t, m, "9")
	m = typeText(t, m, "name")
	m = finish(t, m, "Ghost")
	assert.Contains(t, m.viewport.View(), menu.MsgNoSuchID)
}

func TestExport(t *testing.T) {
	m := newTestModel(t)
	m = addContact(t, m, "Alice", "555-1111", "", "")

	m, _ = press(t, m, key("7"))
	m = finish(t, m, "yaml")

	path := filepath.Join(m.exportDir, "contacts.yaml")
	assert.Contains(t, m.viewport.View(), "Exported to")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Alice")
}

func TestEscCancelsForm(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, key("1"))
	m = typeText(t, m, "Alice")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeMenu, m.mode)
	assert.Equal(t, "cancelled", m.status)
	assert.Equal(t, 0, m.store.Len())
}

func TestEnterSelectsHighlighted(t *testing.T) {
	m := newTestModel(t)

	// first item is "Add contact"
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, "1", m.form.action)
	assert.True(t, strings.Contains(m.View(), "Name"))
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(t, m, key("6"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPersistFailureStopsProgram(t *testing.T) {
	s, err := contact.Open(filepath.Join(t.TempDir(), "gone", "contacts.json"))
	require.NoError(t, err)
	m := NewModel(s, Options{GlamourStyle: "notty"})

	m, _ = press(t, m, key("1"))
	m = typeText(t, m, "Alice")
	m = typeText(t, m, "555")
	m = typeText(t, m, "")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, cmd = press(t, m, cmd())
	require.Error(t, m.Err())
	assert.Contains(t, m.Err().Error(), "persist")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
