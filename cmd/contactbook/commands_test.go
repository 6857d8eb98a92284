package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/contactbook/internal/config"
	"github.com/jeanpaul/contactbook/internal/contact"
	"github.com/jeanpaul/contactbook/internal/export"
)

func openStore(t *testing.T) *contact.Store {
	t.Helper()
	s, err := contact.Open(filepath.Join(t.TempDir(), "contacts.json"))
	require.NoError(t, err)
	return s
}

func TestCmdList(t *testing.T) {
	s := openStore(t)

	var out bytes.Buffer
	require.NoError(t, cmdList(&out, s))
	assert.Equal(t, "contact list is empty\n", out.String())

	_, err := s.Add("Alice", "555-1111", "", "")
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, cmdList(&out, s))
	assert.Equal(t, "ID: 1 | Alice | 555-1111\n", out.String())
}

func TestCmdExport(t *testing.T) {
	s := openStore(t)
	_, err := s.Add("Alice", "555-1111", "alice@example.com", "")
	require.NoError(t, err)

	dir := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, cmdExport(&out, s, "xlsx", dir))

	path := filepath.Join(dir, "contacts.xlsx")
	assert.Contains(t, out.String(), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	back, err := export.ReadXLSX(f)
	require.NoError(t, err)
	assert.Equal(t, s.List(), back)

	err = cmdExport(&out, s, "pdf", dir)
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestCmdConfig(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cmdConfig(&out, config.DefaultConfig()))
	assert.Contains(t, out.String(), "data_file: contacts.json")
}
