// Package export writes the contact list to YAML, XLSX and Markdown.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/contactbook/internal/contact"
)

type Format string

const (
	YAML     Format = "yaml"
	XLSX     Format = "xlsx"
	Markdown Format = "markdown"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{YAML, XLSX, Markdown}

var ErrUnknownFormat = errors.New("export: unknown format")

// SheetName is the worksheet that holds contacts in XLSX output.
const SheetName = "Contacts"

// EmptyCell is shown for blank optional fields in Markdown output.
const EmptyCell = "-"

var header = []string{"ID", "Name", "Phone", "Email", "Address", "Created"}

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "yaml", "yml":
		return YAML, nil
	case "xlsx", "excel":
		return XLSX, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension used for f, without the dot.
func (f Format) Ext() string {
	if f == Markdown {
		return "md"
	}
	return string(f)
}

// Write encodes contacts to w in the given format.
func Write(w io.Writer, contacts []contact.Contact, format Format) error {
	switch format {
	case YAML:
		return writeYAML(w, contacts)
	case XLSX:
		return writeXLSX(w, contacts)
	case Markdown:
		_, err := io.WriteString(w, MarkdownTable(contacts))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ToFile writes contacts to dir/contacts.<ext>, creating dir if needed,
// and returns the path written.
func ToFile(dir string, contacts []contact.Contact, format Format) (string, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "contacts."+format.Ext())
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Write(f, contacts, format); err != nil {
		f.Close()
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func writeYAML(w io.Writer, contacts []contact.Contact) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(contacts); err != nil {
		return err
	}
	return enc.Close()
}

func writeXLSX(w io.Writer, contacts []contact.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	rows := make([][]any, 0, len(contacts)+1)
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	rows = append(rows, head)
	for _, c := range contacts {
		rows = append(rows, []any{c.ID, c.Name, c.Phone, c.Email, c.Address, c.Created})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// ReadXLSX reads contacts back from a workbook written by Write.
func ReadXLSX(r io.Reader) ([]contact.Contact, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, err
	}

	var out []contact.Contact
	for i, row := range rows {
		if i == 0 {
			continue
		}
		// GetRows trims trailing empty cells
		for len(row) < len(header) {
			row = append(row, "")
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad id %q: %w", i+1, row[0], err)
		}
		out = append(out, contact.Contact{
			ID:      id,
			Name:    row[1],
			Phone:   row[2],
			Email:   row[3],
			Address: row[4],
			Created: row[5],
		})
	}
	return out, nil
}

// MarkdownTable renders contacts as a GitHub-flavoured Markdown table.
func MarkdownTable(contacts []contact.Contact) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(header[:5], " | ") + " |\n")
	b.WriteString("|---:|---|---|---|---|\n")
	for _, c := range contacts {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			c.ID, cell(c.Name), cell(c.Phone), cell(c.Email), cell(c.Address))
	}
	return b.String()
}

func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return EmptyCell
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
