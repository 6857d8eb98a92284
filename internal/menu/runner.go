// Package menu runs the numbered contact menu over plain text streams. It is
// used when stdin is not a terminal and is what scripts talk to.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jeanpaul/contactbook/internal/contact"
	"github.com/jeanpaul/contactbook/internal/export"
)

// Action is one menu entry.
type Action struct {
	Key   string
	Title string
}

// Actions is the menu in display order. The keys are what the user types.
var Actions = []Action{
	{"1", "Add contact"},
	{"2", "Delete contact"},
	{"3", "Search contacts"},
	{"4", "List all contacts"},
	{"5", "Update contact"},
	{"6", "Exit"},
	{"7", "Export contacts"},
}

// Messages printed by the runner.
const (
	MsgNotFound     = "no contacts found"
	MsgEmpty        = "contact list is empty"
	MsgEmailNotSet  = "not set"
	MsgInvalid      = "invalid choice"
	MsgUpdated      = "contact updated"
	MsgNoSuchID     = "contact not found"
	MsgDeleted      = "contact deleted"
	MsgBadID        = "id must be a whole number"
	MsgMissingField = "name and phone are required"
)

// Runner drives the menu loop.
type Runner struct {
	Store     *contact.Store
	In        io.Reader
	Out       io.Writer
	ExportDir string
	Log       *slog.Logger

	sc *bufio.Scanner
}

// errEOF ends the loop when input runs out mid-menu.
var errEOF = errors.New("menu: end of input")

// Run shows the menu until the user exits or input ends. Errors from the
// store are returned; everything else is reported inline.
func (r *Runner) Run() error {
	r.sc = bufio.NewScanner(r.In)
	if r.Log == nil {
		r.Log = slog.New(slog.DiscardHandler)
	}
	if r.ExportDir == "" {
		r.ExportDir = "."
	}

	for {
		r.printMenu()
		choice, err := r.prompt("\nChoose an action: ")
		if err != nil {
			return r.finish(err)
		}

		r.Log.Debug("menu choice", "choice", choice)
		var stepErr error
		switch strings.TrimSpace(choice) {
		case "1":
			stepErr = r.add()
		case "2":
			stepErr = r.delete()
		case "3":
			stepErr = r.search()
		case "4":
			r.list()
		case "5":
			stepErr = r.update()
		case "6":
			return nil
		case "7":
			stepErr = r.export()
		default:
			r.println(MsgInvalid)
		}
		if stepErr != nil {
			return r.finish(stepErr)
		}
	}
}

func (r *Runner) finish(err error) error {
	if errors.Is(err, errEOF) {
		return nil
	}
	return err
}

func (r *Runner) printMenu() {
	r.println("\n=== Contact Manager ===")
	for _, a := range Actions {
		fmt.Fprintf(r.Out, "%s. %s\n", a.Key, a.Title)
	}
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.Out, s)
}

func (r *Runner) prompt(label string) (string, error) {
	fmt.Fprint(r.Out, label)
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", errEOF
	}
	return r.sc.Text(), nil
}

// promptID reads an id. ok is false when the input was not a number; the
// problem has already been reported.
func (r *Runner) promptID(label string) (id int, ok bool, err error) {
	raw, err := r.prompt(label)
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil {
		r.println(MsgBadID)
		return 0, false, nil
	}
	return id, true, nil
}

func (r *Runner) add() error {
	var fields [4]string
	labels := []string{"Name: ", "Phone: ", "Email (optional): ", "Address (optional): "}
	for i, l := range labels {
		v, err := r.prompt(l)
		if err != nil {
			return err
		}
		fields[i] = v
	}

	c, err := r.Store.Add(fields[0], fields[1], fields[2], fields[3])
	if errors.Is(err, contact.ErrMissingField) {
		r.println(MsgMissingField)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Contact added with ID: %d\n", c.ID)
	return nil
}

func (r *Runner) delete() error {
	id, ok, err := r.promptID("ID of the contact to delete: ")
	if err != nil || !ok {
		return err
	}
	if err := r.Store.Delete(id); err != nil {
		return err
	}
	r.println(MsgDeleted)
	return nil
}

func (r *Runner) search() error {
	query, err := r.prompt("Search: ")
	if err != nil {
		return err
	}

	results := r.Store.Search(query)
	if len(results) == 0 {
		r.println(MsgNotFound)
		return nil
	}
	for _, c := range results {
		email := c.Email
		if email == "" {
			email = MsgEmailNotSet
		}
		fmt.Fprintf(r.Out, "\nID: %d\nName: %s\nPhone: %s\nEmail: %s\n", c.ID, c.Name, c.Phone, email)
	}
	return nil
}

func (r *Runner) list() {
	contacts := r.Store.List()
	if len(contacts) == 0 {
		r.println(MsgEmpty)
		return
	}
	for _, c := range contacts {
		fmt.Fprintf(r.Out, "\nID: %d | %s | %s\n", c.ID, c.Name, c.Phone)
	}
}

func (r *Runner) update() error {
	id, ok, err := r.promptID("Contact ID: ")
	if err != nil || !ok {
		return err
	}
	field, err := r.prompt("Field to update (name/phone/email/address): ")
	if err != nil {
		return err
	}
	value, err := r.prompt("New value: ")
	if err != nil {
		return err
	}

	// unrecognised field names reach the store, which ignores them
	f := contact.Field(strings.ToLower(strings.TrimSpace(field)))
	_, err = r.Store.Update(id, map[contact.Field]string{f: value})
	switch {
	case errors.Is(err, contact.ErrNotFound):
		r.println(MsgNoSuchID)
	case err != nil:
		return err
	default:
		r.println(MsgUpdated)
	}
	return nil
}

func (r *Runner) export() error {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	raw, err := r.prompt("Format (" + strings.Join(names, "/") + "): ")
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(raw)
	if err != nil {
		r.println(err.Error())
		return nil
	}

	path, err := export.ToFile(r.ExportDir, r.Store.List(), format)
	if err != nil {
		r.println("export failed: " + err.Error())
		return nil
	}
	fmt.Fprintf(r.Out, "Exported %d contacts to %s\n", r.Store.Len(), path)
	return nil
}
