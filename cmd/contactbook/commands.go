package main

import (
	"fmt"
	"io"

	"github.com/jeanpaul/contactbook/internal/config"
	"github.com/jeanpaul/contactbook/internal/contact"
	"github.com/jeanpaul/contactbook/internal/export"
	"github.com/jeanpaul/contactbook/internal/menu"
)

func cmdConfig(w io.Writer, cfg *config.Config) error {
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func cmdList(w io.Writer, store *contact.Store) error {
	contacts := store.List()
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(w, menu.MsgEmpty)
		return err
	}
	for _, c := range contacts {
		if _, err := fmt.Fprintf(w, "ID: %d | %s | %s\n", c.ID, c.Name, c.Phone); err != nil {
			return err
		}
	}
	return nil
}

func cmdExport(w io.Writer, store *contact.Store, formatName, dir string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	path, err := export.ToFile(dir, store.List(), format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Exported %d contacts to %s\n", store.Len(), path)
	return err
}
