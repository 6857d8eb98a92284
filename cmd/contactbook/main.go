package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/contactbook/internal/config"
	"github.com/jeanpaul/contactbook/internal/contact"
	"github.com/jeanpaul/contactbook/internal/logger"
	"github.com/jeanpaul/contactbook/internal/menu"
	"github.com/jeanpaul/contactbook/internal/tui"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("contactbook %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}
	tui.ApplyTheme(cfg.Theme)

	log, closer := logger.New(cfg.Log)
	defer closer.Close()

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "config":
			if err := cmdConfig(os.Stdout, cfg); err != nil {
				fatal("%s", err)
			}
			return
		case "help":
			showHelp()
			return
		}
	}

	store, err := contact.Open(cfg.DataFile, contact.WithLogger(log))
	if err != nil {
		fatal("%s", err)
	}

	if len(args) > 0 {
		switch args[0] {
		case "list":
			err = cmdList(os.Stdout, store)
		case "export":
			if len(args) < 2 {
				fatal("usage: contactbook export <yaml|xlsx|markdown> [dir]")
			}
			dir := cfg.ExportDir
			if len(args) > 2 {
				dir = args[2]
			}
			err = cmdExport(os.Stdout, store, args[1], dir)
		default:
			fatal("unknown command: %s (try 'contactbook help')", args[0])
		}
		if err != nil {
			fatal("%s", err)
		}
		return
	}

	if isTerminal() {
		launchTUI(store, cfg, log)
		return
	}

	r := &menu.Runner{
		Store:     store,
		In:        os.Stdin,
		Out:       os.Stdout,
		ExportDir: cfg.ExportDir,
		Log:       log,
	}
	if err := r.Run(); err != nil {
		fatal("%s", err)
	}
}

func launchTUI(store *contact.Store, cfg *config.Config, log *slog.Logger) {
	m := tui.NewModel(store, tui.Options{
		ExportDir: cfg.ExportDir,
		Theme:     cfg.Theme,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fatal("TUI error: %s", err)
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
		log.Error("store failure", "err", fm.Err())
		fatal("%s", fm.Err())
	}
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.Banner() + `
` + tui.LabelStyle.Render("USAGE:") + `
  contactbook                         Open the contact menu
  contactbook <command> [args]        Run a command

` + tui.LabelStyle.Render("COMMANDS:") + `
  list                                Print every contact
  export <yaml|xlsx|markdown> [dir]   Write the contact list to dir/contacts.<ext>
  config                              Print the effective configuration
  help                                Show this help

` + tui.LabelStyle.Render("FLAGS:") + `
  --version                           Show version
  --help, -h                          Show this help

` + tui.LabelStyle.Render("MENU:") + `
  1 add  2 delete  3 search  4 list  5 update  6 exit  7 export
  When stdin is not a terminal the menu reads one answer per line.

` + tui.LabelStyle.Render("CONFIG:") + `
  ./config.yaml, $XDG_CONFIG_HOME/contactbook/config.yaml or
  ~/.config/contactbook/config.yaml. Keys can be overridden with
  CONTACTBOOK_DATA_FILE, CONTACTBOOK_EXPORT_DIR, CONTACTBOOK_THEME,
  CONTACTBOOK_LOG_LEVEL, CONTACTBOOK_LOG_FILE, CONTACTBOOK_LOG_FORMAT.
`
	fmt.Println(help)
}
