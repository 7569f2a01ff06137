package commands

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/klabast/wb-services/timeline/internal/app"
	"github.com/klabast/wb-services/timeline/internal/tui"
)

// TUI handles the tui subcommand
func TUI(args []string) {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	prefsPath := fs.String("preferences", "", "Path to the preferences file (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: timeline tui [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Browses the timeline in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fail("timeline tui needs an interactive terminal; use 'timeline list' instead")
	}

	cfg, err := common.load()
	if err != nil {
		fail("Error: %v", err)
	}
	if *prefsPath != "" {
		cfg.Preferences.Path = *prefsPath
	}

	theme := app.NewThemeState(app.NewFilePreferences(cfg.Preferences.Path))
	if err := tui.Run(cfg.NewSource(), theme, cfg.Display.ExcerptLength); err != nil {
		fail("Error: %v", err)
	}
}
