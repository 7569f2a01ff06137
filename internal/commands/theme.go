package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/klabast/wb-services/timeline/internal/app"
)

// Theme handles the theme subcommand: show, toggle, light or dark
func Theme(args []string) {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: timeline theme [OPTIONS] [show|toggle|light|dark]\n\n")
		fmt.Fprintf(os.Stderr, "Shows or changes the saved terminal theme.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		fail("Error: %v", err)
	}

	action := "show"
	if fs.NArg() > 0 {
		action = fs.Arg(0)
	}
	prefs := app.NewFilePreferences(cfg.Preferences.Path)
	if err := RunTheme(prefs, action, os.Stdout); err != nil {
		fail("Error: %v", err)
	}
}

// RunTheme applies action to the theme stored in prefs and prints the result
func RunTheme(prefs app.PreferenceStore, action string, w io.Writer) error {
	theme := app.NewThemeState(prefs)

	var err error
	switch action {
	case "show":
	case "toggle":
		err = theme.Toggle()
	case string(app.ThemeLight), string(app.ThemeDark):
		err = theme.Set(app.Theme(action))
	default:
		return fmt.Errorf("unknown theme action %q", action)
	}
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	_, err = fmt.Fprintln(w, theme.Current())
	return err
}
