package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/klabast/wb-services/timeline/internal/app"
)

// ListOptions selects and formats the events printed by the list command
type ListOptions struct {
	Category string
	Year     string
	Format   string // text, csv or json
	Width    int    // terminal width for text output, 0 when unknown
}

// List handles the list subcommand
func List(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	category := fs.String("category", app.All, "Only show events in this category")
	year := fs.String("year", app.All, "Only show events from this year")
	format := fs.String("format", "text", "Output format: text, csv or json")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: timeline list [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the timeline, filtered and sorted by year.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		fail("Error: %v", err)
	}

	opts := ListOptions{Category: *category, Year: *year, Format: *format}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			opts.Width = w
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout)
	defer cancel()
	if err := RunList(ctx, cfg, opts, os.Stdout); err != nil {
		fail("Error: %v", err)
	}
}

// RunList loads the events and writes the display set to w
func RunList(ctx context.Context, cfg *app.Config, opts ListOptions, w io.Writer) error {
	year, err := app.ParseYearFilter(opts.Year)
	if err != nil {
		return fmt.Errorf("invalid year %q", opts.Year)
	}

	sess := app.NewSession(nil, cfg.Display.ExcerptLength)
	if err := sess.Load(ctx, cfg.NewSource()); err != nil {
		return err
	}
	sess.OnCategoryChange(opts.Category)
	sess.OnYearChange(year)

	switch opts.Format {
	case "csv":
		return app.WriteCSV(w, sess.Display())
	case "json":
		return app.WriteJSON(w, sess.Selection(), sess.Display())
	case "text", "":
		return writeText(w, app.Project(sess), opts.Width)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

// writeText prints one card per event. Excerpts are cut to the terminal
// width when it is known.
func writeText(w io.Writer, v app.TimelineView, width int) error {
	if v.Status != app.StatusReady {
		_, err := fmt.Fprintln(w, v.Message)
		return err
	}
	for _, e := range v.Events {
		excerpt := e.Excerpt
		if width > 10 {
			excerpt = app.Truncate(excerpt, width-10)
		}
		if _, err := fmt.Fprintf(w, "%-6d %s [%s]\n       %s\n", e.Year, e.Title, e.Category, excerpt); err != nil {
			return err
		}
	}
	return nil
}
