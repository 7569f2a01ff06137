package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/klabast/wb-services/timeline/internal/app"
)

// commonFlags are shared by every subcommand
type commonFlags struct {
	configPath string
	source     string
	excerpt    int
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", app.ConfigPath(), "Path to YAML config file (env "+app.ConfigEnv+")")
	fs.StringVar(&c.source, "source", "", "Event document: file path or http(s) URL (overrides config)")
	fs.IntVar(&c.excerpt, "excerpt", 0, "Summary excerpt length in characters (overrides config)")
}

// load reads the config file and applies flag overrides
func (c *commonFlags) load() (*app.Config, error) {
	cfg, err := app.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.source != "" {
		cfg.Source.Location = c.source
	}
	if c.excerpt > 0 {
		cfg.Display.ExcerptLength = c.excerpt
	}
	return cfg, nil
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
