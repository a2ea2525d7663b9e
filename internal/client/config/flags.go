package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/flagx"
)

var globalFlags = []string{"-a", "-f", "-i", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the API server
//	-f string   session database file
//	-i int      request timeout in seconds
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "API server base URL")
	fs.StringVar(&cfg.SessionDB, "f", cfg.SessionDB, "session database file")
	requestTimeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}

// CommandArgs strips the leading global flags from args and returns the
// command with its own arguments. Parsing stops at the first non-flag, so
// command flags such as "list --limit 5" are left intact.
func CommandArgs(args []string) ([]string, error) {
	fs := flag.NewFlagSet("taskctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var ignored string
	for _, name := range globalFlags {
		fs.StringVar(&ignored, name[1:], "", "")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
