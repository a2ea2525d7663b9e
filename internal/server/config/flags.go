package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-b int      bcrypt cost
//	-t int      shutdown timeout, seconds
//	-o string   comma-separated CORS origins
//	-l string   logger backend (slog|zap)
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-b", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	origins := fs.String("o", strings.Join(config.CORSOrigins, ","), "allowed CORS origins, comma separated")

	fs.StringVar(&config.Logger, "l", config.Logger, "logger backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only flags present on the command line override these two
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
		case "o":
			config.CORSOrigins = splitList(*origins)
		}
	})
}
