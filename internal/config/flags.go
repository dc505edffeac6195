package config

import (
	"flag"
	"io"
)

// flags holds the global options that precede the command name.
var flags = flag.NewFlagSet("quizgen", flag.ContinueOnError)

var (
	flagConfig  = flags.String("config", "", "Path to config file")
	flagDebug   = flags.Bool("debug", false, "Enable debug logging")
	flagLogFile = flags.String("log-file", "", "Also write logs to this file")
)

// ParseFlags parses global flags from args (without the program name).
// Errors and -h output go to output. Call this early in main().
func ParseFlags(args []string, output io.Writer, usage func()) error {
	flags.SetOutput(output)
	flags.Usage = usage
	return flags.Parse(args)
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flags.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
