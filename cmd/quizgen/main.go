// quizgen writes the binary fixtures for the reverse-engineering quiz.
//
// With no command it generates every fixture into the current directory.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/TerranMechworks/mech3doc/internal/config"
	"github.com/TerranMechworks/mech3doc/internal/logger"
	"github.com/TerranMechworks/mech3doc/internal/quiz"
	"github.com/TerranMechworks/mech3doc/pkg/encoding"
)

// outputDir is where fixtures are written. Always the working directory.
const outputDir = "."

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one quizgen invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	usage := func() { printUsage(stderr) }
	if err := config.ParseFlags(args, stderr, usage); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return exitError
	}

	if err := logger.Init(cfg.Logging.Level, cfg.LoggerFile(), stderr); err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return exitError
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	rest := config.Args()
	command := "generate"
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	switch command {
	case "generate", "gen":
		err = cmdGenerate(rest)
	case "list", "ls":
		err = cmdList(stdout)
	case "dump":
		err = cmdDump(rest, stdout, stderr)
	case "config":
		err = cmdConfig(cfg, rest, stdout, stderr)
	case "help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return exitUsage
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `quizgen - reverse-engineering quiz fixture generator

Usage:
  quizgen [flags] [command] [args]

Commands:
  generate [name...]      Write fixtures to the current directory (default)
  list                    List fixtures, sizes and layouts
  dump [-strings] <name>  Hex dump a fixture without writing it
  config [-write path]    Print the effective config, or write it to a file

Flags:
  -config path            Config file (default ./quizgen.yaml)
  -debug                  Enable debug logging
  -log-file path          Also write logs to a rotating file

Examples:
  quizgen
  quizgen generate quiz003
  quizgen dump quiz004.bin`)
}

func lookup(name string) (quiz.Fixture, error) {
	f, ok := quiz.Lookup(name)
	if !ok {
		return quiz.Fixture{}, fmt.Errorf("%w: unknown fixture %q", errUsage, name)
	}
	return f, nil
}

func cmdGenerate(args []string) error {
	if len(args) == 0 {
		return quiz.WriteAll(outputDir)
	}

	fixtures := make([]quiz.Fixture, 0, len(args))
	for _, name := range args {
		f, err := lookup(name)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, f)
	}
	return quiz.Write(outputDir, fixtures)
}

func cmdList(stdout io.Writer) error {
	for _, f := range quiz.Fixtures() {
		data, err := f.Bytes()
		if err != nil {
			return err
		}
		size, err := f.Size()
		if err != nil {
			return err
		}
		if size != len(data) {
			return fmt.Errorf("%s: layout %s is %d bytes, built %d", f.Name, f.Layout, size, len(data))
		}
		fmt.Fprintf(stdout, "%-12s %8s  %s\n", f.Name, humanize.Bytes(uint64(len(data))), f.Layout)
	}
	return nil
}

func cmdDump(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showStrings := fs.Bool("strings", false, "List printable text runs instead of hex")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: quizgen dump [-strings] <name>", errUsage)
	}

	f, err := lookup(fs.Arg(0))
	if err != nil {
		return err
	}
	data, err := f.Bytes()
	if err != nil {
		return err
	}

	if *showStrings {
		for _, r := range textRuns(data, 4) {
			fmt.Fprintf(stdout, "%08x  %q\n", r.offset, encoding.FromLatin1(r.data))
		}
		return nil
	}

	fmt.Fprintf(stdout, "%s (%s)\n", f.Name, humanize.Bytes(uint64(len(data))))
	_, err = io.WriteString(stdout, hex.Dump(data))
	return err
}

func cmdConfig(cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	write := fs.String("write", "", "Write the effective config to this path")
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	switch {
	case *write != "":
		if err := cfg.SaveTo(*write); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", *write))
	case *save:
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", path))
	default:
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		if _, err := stdout.Write(data); err != nil {
			return err
		}
	}
	return nil
}
