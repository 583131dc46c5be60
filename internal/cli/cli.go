package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ExitError carries a specific process exit code alongside the message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// command is one subcommand: run receives the arguments after the
// subcommand name.
type command struct {
	name    string
	summary string
	run     func(stdout io.Writer, args []string) error
}

var commands = []command{
	{"to-constraints", "flatten the install closure to a constraints file", runToConstraints},
	{"to-dot", "render the graph in Graphviz DOT format", runToDot},
	{"explain-duplicates", "report packages needing more than one version", runExplainDuplicates},
	{"why", "trace the reasons a package is in the graph", runWhy},
	{"migrate-graph", "convert a legacy graph file to the current format", runMigrateGraph},
	{"to-makefile", "derive a Makefile build plan from the graph", runToMakefile},
	{"to-bazel", "derive a Bazel BUILD file from the graph", runToBazel},
}

// Run parses global options, configures logging, and dispatches to the
// named subcommand.
func Run(stdout io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("wheelwright", flag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.Usage = func() { usage(stdout, flagSet) }

	logLevelFlag := flagSet.String("log-level", "info", "Logging level: 'debug', 'info', 'warn', or 'error'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return usageError("%s", err)
	}

	if err := configureLogging(*logLevelFlag, *logFormatFlag); err != nil {
		return err
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return usageError("no command given")
	}
	name := flagSet.Arg(0)
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd.run(stdout, flagSet.Args()[1:])
		}
	}
	return usageError("unknown command %q", name)
}

func usage(w io.Writer, flagSet *flag.FlagSet) {
	fmt.Fprint(w, `
wheelwright - dependency graph tooling for building package collections from source.

Usage:
  wheelwright [options] COMMAND [command options] ARGS...

Commands:
`)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-20s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprint(w, "\nOptions:\n")
	flagSet.PrintDefaults()
}

func configureLogging(level, format string) error {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return usageError("invalid log-format: must be 'text' or 'json'")
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// stringList collects the values of a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}
