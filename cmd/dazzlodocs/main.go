package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for a command name that does not exist.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if err := loadDotEnv(); err != nil {
		fmt.Fprintf(env.Stderr, "loading %s: %v\n", envFile, err)
		return ExitUsage
	}

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "dazzlodocs %s\n", version())
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest, env)
	}

	var err error
	switch cmd {
	case "convert":
		ctx, cancel := notifyContext(context.Background())
		err = runConvert(ctx, rest, env)
		cancel()
	case "templates":
		err = runTemplates(rest, env)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// version returns the ldflags version, falling back to the module version
// for go install builds.
func version() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
