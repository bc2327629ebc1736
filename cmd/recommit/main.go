package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/footprint-tools/recommit/internal/app"
	"github.com/footprint-tools/recommit/internal/cli"
	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/ui"
	"github.com/footprint-tools/recommit/internal/ui/style"
	"github.com/footprint-tools/recommit/internal/usage"
)

// exitInterrupted mirrors the shell convention for SIGINT.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app.SetContext(ctx)

	code := execute(os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func execute(args []string, stderr io.Writer) int {
	rawFlags, commands := extractFlagsAndCommands(args)
	flags := dispatchers.NewParsedFlags(rawFlags)

	// Enable styling if stdout is a terminal and --no-color is not set
	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !flags.Has("--no-color")
	style.Init(enableColor)

	if flags.Has("--no-pager") {
		ui.DisablePager()
	}
	if pager := flags.String("--pager", ""); pager != "" {
		ui.SetPager(pager)
	}

	root := cli.BuildTree()

	res, err := dispatchers.Dispatch(root, commands, flags)
	if err != nil {
		return report(stderr, err)
	}

	if err := res.Execute(res.Args, res.Flags); err != nil {
		return report(stderr, err)
	}

	// Non-zero when no command was given, like git
	return res.ExitCode
}

func report(stderr io.Writer, err error) int {
	var ue *usage.Error
	if errors.As(err, &ue) {
		_, _ = fmt.Fprintln(stderr, ue.Error())
		return ue.GetExitCode()
	}

	if errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(stderr, "recommit: interrupted")
		return exitInterrupted
	}

	_, _ = fmt.Fprintln(stderr, "recommit: "+err.Error())
	return 1
}

// extractFlagsAndCommands separates flags from positional tokens.
// Value flags given as "--flag value" are rewritten to "--flag=value";
// "-n N" and "-N" are shorthands for "--limit=N".
func extractFlagsAndCommands(args []string) ([]string, []string) {
	valueFlags := cli.ValueFlags()
	flags := []string{}
	commands := []string{}

	for i := 0; i < len(args); i++ {
		a := args[i]

		if a == "" || a[0] != '-' {
			commands = append(commands, a)
			continue
		}

		if n, ok := numericShorthand(a); ok {
			flags = append(flags, "--limit="+n)
			continue
		}

		if a == "-n" {
			if i+1 < len(args) && isPositiveInt(args[i+1]) {
				flags = append(flags, "--limit="+args[i+1])
				i++
				continue
			}
			flags = append(flags, a)
			continue
		}

		if valueFlags[a] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			flags = append(flags, a+"="+args[i+1])
			i++
			continue
		}

		flags = append(flags, a)
	}

	return flags, commands
}

func numericShorthand(a string) (string, bool) {
	if len(a) < 2 || a[0] != '-' || a[1] == '-' {
		return "", false
	}
	n := a[1:]
	if !isPositiveInt(n) {
		return "", false
	}
	return n, true
}

func isPositiveInt(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && strconv.Itoa(n) == s
}
