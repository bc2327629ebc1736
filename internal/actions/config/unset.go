package config

import (
	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/usage"
)

func Unset(args []string, flags *dispatchers.ParsedFlags) error {
	return unset(args, flags, DefaultDeps())
}

func unset(args []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	if flags != nil && flags.Has("--all") {
		if len(args) > 0 {
			return usage.InvalidFlag("--all does not take arguments")
		}

		err := deps.WithLock(func() error {
			return deps.WriteLines([]string{})
		})
		if err != nil {
			return err
		}

		_, _ = deps.Println("all config entries removed")
		return nil
	}

	if len(args) < 1 {
		return usage.MissingArgument("key")
	}

	name := args[0]

	var removed bool
	err := deps.WithLock(func() error {
		lines, err := deps.ReadLines()
		if err != nil {
			return err
		}

		lines, removed = deps.Unset(lines, name)
		if !removed {
			return nil
		}
		return deps.WriteLines(lines)
	})
	if err != nil {
		return err
	}

	if !removed {
		if _, err := lookupKey(name); err != nil {
			return err
		}
		_, _ = deps.Printf("%s is not set in the config file\n", name)
		return nil
	}

	_, _ = deps.Printf("unset %s\n", name)
	return nil
}
