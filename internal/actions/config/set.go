package config

import (
	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/usage"
)

func Set(args []string, flags *dispatchers.ParsedFlags) error {
	return set(args, flags, DefaultDeps())
}

func set(args []string, _ *dispatchers.ParsedFlags, deps Deps) error {
	if len(args) < 2 {
		return usage.MissingArgument("key value")
	}

	key, err := lookupKey(args[0])
	if err != nil {
		return err
	}
	value := args[1]

	if err := deps.Validate(key.Name, value); err != nil {
		return err
	}

	var updated bool
	err = deps.WithLock(func() error {
		lines, err := deps.ReadLines()
		if err != nil {
			return err
		}

		lines, updated = deps.Set(lines, key.Name, value)
		return deps.WriteLines(lines)
	})
	if err != nil {
		return err
	}

	action := "added"
	if updated {
		action = "updated"
	}

	_, _ = deps.Printf("%s %s=%s\n", action, key.Name, display(key, value))
	return nil
}
