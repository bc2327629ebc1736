package config

import (
	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/usage"
)

func Get(args []string, flags *dispatchers.ParsedFlags) error {
	return get(args, flags, DefaultDeps())
}

func get(args []string, _ *dispatchers.ParsedFlags, deps Deps) error {
	if len(args) < 1 {
		return usage.MissingArgument("key")
	}

	key, err := lookupKey(args[0])
	if err != nil {
		return err
	}

	value, found := deps.Get(key.Name)
	if !found {
		// Known key without a value: print nothing, like git config.
		return nil
	}

	_, _ = deps.Println(display(key, value))
	return nil
}
