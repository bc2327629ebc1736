package actions

import "github.com/footprint-tools/recommit/internal/dispatchers"

func ShowVersion(args []string, flags *dispatchers.ParsedFlags) error {
	return showVersion(args, flags, defaultDeps())
}

func showVersion(_ []string, _ *dispatchers.ParsedFlags, deps actionDependencies) error {
	_, _ = deps.Printf("recommit version %v %s/%s\n", deps.Version(), deps.GOOS, deps.GOARCH)
	return nil
}
