package actions

import (
	"fmt"
	"runtime"

	"github.com/footprint-tools/recommit/internal/app"
)

type actionDependencies struct {
	Printf  func(format string, a ...any) (n int, err error)
	Version func() string
	GOOS    string
	GOARCH  string
}

func defaultDeps() actionDependencies {
	return actionDependencies{
		Printf:  fmt.Printf,
		Version: func() string { return app.Version },
		GOOS:    runtime.GOOS,
		GOARCH:  runtime.GOARCH,
	}
}
