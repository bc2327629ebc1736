package mirror

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/footprint-tools/recommit/internal/app"
	"github.com/footprint-tools/recommit/internal/config"
)

type Deps struct {
	LoadSettings func() (config.Settings, error)
	NewApp       func(config.Settings, app.Options) (*app.App, error)
	Context      func() context.Context

	Printf  func(string, ...any) (int, error)
	Println func(...any) (int, error)
	Stderr  io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		LoadSettings: config.Load,
		NewApp:       app.New,
		Context:      app.Context,
		Printf:       fmt.Printf,
		Println:      fmt.Println,
		Stderr:       os.Stderr,
	}
}
