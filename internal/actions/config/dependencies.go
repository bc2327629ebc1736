package config

import (
	"fmt"

	"github.com/footprint-tools/recommit/internal/config"
)

type Deps struct {
	ReadLines  func() ([]string, error)
	WriteLines func([]string) error
	WithLock   func(func() error) error
	Set        func([]string, string, string) ([]string, bool)
	Unset      func([]string, string) ([]string, bool)
	Validate   func(key, value string) error
	Get        func(string) (string, bool)
	List       func() []config.Value
	Printf     func(string, ...any) (int, error)
	Println    func(...any) (int, error)
	Pager      func(string)
}

func DefaultDeps() Deps {
	return Deps{
		ReadLines:  config.ReadLines,
		WriteLines: config.WriteLines,
		WithLock:   config.WithLock,
		Set:        config.Set,
		Unset:      config.Unset,
		Validate:   config.ValidateValue,
		Get:        config.Get,
		List:       config.List,
		Printf:     fmt.Printf,
		Println:    fmt.Println,
		Pager:      pager,
	}
}
