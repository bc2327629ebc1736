// Package timezone resolves IANA zone names and suggests corrections for typos.
package timezone

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/footprint-tools/recommit/internal/suggest"
)

//go:embed zones.txt
var zonesFile string

// ErrUnknown is returned for names the system zone database does not know.
var ErrUnknown = errors.New("unknown timezone")

const maxSuggestions = 10

var (
	zonesOnce sync.Once
	zones     []string
)

// Common returns the embedded list of well-known zone names.
func Common() []string {
	zonesOnce.Do(func() {
		for _, line := range strings.Split(zonesFile, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				zones = append(zones, line)
			}
		}
	})
	return zones
}

// UnknownError carries the rejected name and its closest known matches.
type UnknownError struct {
	Name        string
	Suggestions []string
	Err         error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknown, e.Name)
}

func (e *UnknownError) Is(target error) bool {
	return target == ErrUnknown
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

// Load resolves name to a location. An empty name means UTC.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}

	// time.LoadLocation treats "Local" specially; only real zone names are accepted.
	if name == "Local" {
		return nil, &UnknownError{Name: name, Suggestions: Suggest(name)}
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &UnknownError{Name: name, Suggestions: Suggest(name), Err: err}
	}
	return loc, nil
}

// Suggest returns up to ten known zone names close to name.
//
// A candidate whose city part matches name exactly ranks first, so "berlin"
// suggests "Europe/Berlin".
func Suggest(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var exactCity []string
	for _, z := range Common() {
		if strings.EqualFold(city(z), city(name)) && !strings.EqualFold(z, name) {
			exactCity = append(exactCity, z)
		}
	}

	maxDistance := max(3, len(name)/3)
	ranked := suggest.Closest(name, Common(), maxDistance, maxSuggestions)

	out := exactCity
	for _, z := range ranked {
		if !contains(out, z) {
			out = append(out, z)
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// city returns the part after the last slash.
func city(zone string) string {
	if i := strings.LastIndex(zone, "/"); i >= 0 {
		return zone[i+1:]
	}
	return zone
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
