package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/footprint-tools/recommit/internal/config"
	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/ui/style"
)

func List(args []string, flags *dispatchers.ParsedFlags) error {
	return list(args, flags, DefaultDeps())
}

type jsonValue struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Origin string `json:"origin"`
}

func list(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	values := deps.List()

	if flags != nil && flags.Has("--json") {
		out := make([]jsonValue, 0, len(values))
		for _, v := range values {
			out = append(out, jsonValue{Key: v.Key.Name, Value: display(v.Key, v.Value), Origin: v.Origin.String()})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = deps.Println(string(data))
		return nil
	}

	bySection := make(map[string][]config.Value)
	for _, v := range values {
		bySection[v.Key.Section] = append(bySection[v.Key.Section], v)
	}

	var out strings.Builder
	for _, section := range domain.ConfigSections() {
		entries := bySection[section]
		if len(entries) == 0 {
			continue
		}

		out.WriteString(style.Header(section))
		out.WriteString("\n")
		for _, v := range entries {
			value := display(v.Key, v.Value)
			if v.Origin == config.OriginNone {
				value = style.Warning("(unset)")
				if v.Key.Required {
					value = style.Error("(required)")
				}
			}
			fmt.Fprintf(&out, "   %s=%s %s\n", v.Key.Name, value, style.Muted("["+v.Origin.String()+"]"))
		}
		out.WriteString("\n")
	}

	deps.Pager(out.String())
	return nil
}
