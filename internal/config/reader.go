package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/paths"
)

// ReadLines returns the raw lines of ~/.recommitrc. A missing file is created
// with a commented template listing every key.
func ReadLines() ([]string, error) {
	configPath, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(configPath)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(configPath, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	// Ensure correct permissions if file already existed
	if err := os.Chmod(configPath, 0600); err != nil {
		log.Warn("config: could not set permissions on config file: %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		line = strings.TrimSuffix(line, "\r") // Windows CRLF
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if isNew && len(lines) == 0 {
		lines = Template()
		if err := WriteLines(lines); err != nil {
			log.Warn("config: could not write config template: %v", err)
		}
	}

	return lines, nil
}

// Template returns the initial content of a new config file. Every key is
// commented out so defaults and environment variables stay in effect.
func Template() []string {
	lines := []string{
		"# recommit configuration",
		"# Edit values below or use: recommit config set <key> <value>",
		"# Environment variables override values in this file.",
	}

	for _, section := range domain.ConfigSections() {
		lines = append(lines, "", "# ["+section+"]")
		for _, key := range domain.ConfigKeys {
			if key.Section != section {
				continue
			}
			lines = append(lines, "# "+key.Name+"="+quote(DefaultValue(key.Name)))
		}
	}

	return lines
}
