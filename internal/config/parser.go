package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadButtons reads a buttons file, a mapping of key to definition, validates
// it and returns the definitions sorted by key.
func LoadButtons(path string) ([]ButtonDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, barerrors.NewParseError(path, 0, err)
	}
	return ParseButtons(path, data)
}

// ParseButtons decodes buttons YAML already read from path.
func ParseButtons(path string, data []byte) ([]ButtonDefinition, error) {
	var raw map[string]ButtonDefinition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, barerrors.NewParseError(path, extractLine(err), err)
	}

	defs := make([]ButtonDefinition, 0, len(raw))
	for key, def := range raw {
		def.Key = key
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Key < defs[j].Key })

	if err := ValidateButtons(defs); err != nil {
		return nil, err
	}

	return defs, nil
}

// LoadVars reads the free-form expression variables file. A missing file
// yields an empty map.
func LoadVars(path string) (map[string]any, error) {
	vars := make(map[string]any)
	if path == "" {
		return vars, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vars, nil
		}
		return nil, barerrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, barerrors.NewParseError(path, extractLine(err), err)
	}
	if vars == nil {
		vars = make(map[string]any)
	}
	return vars, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
