package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// StateName identifies one of the four button states.
type StateName string

const (
	StateActiveReady     StateName = "active_ready"
	StateActiveUnready   StateName = "active_unready"
	StateInactiveReady   StateName = "inactive_ready"
	StateInactiveUnready StateName = "inactive_unready"
)

// StatePriority is the order in which state conditions are tested.
var StatePriority = []StateName{
	StateActiveReady,
	StateActiveUnready,
	StateInactiveReady,
	StateInactiveUnready,
}

// Valid reports whether s is one of the recognized state names.
func (s StateName) Valid() bool {
	for _, known := range StatePriority {
		if s == known {
			return true
		}
	}
	return false
}

func (s StateName) String() string {
	return string(s)
}

// StateSpec describes how a button looks and behaves in one state.
type StateSpec struct {
	Variant      string `yaml:"variant,omitempty" validate:"max=200"`
	Icon         int    `yaml:"icon,omitempty" validate:"omitempty,min=1"`
	Command      string `yaml:"command,omitempty"`
	GroupCommand string `yaml:"group_command,omitempty"`
	Condition    string `yaml:"condition,omitempty"`
	Timer        string `yaml:"timer,omitempty"`
	Tooltip      string `yaml:"tooltip,omitempty"`
}

// IconIndex returns the 1-based icon position, defaulting to the first cell.
func (s StateSpec) IconIndex() int {
	if s.Icon < 1 {
		return 1
	}
	return s.Icon
}

// HasCondition reports whether the spec carries a non-blank condition.
func (s StateSpec) HasCondition() bool {
	return strings.TrimSpace(s.Condition) != ""
}

// HasTimer reports whether the spec carries a non-blank timer expression.
func (s StateSpec) HasTimer() bool {
	return strings.TrimSpace(s.Timer) != ""
}

// ButtonDefinition is one configured action button. The engine reads it and
// never mutates it.
type ButtonDefinition struct {
	Key      string                  `yaml:"-" validate:"required,button_key"`
	Name     string                  `yaml:"name,omitempty" validate:"max=100"`
	Category Tags                    `yaml:"category,omitempty"`
	Image    string                  `yaml:"image,omitempty" validate:"omitempty,sheet_id"`
	States   map[StateName]StateSpec `yaml:"states,omitempty" validate:"dive,keys,state_name,endkeys"`
}

// State returns the spec configured for name.
func (b ButtonDefinition) State(name StateName) (StateSpec, bool) {
	spec, ok := b.States[name]
	return spec, ok
}

// HasConditions reports whether any state defines a condition.
func (b ButtonDefinition) HasConditions() bool {
	for _, spec := range b.States {
		if spec.HasCondition() {
			return true
		}
	}
	return false
}

// HasTimers reports whether any state defines a timer expression.
func (b ButtonDefinition) HasTimers() bool {
	for _, spec := range b.States {
		if spec.HasTimer() {
			return true
		}
	}
	return false
}

// Tooltip returns the state's tooltip, falling back to the button name.
func (b ButtonDefinition) Tooltip(state StateName) string {
	if spec, ok := b.States[state]; ok && spec.Tooltip != "" {
		return spec.Tooltip
	}
	return b.Name
}

// Command returns the trimmed command bound to state; empty means nothing to send.
func (b ButtonDefinition) Command(state StateName) string {
	return strings.TrimSpace(b.States[state].Command)
}

// Tags is a set of category labels. It decodes from either a YAML sequence or
// a comma separated scalar.
type Tags []string

// UnmarshalYAML accepts "a, b" as well as [a, b].
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	switch value.Kind {
	case yaml.ScalarNode:
		raw = strings.Split(value.Value, ",")
	default:
		if err := value.Decode(&raw); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make(Tags, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	*t = out
	return nil
}

// Has reports whether tag is in the set.
func (t Tags) Has(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}
