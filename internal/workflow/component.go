package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a stored component list cannot be
// decoded. The apply aborts, earlier committed state stays as is.
var ErrMalformed = errors.New("workflow definition is malformed")

const TypeAction = "action"

// Recognized action names. Anything else is carried through as a no-op.
const (
	ActionAssignApprovers = "Assign Approvers"
	ActionSetDeadline     = "Set Deadline"
	ActionQueuePost       = "Queue Post"
	ActionPostNow         = "Post Now"
	TriggerPostApproved   = "Post Approved"
)

type Component struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Options []Option `json:"options,omitempty"`
}

type Option struct {
	Name  string      `json:"name"`
	Value OptionValue `json:"value"`
}

// Option returns the value of the named option.
func (c Component) Option(name string) (OptionValue, bool) {
	for _, opt := range c.Options {
		if opt.Name == name {
			return opt.Value, true
		}
	}
	return OptionValue{}, false
}

// OptionValue is either a single string or a list of strings on the
// wire. It round-trips whichever form it was decoded from.
type OptionValue struct {
	str    string
	list   []string
	isList bool
}

func StringValue(s string) OptionValue {
	return OptionValue{str: s}
}

func ListValue(items ...string) OptionValue {
	return OptionValue{list: items, isList: true}
}

func (v OptionValue) String() string {
	if v.isList {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.str
}

// Strings returns the value as a list. A scalar becomes a one-element
// list; the empty scalar becomes nil.
func (v OptionValue) Strings() []string {
	if v.isList {
		return v.list
	}
	if v.str == "" {
		return nil
	}
	return []string{v.str}
}

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		v.isList = true
		return json.Unmarshal(data, &v.list)
	}
	v.isList = false
	return json.Unmarshal(data, &v.str)
}

func (v OptionValue) MarshalJSON() ([]byte, error) {
	if v.isList {
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return json.Marshal(v.str)
}

// Decode parses a stored component list.
func Decode(raw []byte) ([]Component, error) {
	var components []Component
	if err := json.Unmarshal(raw, &components); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i, comp := range components {
		if comp.Type == "" || comp.Name == "" {
			return nil, fmt.Errorf("%w: component %d is missing type or name", ErrMalformed, i)
		}
	}
	return components, nil
}

func Encode(components []Component) (string, error) {
	raw, err := json.Marshal(components)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// HasComponent reports whether any component carries the given name,
// regardless of its type.
func HasComponent(components []Component, name string) bool {
	for _, comp := range components {
		if comp.Name == name {
			return true
		}
	}
	return false
}
