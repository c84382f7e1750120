package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MenuOption is a named, user-selectable action mapping to an ordered command sequence.
// The step sequence cannot be modified after construction.
type MenuOption struct {
	Key   string
	Label string
	steps []CommandStep
}

// NewMenuOption creates a MenuOption. The steps slice is copied.
func NewMenuOption(key, label string, steps []CommandStep) MenuOption {
	cloned := make([]CommandStep, len(steps))
	for i, s := range steps {
		cloned[i] = s.clone()
	}
	return MenuOption{
		Key:   key,
		Label: label,
		steps: cloned,
	}
}

// Steps returns a copy of the option's command sequence.
func (o MenuOption) Steps() []CommandStep {
	out := make([]CommandStep, len(o.steps))
	for i, s := range o.steps {
		out[i] = s.clone()
	}
	return out
}

// Len returns the number of steps.
func (o MenuOption) Len() int {
	return len(o.steps)
}

// Menu is the static, ordered set of options presented to the user.
// Fields are ordered to minimize memory padding.
type Menu struct {
	options    []MenuOption
	index      map[string]int
	Title      string
	DefaultKey string
}

// NewMenu validates the options and builds a Menu.
// Keys must be non-empty and unique, and defaultKey must name one of them.
func NewMenu(title, defaultKey string, options []MenuOption) (*Menu, error) {
	m := &Menu{
		Title:      title,
		DefaultKey: defaultKey,
		options:    make([]MenuOption, 0, len(options)),
		index:      make(map[string]int, len(options)),
	}
	for _, o := range options {
		if strings.TrimSpace(o.Key) == "" {
			return nil, ErrEmptyMenuKey
		}
		if _, dup := m.index[o.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMenuKey, o.Key)
		}
		m.index[o.Key] = len(m.options)
		m.options = append(m.options, NewMenuOption(o.Key, o.Label, o.steps))
	}
	if _, ok := m.index[defaultKey]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDefaultKey, defaultKey)
	}
	return m, nil
}

// Options returns the menu options in presentation order.
func (m *Menu) Options() []MenuOption {
	return slices.Clone(m.options)
}

// Keys returns the option keys in presentation order.
func (m *Menu) Keys() []string {
	keys := make([]string, len(m.options))
	for i, o := range m.options {
		keys[i] = o.Key
	}
	return keys
}

// Lookup returns the option for key, or ErrUnknownSelection.
func (m *Menu) Lookup(key string) (MenuOption, error) {
	i, ok := m.index[key]
	if !ok {
		return MenuOption{}, fmt.Errorf("%w: %q", ErrUnknownSelection, key)
	}
	return m.options[i], nil
}

// KeyRange describes the valid keys for a prompt, e.g. "1-4" when keys are
// consecutive integers in order, otherwise a comma-separated list.
func (m *Menu) KeyRange() string {
	keys := m.Keys()
	if len(keys) == 0 {
		return ""
	}
	if len(keys) > 1 && consecutiveInts(keys) {
		return keys[0] + "-" + keys[len(keys)-1]
	}
	return strings.Join(keys, ", ")
}

func consecutiveInts(keys []string) bool {
	prev := 0
	for i, k := range keys {
		n, err := strconv.Atoi(k)
		if err != nil {
			return false
		}
		if i > 0 && n != prev+1 {
			return false
		}
		prev = n
	}
	return true
}
