package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Settings are the values the interactive flow can change.
type Settings struct {
	RootName  string
	Renderer  string
	Renderers []string
}

// Ask walks the user through the root record name and renderer choice,
// starting from current. Renderers lists the selectable names.
func Ask(ctx context.Context, driver Driver, current Settings) (Settings, error) {
	if driver == nil {
		return current, errors.New("prompt: driver is nil")
	}

	root, err := driver.Input(ctx, InputConfig{
		Message:   "Root model name",
		Default:   current.RootName,
		Help:      "Name of the class generated for the top-level object.",
		Validator: ValidateRecordName,
	})
	if err != nil {
		return current, err
	}
	if trimmed := strings.TrimSpace(root); trimmed != "" {
		current.RootName = trimmed
	}

	if len(current.Renderers) > 0 {
		defaultIndex := 0
		for i, name := range current.Renderers {
			if name == current.Renderer {
				defaultIndex = i
			}
		}
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      "Output format",
			Options:      current.Renderers,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return current, err
		}
		if idx >= 0 && idx < len(current.Renderers) {
			current.Renderer = current.Renderers[idx]
		}
	}
	return current, nil
}

// ConfirmOverwrite asks before replacing an existing output file.
func ConfirmOverwrite(ctx context.Context, driver Driver, path string) (bool, error) {
	if driver == nil {
		return false, errors.New("prompt: driver is nil")
	}
	return driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s exists. Overwrite?", path),
		Default: false,
	})
}

// ValidateRecordName accepts names usable as a Python class name. Empty input
// keeps the default and is accepted.
func ValidateRecordName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("prompt: %q is not a valid class name", name)
	}
	return nil
}
