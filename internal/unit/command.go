package unit

import (
	"grimm.is/wsforge/internal/config"
)

// Flag is one computed command-line flag. A Flag with no values and
// Bare=false serializes to nothing; the overlay can still target it by
// name, in which case the overlay form is emitted in its position.
type Flag struct {
	Name   string
	Values []string
	Bare   bool
}

// BareFlag returns a valueless flag.
func BareFlag(name string) Flag {
	return Flag{Name: name, Bare: true}
}

// ValueFlag returns a single-value flag; an empty value means "omitted".
func ValueFlag(name, value string) Flag {
	if value == "" {
		return Flag{Name: name}
	}
	return Flag{Name: name, Values: []string{value}}
}

// RepeatedFlag returns a flag emitted once per element, in order.
func RepeatedFlag(name string, values []string) Flag {
	return Flag{Name: name, Values: values}
}

// BuildCommand assembles the executable invocation: binary, subcommand,
// computed flags with the user overlay applied, and exactly one
// positional argument.
//
// Overlay semantics: for any flag name present in both the computed list
// and the overlay, the overlay value wins entirely (true = bare flag,
// false = omit, string = single value). Overlay-only flags follow the
// computed ones, sorted by name so output is deterministic. Flags use
// the "--name value" two-token form.
func BuildCommand(binary, subcommand string, computed []Flag, overlay config.Args, positional string) []string {
	cmd := []string{binary, subcommand}
	consumed := make(map[string]bool, len(overlay))

	for _, f := range computed {
		if v, ok := overlay[f.Name]; ok {
			consumed[f.Name] = true
			cmd = appendOverlay(cmd, f.Name, v)
			continue
		}
		cmd = appendFlag(cmd, f)
	}

	for _, name := range overlay.Names() {
		if consumed[name] {
			continue
		}
		cmd = appendOverlay(cmd, name, overlay[name])
	}

	return append(cmd, positional)
}

func appendFlag(cmd []string, f Flag) []string {
	if f.Bare {
		return append(cmd, "--"+f.Name)
	}
	for _, v := range f.Values {
		cmd = append(cmd, "--"+f.Name, v)
	}
	return cmd
}

func appendOverlay(cmd []string, name string, v config.ArgValue) []string {
	if v.IsStr {
		return append(cmd, "--"+name, v.Str)
	}
	if v.Bool {
		return append(cmd, "--"+name)
	}
	// false removes the flag entirely
	return cmd
}
