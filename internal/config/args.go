package config

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// ArgValue is one overlay entry: either a bare-flag boolean or a string
// value passed after the flag.
type ArgValue struct {
	Bool  bool
	Str   string
	IsStr bool
}

// BoolArg returns a boolean overlay value.
func BoolArg(v bool) ArgValue { return ArgValue{Bool: v} }

// StrArg returns a string overlay value.
func StrArg(v string) ArgValue { return ArgValue{Str: v, IsStr: true} }

// MarshalJSON encodes the value in its natural JSON form.
func (v ArgValue) MarshalJSON() ([]byte, error) {
	if v.IsStr {
		return json.Marshal(v.Str)
	}
	return json.Marshal(v.Bool)
}

// UnmarshalJSON accepts a JSON boolean or string; anything else is a
// malformed overlay flag.
func (v *ArgValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolArg(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StrArg(s)
		return nil
	}
	return fmt.Errorf("overlay flag value must be a boolean or string, got %s", string(data))
}

// Args is the user flag overlay: flag name -> value. Keys are unique and
// insertion order carries no meaning; serialization sorts by name.
type Args map[string]ArgValue

// Names returns the flag names in sorted order.
func (a Args) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// argsFromCty converts a decoded extra_args HCL value into Args.
// The value must be an object or map whose element values are booleans or
// strings. cty.NilVal and null both mean "no overlay".
func argsFromCty(v cty.Value) (Args, error) {
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}
	if !v.CanIterateElements() {
		return nil, fmt.Errorf("extra_args must be a mapping of flag name to bool or string")
	}

	args := make(Args)
	var err error
	v.ForEachElement(func(key, val cty.Value) bool {
		if key.Type() != cty.String {
			err = fmt.Errorf("extra_args keys must be strings")
			return true
		}
		name := key.AsString()
		if val.IsNull() {
			err = fmt.Errorf("extra_args[%s]: value must not be null", name)
			return true
		}
		switch val.Type() {
		case cty.Bool:
			args[name] = BoolArg(val.True())
		case cty.String:
			args[name] = StrArg(val.AsString())
		default:
			err = fmt.Errorf("extra_args[%s]: value must be a boolean or string, got %s",
				name, val.Type().FriendlyName())
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return args, nil
}
