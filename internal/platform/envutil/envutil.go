// Package envutil reads typed environment variables, falling back to a
// default when the variable is unset, blank or unparsable.
package envutil

import (
	"os"
	"strconv"
	"strings"
)

func lookup[T any](name string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func String(name, def string) string {
	return lookup(name, def, func(s string) (string, error) { return s, nil })
}

// Bool accepts strconv forms plus yes/no and on/off.
func Bool(name string, def bool) bool {
	return lookup(name, def, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "yes", "on":
			return true, nil
		case "no", "off":
			return false, nil
		}
		return strconv.ParseBool(s)
	})
}
