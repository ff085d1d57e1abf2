package prompts

import (
	"fmt"
	"strings"
)

type Validator func(Input) error

func RequireNonEmpty(field string, get func(Input) string) Validator {
	return func(in Input) error {
		if strings.TrimSpace(get(in)) == "" {
			return fmt.Errorf("missing %s", field)
		}
		return nil
	}
}

func RequirePositive(field string, get func(Input) int) Validator {
	return func(in Input) error {
		if get(in) <= 0 {
			return fmt.Errorf("%s must be > 0", field)
		}
		return nil
	}
}
