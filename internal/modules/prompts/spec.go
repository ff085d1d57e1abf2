package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Spec is the declaration format used in RegisterAll.
type Spec struct {
	Name    PromptName
	Version int
	// Plain strings or go templates using {{.Field}} from Input
	System     string
	User       string
	Validators []Validator
}

type Template struct {
	Name     PromptName
	Version  int
	System   func(Input) string
	User     func(Input) string
	Validate Validator
}

var (
	registryMu sync.RWMutex
	registry   = map[PromptName]Template{}
	registerMu sync.Once
)

// MakeTemplate compiles a Spec into a Template.
func MakeTemplate(s Spec) (Template, error) {
	if strings.TrimSpace(string(s.Name)) == "" {
		return Template{}, fmt.Errorf("missing prompt name")
	}
	if s.Version <= 0 {
		return Template{}, fmt.Errorf("invalid version for %s", s.Name)
	}
	sysT, err := template.New("system").Option("missingkey=zero").Parse(s.System)
	if err != nil {
		return Template{}, fmt.Errorf("%s system template parse: %w", s.Name, err)
	}
	userT, err := template.New("user").Option("missingkey=zero").Parse(s.User)
	if err != nil {
		return Template{}, fmt.Errorf("%s user template parse: %w", s.Name, err)
	}
	render := func(t *template.Template, in Input) string {
		var b bytes.Buffer
		_ = t.Execute(&b, in)
		return strings.TrimSpace(b.String())
	}
	tt := Template{
		Name:    s.Name,
		Version: s.Version,
		System:  func(in Input) string { return render(sysT, in) },
		User:    func(in Input) string { return render(userT, in) },
	}
	if len(s.Validators) > 0 {
		tt.Validate = func(in Input) error {
			for _, v := range s.Validators {
				if v == nil {
					continue
				}
				if err := v(in); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return tt, nil
}

// RegisterSpec compiles and registers s, panicking on a malformed template.
func RegisterSpec(s Spec) {
	t, err := MakeTemplate(s)
	if err != nil {
		panic(err)
	}
	registryMu.Lock()
	registry[t.Name] = t
	registryMu.Unlock()
}

// Build renders the named prompt.
func Build(name PromptName, in Input) (Prompt, error) {
	registerMu.Do(RegisterAll)

	registryMu.RLock()
	t, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
		}
	}
	return Prompt{
		Name:    string(t.Name),
		Version: t.Version,
		System:  t.System(in),
		User:    t.User(in),
	}, nil
}
