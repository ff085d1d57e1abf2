package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// layerRule forbids imports for every non-test file under dir. Entries in
// forbid are relative to the module path unless they contain a dot, in
// which case they are matched as third-party prefixes.
type layerRule struct {
	dir    string
	forbid []string
}

var layerRules = []layerRule{
	{"internal/domain", []string{"internal/platform", "internal/modules", "internal/data", "internal/services", "internal/http", "internal/app", "github.com/gin-gonic"}},
	{"internal/platform", []string{"internal/data", "internal/services", "internal/http", "internal/app", "github.com/gin-gonic"}},
	{"internal/modules", []string{"internal/data", "internal/services", "internal/http", "internal/app", "github.com/gin-gonic"}},
	{"internal/data", []string{"internal/services", "internal/http", "internal/app", "github.com/gin-gonic"}},
	{"internal/services", []string{"internal/http", "internal/app", "github.com/gin-gonic"}},
	{"internal/seed", []string{"internal/http", "internal/app"}},
	{"internal/http", []string{"internal/data", "internal/app"}},
}

var moduleLine = regexp.MustCompile(`(?m)^module\s+(\S+)`)

func moduleRoot(t *testing.T) (dir, path string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	for dir = wd; ; dir = filepath.Dir(dir) {
		raw, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			m := moduleLine.FindSubmatch(raw)
			require.NotNil(t, m, "no module line in %s/go.mod", dir)
			return dir, string(m[1])
		}
		require.NotEqual(t, dir, filepath.Dir(dir), "go.mod not found above %s", wd)
	}
}

func (r layerRule) banned(modPath, imp string) (string, bool) {
	for _, f := range r.forbid {
		prefix := f
		if !strings.Contains(strings.SplitN(f, "/", 2)[0], ".") {
			prefix = modPath + "/" + f
		}
		if imp == prefix || strings.HasPrefix(imp, prefix+"/") {
			return f, true
		}
	}
	return "", false
}

func ruleFor(rel string) *layerRule {
	for i := range layerRules {
		if strings.HasPrefix(rel, layerRules[i].dir+"/") {
			return &layerRules[i]
		}
	}
	return nil
}

func TestImportBoundaries(t *testing.T) {
	root, modPath := moduleRoot(t)
	fset := token.NewFileSet()
	var violations []string

	err := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		rule := ruleFor(rel)
		if rule == nil {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			imp, _ := strconv.Unquote(spec.Path.Value)
			if what, bad := rule.banned(modPath, imp); bad {
				violations = append(violations, rel+" imports "+imp+" ("+rule.dir+" may not use "+what+")")
			}
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(violations)
	require.Empty(t, violations, "import boundary violations:\n%s", strings.Join(violations, "\n"))
}

func TestLayerRuleMatching(t *testing.T) {
	r := layerRule{dir: "internal/services", forbid: []string{"internal/http", "github.com/gin-gonic"}}
	cases := map[string]bool{
		"example.com/m/internal/http":            true,
		"example.com/m/internal/http/handlers":   true,
		"example.com/m/internal/httpx":           false,
		"github.com/gin-gonic/gin":               true,
		"example.com/m/internal/platform/logger": false,
	}
	for imp, want := range cases {
		_, got := r.banned("example.com/m", imp)
		require.Equal(t, want, got, imp)
	}
}
