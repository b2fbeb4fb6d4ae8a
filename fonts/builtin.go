// Package fonts exposes the embedded Latin Modern faces so the engine runs
// without any font files on disk. Stylesheets reference them as
// "builtin:<name>" sources.
package fonts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

const prefix = "builtin:"

var builtins = map[string][]byte{
	"lmroman10-regular": lmroman10regular.TTF,
	"lmroman10-bold":    lmroman10bold.TTF,
	"lmroman10-italic":  lmroman10italic.TTF,
	"lmsans10-regular":  lmsans10regular.TTF,
	"lmsans10-bold":     lmsans10bold.TTF,
	"lmmono10-regular":  lmmono10regular.TTF,
}

// IsBuiltin reports whether src is a builtin: font reference.
func IsBuiltin(src string) bool {
	return strings.HasPrefix(src, prefix)
}

// Load returns the TTF bytes of a builtin font. src may be written with or
// without the "builtin:" prefix.
func Load(src string) ([]byte, error) {
	name := strings.TrimPrefix(src, prefix)
	data, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("no builtin font %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names lists the builtin font names in stable order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
