package emit

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/dragomit/hsmgen/internal/planner"
	"github.com/dragomit/hsmgen/internal/resolver"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Targets lists every supported LanguageSpec by the name a caller (the CLI's
// -l flag) selects it with.
var Targets = map[string]LanguageSpec{
	"cpp":    CPP{},
	"rust":   Rust{},
	"python": Python{},
}

// ErrUnsupportedLanguage is returned by Render when name names no LanguageSpec
// in Targets.
type ErrUnsupportedLanguage struct {
	Name      string
	Available []string
}

func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("unsupported language %q, available: %v", e.Name, e.Available)
}

// Render builds the Context for language and executes its embedded template,
// returning the full generated source text and its conventional file
// extension.
func Render(r *resolver.Resolved, p *planner.Plan, language string, opt Options) (string, string, error) {
	ls, ok := Targets[language]
	if !ok {
		var names []string
		for n := range Targets {
			names = append(names, n)
		}
		return "", "", &ErrUnsupportedLanguage{Name: language, Available: names}
	}

	ctx := BuildContext(r, p, ls, opt)

	tmpl, err := template.ParseFS(templateFS, "templates/"+ls.TemplateName())
	if err != nil {
		return "", "", fmt.Errorf("parsing template for %s: %w", language, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", "", fmt.Errorf("rendering template for %s: %w", language, err)
	}

	return buf.String(), ls.FileExtension(), nil
}
