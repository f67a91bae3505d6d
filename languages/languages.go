// Package languages normalizes declared submission languages and detects
// languages from filenames.
package languages

import (
	"path/filepath"
	"strings"
)

// LanguageConfig describes one recognized language.
type LanguageConfig struct {
	Name       string
	Aliases    []string
	Extensions []string

	// Parseable marks languages the syntax and complexity analyzers support.
	Parseable bool
	// Lintable marks languages the external-linter adapter supports.
	Lintable bool
}

// DefaultRegistry is the global language registry.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(&LanguageConfig{
		Name:       "python",
		Aliases:    []string{"py", "python3"},
		Extensions: []string{".py", ".pyw", ".pyi"},
		Parseable:  true,
		Lintable:   true,
	})
	DefaultRegistry.Register(&LanguageConfig{
		Name:       "go",
		Aliases:    []string{"golang"},
		Extensions: []string{".go"},
	})
	DefaultRegistry.Register(&LanguageConfig{
		Name:       "javascript",
		Aliases:    []string{"js", "node"},
		Extensions: []string{".js", ".jsx", ".mjs"},
	})
	DefaultRegistry.Register(&LanguageConfig{
		Name:       "typescript",
		Aliases:    []string{"ts"},
		Extensions: []string{".ts", ".tsx"},
	})
	DefaultRegistry.Register(&LanguageConfig{
		Name:       "java",
		Extensions: []string{".java"},
	})
}

// Registry maps language names, aliases and file extensions to configs.
type Registry struct {
	byName map[string]*LanguageConfig
	byExt  map[string]*LanguageConfig
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*LanguageConfig),
		byExt:  make(map[string]*LanguageConfig),
	}
}

// Register adds a language config to the registry.
func (r *Registry) Register(config *LanguageConfig) {
	r.byName[config.Name] = config
	for _, alias := range config.Aliases {
		r.byName[alias] = config
	}
	for _, ext := range config.Extensions {
		r.byExt[ext] = config
	}
}

// Get looks up a language by name or alias.
func (r *Registry) Get(name string) (*LanguageConfig, bool) {
	config, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return config, ok
}

// Normalize resolves aliases to the canonical language name. Unknown names
// are returned lowercased so degraded analyzers still record what was
// declared.
func Normalize(name string) string {
	if config, ok := DefaultRegistry.Get(name); ok {
		return config.Name
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// DetectFromFilename returns the language for a filename's extension, or the
// empty string when the extension is not recognized.
func DetectFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if config, ok := DefaultRegistry.byExt[ext]; ok {
		return config.Name
	}
	return ""
}

// IsParseable reports whether the syntax and complexity analyzers support
// the language.
func IsParseable(name string) bool {
	config, ok := DefaultRegistry.Get(name)
	return ok && config.Parseable
}

// IsLintable reports whether the external-linter adapter supports the
// language.
func IsLintable(name string) bool {
	config, ok := DefaultRegistry.Get(name)
	return ok && config.Lintable
}
