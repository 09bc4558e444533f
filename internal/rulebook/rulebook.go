package rulebook

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleLevel is the governance weight assigned to an article.
type RuleLevel string

const (
	LevelCritical RuleLevel = "critical"
	LevelAdvisory RuleLevel = "advisory"
	LevelFlexible RuleLevel = "flexible"
)

// Enforcement is the behaviour a level implies at merge time.
type Enforcement string

const (
	EnforceBlock        Enforcement = "block"
	EnforceWarn         Enforcement = "warn"
	EnforceConfigurable Enforcement = "configurable"
)

// Article ids for the nine constitutional articles.
const (
	ArticleI    = "CONST-001"
	ArticleII   = "CONST-002"
	ArticleIII  = "CONST-003"
	ArticleIV   = "CONST-004"
	ArticleV    = "CONST-005"
	ArticleVI   = "CONST-006"
	ArticleVII  = "CONST-007"
	ArticleVIII = "CONST-008"
	ArticleIX   = "CONST-009"
)

// Article pairs a stable id with its human name.
type Article struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// defaultLevels is the hard-coded level table used when no levels file is
// present or an article is missing from it.
var defaultLevels = map[string]RuleLevel{
	ArticleI:    LevelCritical,
	ArticleII:   LevelAdvisory,
	ArticleIII:  LevelCritical,
	ArticleIV:   LevelAdvisory,
	ArticleV:    LevelCritical,
	ArticleVI:   LevelAdvisory,
	ArticleVII:  LevelFlexible,
	ArticleVIII: LevelFlexible,
	ArticleIX:   LevelAdvisory,
}

// defaultNames gives each article its display name.
var defaultNames = map[string]string{
	ArticleI:    "Requirement Traceability",
	ArticleII:   "Documentation Sync",
	ArticleIII:  "Test Coverage",
	ArticleIV:   "Review Process",
	ArticleV:    "Security First",
	ArticleVI:   "Performance Budget",
	ArticleVII:  "Simplicity",
	ArticleVIII: "Anti-Abstraction",
	ArticleIX:   "Structured Documentation",
}

// Context narrows configurable-setting resolution to the current workflow
// mode and package type.
type Context struct {
	Mode        string
	PackageType string
}

// Setting is one named tunable from the levels file.
type Setting struct {
	Default      any            `yaml:"default"`
	PerMode      map[string]any `yaml:"per_mode"`
	ModeDefaults map[string]any `yaml:"mode_defaults"`
	Exceptions   []string       `yaml:"exceptions"`
}

// levelsFile mirrors the on-disk shape of constitution-levels.yml.
type levelsFile struct {
	SchemaVersion string `yaml:"schema_version"`
	Levels        map[string]struct {
		Enforcement string    `yaml:"enforcement"`
		Articles    []Article `yaml:"articles"`
	} `yaml:"levels"`
	Configurable map[string]Setting `yaml:"configurable"`
	Validation   struct {
		PackageRules map[string]map[string]any `yaml:"package_rules"`
	} `yaml:"validation"`
}

// Book is the loaded rule book. It is immutable for the duration of a
// command once built.
type Book struct {
	levels       map[string]RuleLevel
	names        map[string]string
	settings     map[string]Setting
	packageRules map[string]map[string]any
	overrides    map[string]any
}

// Load reads the global levels file. A missing file yields the hard-coded
// defaults; malformed YAML is a configuration error.
func Load(path string) (*Book, error) {
	b := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("reading levels file: %w", err)
	}
	var lf levelsFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing levels file %s: %w", path, err)
	}
	for levelName, group := range lf.Levels {
		level := RuleLevel(levelName)
		for _, a := range group.Articles {
			b.levels[a.ID] = level
			if a.Name != "" {
				b.names[a.ID] = a.Name
			}
		}
	}
	for name, s := range lf.Configurable {
		b.settings[name] = s
	}
	for pkgType, rules := range lf.Validation.PackageRules {
		b.packageRules[pkgType] = rules
	}
	return b, nil
}

func defaults() *Book {
	b := &Book{
		levels:       make(map[string]RuleLevel, len(defaultLevels)),
		names:        make(map[string]string, len(defaultNames)),
		settings:     make(map[string]Setting),
		packageRules: make(map[string]map[string]any),
		overrides:    make(map[string]any),
	}
	for id, lvl := range defaultLevels {
		b.levels[id] = lvl
	}
	for id, name := range defaultNames {
		b.names[id] = name
	}
	b.settings["max_file_lines"] = Setting{Default: 500}
	b.settings["max_function_lines"] = Setting{Default: 50}
	b.settings["max_dependencies"] = Setting{Default: 10}
	b.settings["mock_allowed"] = Setting{Default: false}
	return b
}

// ApplyOverrides layers project-level overrides (from steering/project.yml)
// onto the book. Overrides win over every other source.
func (b *Book) ApplyOverrides(overrides map[string]any) {
	for k, v := range overrides {
		b.overrides[k] = v
	}
}

// LevelOf returns the rule level for an article. Unknown articles fall
// back to advisory.
func (b *Book) LevelOf(articleID string) RuleLevel {
	if lvl, ok := b.levels[articleID]; ok {
		return lvl
	}
	return LevelAdvisory
}

// EnforcementOf derives the enforcement mode from the article's level.
func (b *Book) EnforcementOf(articleID string) Enforcement {
	switch b.LevelOf(articleID) {
	case LevelCritical:
		return EnforceBlock
	case LevelFlexible:
		return EnforceConfigurable
	default:
		return EnforceWarn
	}
}

// IsBlocking reports whether violations of the article block a merge.
func (b *Book) IsBlocking(articleID string) bool {
	return b.EnforcementOf(articleID) == EnforceBlock
}

// NameOf returns the article's display name, or the id itself when unknown.
func (b *Book) NameOf(articleID string) string {
	if name, ok := b.names[articleID]; ok {
		return name
	}
	return articleID
}

// ConfigValue resolves a configurable setting for the given context.
// Resolution order, highest wins: project override, package-type rule,
// mode default, global default.
func (b *Book) ConfigValue(setting string, ctx Context) any {
	if v, ok := b.overrides[setting]; ok {
		return v
	}
	if ctx.PackageType != "" {
		if rules, ok := b.packageRules[ctx.PackageType]; ok {
			if v, ok := rules[setting]; ok {
				return v
			}
		}
	}
	s, ok := b.settings[setting]
	if !ok {
		return nil
	}
	if ctx.Mode != "" {
		if v, ok := s.PerMode[ctx.Mode]; ok {
			return v
		}
		if v, ok := s.ModeDefaults[ctx.Mode]; ok {
			return v
		}
	}
	return s.Default
}

// ConfigInt resolves a setting as an int, falling back when the setting is
// absent or not numeric.
func (b *Book) ConfigInt(setting string, ctx Context, fallback int) int {
	switch v := b.ConfigValue(setting, ctx).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// IsMockAllowed reports whether a dependency name matches the mock
// allow-list: the union of global exceptions and project override
// patterns, by equality or substring.
func (b *Book) IsMockAllowed(dependency string, ctx Context) bool {
	// Copy so appending override patterns cannot write into the Book's
	// backing array.
	base := b.settings["mock_allowed"].Exceptions
	patterns := append(make([]string, 0, len(base)), base...)
	if ov, ok := b.overrides["mock_allowed.exceptions"]; ok {
		patterns = append(patterns, toStrings(ov)...)
	}
	for _, p := range patterns {
		if p == dependency || strings.Contains(dependency, p) {
			return true
		}
	}
	if v, ok := b.ConfigValue("mock_allowed", ctx).(bool); ok {
		return v
	}
	return false
}

func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			out = append(out, fmt.Sprintf("%v", e))
		}
		return out
	case string:
		return []string{vv}
	default:
		return nil
	}
}
