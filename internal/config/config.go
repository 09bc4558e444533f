package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default on-disk locations relative to the project root.
const (
	DefaultProjectPath = "steering/project.yml"
	DefaultLevelsPath  = "steering/rules/constitution-levels.yml"
	MemoriesDir        = "steering/memories"
)

// Workflow modes.
const (
	ModeSmall  = "small"
	ModeMedium = "medium"
	ModeLarge  = "large"
)

// Project is the parsed steering/project.yml.
type Project struct {
	SchemaVersion string   `yaml:"schema_version"`
	PackageType   string   `yaml:"package_type"`
	Workflow      Workflow `yaml:"workflow"`
	Constitution  struct {
		Overrides   map[string]any `yaml:"overrides"`
		LevelConfig map[string]any `yaml:"level_config"`
	} `yaml:"constitution"`
}

// Workflow holds workflow tuning.
type Workflow struct {
	Mode string `yaml:"mode"`
}

// DefaultProject returns the configuration used when no project file exists.
func DefaultProject() *Project {
	p := &Project{
		SchemaVersion: "2.0",
		PackageType:   "application",
		Workflow:      Workflow{Mode: ModeMedium},
	}
	p.Constitution.Overrides = map[string]any{}
	return p
}

// LoadProject reads a project file. A missing file yields defaults;
// malformed YAML is a configuration error.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProject(), nil
		}
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	p := DefaultProject()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	if p.Workflow.Mode == "" {
		p.Workflow.Mode = ModeMedium
	}
	if p.Constitution.Overrides == nil {
		p.Constitution.Overrides = map[string]any{}
	}
	return p, nil
}

// Migrate upgrades a v1 project file to schema v2 in place. Unknown keys
// are preserved; a file already at v2 is left untouched. Returns true when
// the file was rewritten.
func Migrate(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading project file: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if v, _ := doc["schema_version"].(string); v == "2.0" {
		return false, nil
	}

	doc["schema_version"] = "2.0"
	if _, ok := doc["package_type"]; !ok {
		doc["package_type"] = InferPackageType(filepath.Dir(filepath.Dir(path)))
	}

	workflow, _ := doc["workflow"].(map[string]any)
	if workflow == nil {
		workflow = map[string]any{}
	}
	if _, ok := workflow["mode"]; !ok {
		workflow["mode"] = ModeMedium
	}
	doc["workflow"] = workflow

	constitution, _ := doc["constitution"].(map[string]any)
	if constitution == nil {
		constitution = map[string]any{}
	}
	if _, ok := constitution["level_config"]; !ok {
		constitution["level_config"] = map[string]any{}
	}
	doc["constitution"] = constitution

	out, err := yaml.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshaling project file: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, fmt.Errorf("writing project file: %w", err)
	}
	return true, nil
}

// InferPackageType guesses the package type from files present at the
// project root. The heuristics are deliberately shallow; the migrated
// value is meant to be reviewed by a human.
func InferPackageType(root string) string {
	exists := func(rel string) bool {
		_, err := os.Stat(filepath.Join(root, rel))
		return err == nil
	}
	switch {
	case exists("cmd"):
		return "cli"
	case exists("Dockerfile") || exists("docker-compose.yml"):
		return "service"
	case exists("lib") || exists("pkg"):
		return "library"
	default:
		return "application"
	}
}
