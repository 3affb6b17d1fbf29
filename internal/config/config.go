// Package config resolves the effective policy for a run from three tiers:
// explicit invocation inputs, the repository config file, and built-in
// defaults. Precedence is applied field by field, and a value that fails to
// parse falls through to the next tier instead of aborting the run.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pr-size-check/internal/policy"
)

// Built-in defaults, the lowest-precedence tier.
const (
	DefaultMaxLines   = 400
	DefaultMaxFiles   = 25
	DefaultMode       = policy.ModeWarn
	DefaultRetryCount = 2
)

// DefaultTestDirNames are the directory names treated as test locations
// when neither tier overrides them.
var DefaultTestDirNames = []string{"test", "tests", "__tests__"}

// FileNames are the accepted repository config file names, in lookup order;
// the first one found wins.
var FileNames = []string{".pr-size.yml", ".pr-size.yaml"}

// Overrides carries raw invocation inputs. An empty string means "not set".
type Overrides struct {
	MaxLines  string
	MaxFiles  string
	TestPaths string
	Exclude   string
	Mode      string
	Retries   string
}

// Resolve merges the three tiers field by field and returns the effective
// policy. Repository config problems degrade to warnings, never errors.
func Resolve(overrides Overrides, repoRoot string) policy.Config {
	file := loadFile(repoRoot)

	return policy.Config{
		MaxLines:     resolveInt(overrides.MaxLines, file.MaxLines, DefaultMaxLines, 1),
		MaxFiles:     resolveInt(overrides.MaxFiles, file.MaxFiles, DefaultMaxFiles, 1),
		TestDirNames: resolveList(overrides.TestPaths, file.TestPaths, DefaultTestDirNames),
		ExcludeGlobs: resolveList(overrides.Exclude, file.Exclude, nil),
		Mode:         resolveMode(overrides.Mode, file.Mode),
		RetryCount:   resolveInt(overrides.Retries, file.Retries, DefaultRetryCount, 0),
	}
}

// fileConfig mirrors the repository config document. Unknown fields are
// ignored. List fields accept a native YAML sequence or a comma string.
type fileConfig struct {
	MaxLines  *int       `yaml:"max_lines"`
	MaxFiles  *int       `yaml:"max_files"`
	TestPaths stringList `yaml:"test_paths"`
	Exclude   stringList `yaml:"exclude"`
	Mode      string     `yaml:"mode"`
	Retries   *int       `yaml:"retries"`
}

// loadFile reads the first config file found at the repository root. A
// missing file is normal; a malformed one warns and is ignored entirely.
func loadFile(repoRoot string) fileConfig {
	for _, name := range FileNames {
		path := filepath.Join(repoRoot, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("Failed to read repository config", "path", path, "error", err)
			}
			continue
		}

		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			slog.Warn("Ignoring malformed repository config", "path", path, "error", err)
			return fileConfig{}
		}
		fc.validate(path)
		slog.Debug("Loaded repository config", "path", path)
		return fc
	}
	return fileConfig{}
}

// validate drops out-of-range numeric fields with a warning so they fall
// through to defaults.
func (fc *fileConfig) validate(path string) {
	if fc.MaxLines != nil && *fc.MaxLines <= 0 {
		slog.Warn("Ignoring non-positive max_lines in repository config", "path", path, "value", *fc.MaxLines)
		fc.MaxLines = nil
	}
	if fc.MaxFiles != nil && *fc.MaxFiles <= 0 {
		slog.Warn("Ignoring non-positive max_files in repository config", "path", path, "value", *fc.MaxFiles)
		fc.MaxFiles = nil
	}
	if fc.Retries != nil && *fc.Retries < 0 {
		slog.Warn("Ignoring negative retries in repository config", "path", path, "value", *fc.Retries)
		fc.Retries = nil
	}
}

// resolveInt applies the same range discipline to the override tier that
// validate applies to the file tier: an unparseable or below-minimum value
// falls through rather than winning.
func resolveInt(override string, fileVal *int, def, min int) int {
	if s := strings.TrimSpace(override); s != "" {
		v, err := strconv.Atoi(s)
		switch {
		case err != nil:
			slog.Warn("Ignoring unparseable numeric input", "value", override)
		case v < min:
			slog.Warn("Ignoring out-of-range numeric input", "value", v, "minimum", min)
		default:
			return v
		}
	}
	if fileVal != nil {
		return *fileVal
	}
	return def
}

func resolveList(override string, fileVal stringList, def []string) []string {
	if strings.TrimSpace(override) != "" {
		return splitList(override)
	}
	if fileVal != nil {
		return fileVal
	}
	return def
}

// resolveMode lowercases the winning value. Unknown modes are accepted and
// behave like warn downstream.
func resolveMode(override, fileVal string) string {
	mode := strings.TrimSpace(override)
	if mode == "" {
		mode = strings.TrimSpace(fileVal)
	}
	if mode == "" {
		return DefaultMode
	}
	return strings.ToLower(mode)
}

// stringList accepts either a YAML sequence or a comma-separated string.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		cleaned := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				cleaned = append(cleaned, item)
			}
		}
		*l = cleaned
		return nil
	case yaml.ScalarNode:
		*l = splitList(value.Value)
		return nil
	default:
		return &yaml.TypeError{Errors: []string{"must be a list or a comma-separated string"}}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
