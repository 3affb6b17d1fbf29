package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pr-size-check/internal/policy"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolve_Defaults(t *testing.T) {
	cfg := Resolve(Overrides{}, t.TempDir())

	assert.Equal(t, DefaultMaxLines, cfg.MaxLines)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, DefaultTestDirNames, cfg.TestDirNames)
	assert.Empty(t, cfg.ExcludeGlobs)
	assert.Equal(t, policy.ModeWarn, cfg.Mode)
	assert.Equal(t, DefaultRetryCount, cfg.RetryCount)
}

func TestResolve_FileTier(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".pr-size.yml", `
max_lines: 600
max_files: 40
test_paths:
  - spec
  - tests
exclude: "vendor/**, **/*.pb.go"
mode: FAIL
retries: 0
`)

	cfg := Resolve(Overrides{}, dir)

	assert.Equal(t, 600, cfg.MaxLines)
	assert.Equal(t, 40, cfg.MaxFiles)
	assert.Equal(t, []string{"spec", "tests"}, cfg.TestDirNames)
	assert.Equal(t, []string{"vendor/**", "**/*.pb.go"}, cfg.ExcludeGlobs)
	assert.Equal(t, policy.ModeFail, cfg.Mode)
	assert.Equal(t, 0, cfg.RetryCount)
}

func TestResolve_OverrideBeatsFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".pr-size.yml", "max_lines: 600\nmode: fail\n")

	cfg := Resolve(Overrides{MaxLines: "200", Mode: "warn"}, dir)

	assert.Equal(t, 200, cfg.MaxLines)
	assert.Equal(t, policy.ModeWarn, cfg.Mode)
}

func TestResolve_UnparseableOverrideFallsThrough(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".pr-size.yml", "max_lines: 600\n")

	cfg := Resolve(Overrides{MaxLines: "lots", MaxFiles: "many"}, dir)

	// falls to the file value when present, else to the default
	assert.Equal(t, 600, cfg.MaxLines)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
}

func TestResolve_FirstFileNameWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".pr-size.yml", "max_lines: 111\n")
	writeConfig(t, dir, ".pr-size.yaml", "max_lines: 222\n")

	cfg := Resolve(Overrides{}, dir)

	assert.Equal(t, 111, cfg.MaxLines)
}

func TestResolve_MalformedFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".pr-size.yml", "max_lines: [not: closed\n")

	cfg := Resolve(Overrides{}, dir)

	assert.Equal(t, DefaultMaxLines, cfg.MaxLines)
	assert.Equal(t, policy.ModeWarn, cfg.Mode)
}

func TestResolve_NonPositiveFileNumericsFallThrough(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".pr-size.yml", "max_lines: -5\nmax_files: 0\nretries: -1\n")

	cfg := Resolve(Overrides{}, dir)

	assert.Equal(t, DefaultMaxLines, cfg.MaxLines)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, DefaultRetryCount, cfg.RetryCount)
}

// Override values get the same range checks as file values: non-positive
// limits and negative retries fall through to the next tier.
func TestResolve_OutOfRangeOverridesFallThrough(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".pr-size.yml", "max_lines: 600\n")

	cfg := Resolve(Overrides{MaxLines: "0", MaxFiles: "-5", Retries: "-3"}, dir)

	assert.Equal(t, 600, cfg.MaxLines)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, DefaultRetryCount, cfg.RetryCount)
}

func TestResolve_ZeroRetriesOverrideIsValid(t *testing.T) {
	cfg := Resolve(Overrides{Retries: "0"}, t.TempDir())

	assert.Equal(t, 0, cfg.RetryCount)
}

func TestResolve_ModeNormalizedToLowercase(t *testing.T) {
	cfg := Resolve(Overrides{Mode: "  Fail "}, t.TempDir())

	assert.Equal(t, policy.ModeFail, cfg.Mode)
}

// Unknown modes are accepted as-is after lowercasing; downstream they behave
// like warn. Pinned here because the behavior for such values is otherwise
// undefined.
func TestResolve_UnknownModePassesThrough(t *testing.T) {
	cfg := Resolve(Overrides{Mode: "Strict"}, t.TempDir())

	assert.Equal(t, "strict", cfg.Mode)
}

func TestResolve_CommaListsTrimmed(t *testing.T) {
	cfg := Resolve(Overrides{TestPaths: " spec , e2e ,"}, t.TempDir())

	assert.Equal(t, []string{"spec", "e2e"}, cfg.TestDirNames)
}

func TestResolve_MissingConfigDirIsFine(t *testing.T) {
	cfg := Resolve(Overrides{}, filepath.Join(t.TempDir(), "nope"))

	assert.Equal(t, DefaultMaxLines, cfg.MaxLines)
}
