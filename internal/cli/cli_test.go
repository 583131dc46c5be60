package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oselabs/wheelwright/graph"
	"github.com/oselabs/wheelwright/pypi"
)

// writeTestGraph stores a small graph on disk:
//
//	ROOT --toplevel--> app==1.0
//	app==1.0 --install--> lib==2.0
//	app==1.0 --build-system--> setuptools==68.0
func writeTestGraph(t *testing.T) string {
	t.Helper()
	g := graph.New()
	g.AddDependency("", pypi.Version{}, graph.RequirementTypeToplevel, pypi.MustVersion("1.0"), pypi.MustRequirement("app"))
	g.AddDependency("app", pypi.MustVersion("1.0"), graph.RequirementTypeInstall, pypi.MustVersion("2.0"), pypi.MustRequirement("lib>=2.0"))
	g.AddDependency("app", pypi.MustVersion("1.0"), graph.RequirementTypeBuildSystem, pypi.MustVersion("68.0"), pypi.MustRequirement("setuptools"))

	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, g.WriteFile(path))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := Run(&buf, args)
	return buf.String(), err
}

func TestRunNoCommand(t *testing.T) {
	_, err := runCLI(t)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRunUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "frobnicate")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "frobnicate")
}

func TestRunInvalidLogLevel(t *testing.T) {
	_, err := runCLI(t, "--log-level", "loud", "to-dot", "x")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestToConstraints(t *testing.T) {
	path := writeTestGraph(t)
	out, err := runCLI(t, "to-constraints", path)
	require.NoError(t, err)
	assert.Equal(t, "app==1.0\nlib==2.0\n", out)
}

func TestToConstraintsOutputFile(t *testing.T) {
	path := writeTestGraph(t)
	outPath := filepath.Join(t.TempDir(), "constraints.txt")

	out, err := runCLI(t, "to-constraints", "-o", outPath, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "app==1.0\nlib==2.0\n", string(content))
}

func TestToConstraintsMissingGraph(t *testing.T) {
	_, err := runCLI(t, "to-constraints", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*ExitError))
}

func TestToDot(t *testing.T) {
	path := writeTestGraph(t)
	out, err := runCLI(t, "to-dot", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph {"), "output %q", out)
	assert.Contains(t, out, `label="app==1.0"`)
}

func TestExplainDuplicatesQuietOnCleanGraph(t *testing.T) {
	path := writeTestGraph(t)
	out, err := runCLI(t, "explain-duplicates", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestWhyDirectParents(t *testing.T) {
	path := writeTestGraph(t)
	out, err := runCLI(t, "why", path, "lib")
	require.NoError(t, err)
	// The node key heads the report, then its provenance lines.
	assert.Contains(t, out, "\nlib==2.0\n")
	assert.Contains(t, out, "install dependency of app==1.0")
}

func TestWhyHeaderPerMatchedNode(t *testing.T) {
	g := graph.New()
	g.AddDependency("", pypi.Version{}, graph.RequirementTypeToplevel, pypi.MustVersion("1.0"), pypi.MustRequirement("app"))
	g.AddDependency("app", pypi.MustVersion("1.0"), graph.RequirementTypeInstall, pypi.MustVersion("1.0"), pypi.MustRequirement("lib>=1.0"))
	g.AddDependency("app", pypi.MustVersion("1.0"), graph.RequirementTypeBuildSystem, pypi.MustVersion("2.0"), pypi.MustRequirement("lib>=2.0"))
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, g.WriteFile(path))

	out, err := runCLI(t, "why", path, "lib")
	require.NoError(t, err)

	// Both versions match, so each block is introduced by its own key.
	idx1 := strings.Index(out, "\nlib==1.0\n")
	idx2 := strings.Index(out, "\nlib==2.0\n")
	assert.GreaterOrEqual(t, idx1, 0, "output %q", out)
	assert.Greater(t, idx2, idx1, "output %q", out)
}

func TestWhyToplevel(t *testing.T) {
	path := writeTestGraph(t)
	out, err := runCLI(t, "why", path, "app")
	require.NoError(t, err)
	assert.Contains(t, out, "app==1.0 is a toplevel dependency")
}

func TestWhyVersionFilter(t *testing.T) {
	path := writeTestGraph(t)
	_, err := runCLI(t, "why", "--version", "9.9", path, "lib")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWhyUnknownPackage(t *testing.T) {
	path := writeTestGraph(t)
	_, err := runCLI(t, "why", path, "nonexistent")
	require.Error(t, err)
	// An operational failure, not a usage error.
	assert.NotErrorAs(t, err, new(*ExitError))
}

func TestWhyBadRequirementType(t *testing.T) {
	path := writeTestGraph(t)
	_, err := runCLI(t, "why", "--requirement-type", "bogus", path, "lib")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestMigrateGraph(t *testing.T) {
	legacy := filepath.Join(t.TempDir(), "old-graph.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{
  "": [["toplevel", "app", "1.0", "app"]],
  "app==1.0": [["install", "lib", "2.0", "lib>=2.0"]],
  "lib==2.0": []
}`), 0o644))

	out, err := runCLI(t, "migrate-graph", legacy)
	require.NoError(t, err)

	// The output round-trips through the current reader.
	g, err := graph.FromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	require.NotNil(t, g.Node("lib==2.0"))
}

func TestMigrateGraphRejectsMalformed(t *testing.T) {
	legacy := filepath.Join(t.TempDir(), "old-graph.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"": [["toplevel", "app"]]}`), 0o644))

	_, err := runCLI(t, "migrate-graph", legacy)
	require.Error(t, err)
}

func TestToMakefile(t *testing.T) {
	path := writeTestGraph(t)
	out, err := runCLI(t, "to-makefile", path, "https://sdist.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "SDIST_SERVER_URL=https://sdist.example.com")
	assert.Contains(t, out, "app__1.0__wheel")
}

func TestToMakefileWithSettings(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.hcl")
	require.NoError(t, os.WriteFile(settings, []byte(`
package "app" {
  env = {
    MAX_JOBS = "4"
  }
}
`), 0o644))

	path := writeTestGraph(t)
	out, err := runCLI(t, "to-makefile", "--settings-file", settings, path, "https://sdist.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "MAX_JOBS=4 wheelwright build-wheel")
}

func TestToMakefileMissingArgs(t *testing.T) {
	path := writeTestGraph(t)
	_, err := runCLI(t, "to-makefile", path)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestToBazel(t *testing.T) {
	path := writeTestGraph(t)
	out, err := runCLI(t, "to-bazel", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wheel(")
	assert.Contains(t, out, `name = "app-1.0"`)
	assert.Contains(t, out, `":setuptools-68.0"`)
}
