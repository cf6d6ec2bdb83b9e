package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/ecstree/cmd/ecstree/internal/config"
	"github.com/go-drift/ecstree/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "")
	t.Cleanup(func() { errors.SetHandler(nil) })

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--dir", "testdata", "--no-ids"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func assertGolden(t *testing.T, name string, actual string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(actual))
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ecstree", cmd.Use)

	for _, name := range []string{"tree", "diff"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	dir := cmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, dir)
	assert.Equal(t, ".", dir.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("no-ids"))
}

func TestTree(t *testing.T) {
	out, _, err := execute(t, "tree", "window.yaml")
	require.NoError(t, err)
	assertGolden(t, "tree", out)
}

func TestTree_TOMLMatchesYAML(t *testing.T) {
	fromYAML, _, err := execute(t, "tree", "window.yaml")
	require.NoError(t, err)
	fromTOML, _, err := execute(t, "tree", "window.toml")
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromTOML)
}

func TestTree_WithIDs(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	t.Cleanup(func() { errors.SetHandler(nil) })

	var stdout bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"tree", filepath.Join("testdata", "window.yaml")})
	require.NoError(t, cmd.Execute())
	assert.Regexp(t, `^window main #\d+\n  label title #\d+\n`, stdout.String())
}

func TestDiff(t *testing.T) {
	out, _, err := execute(t, "diff", "window.yaml", "window_v2.yaml")
	require.NoError(t, err)
	assertGolden(t, "diff", out)
}

func TestDiff_RemountedDetached(t *testing.T) {
	out, _, err := execute(t, "diff", "window.yaml", "window_red.yaml")
	require.NoError(t, err)
	assert.NotContains(t, out, "<unmounted>")
	assertGolden(t, "diff_remount", out)
}

func TestVerboseLogsBuilds(t *testing.T) {
	_, stderr, err := execute(t, "-v", "tree", "window.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "build")
	assert.Contains(t, stderr, "app=testdata")
}

func TestErrors(t *testing.T) {
	_, _, err := execute(t, "tree", "missing.yaml")
	assert.Error(t, err)

	_, _, err = execute(t, "tree")
	assert.Error(t, err)

	_, _, err = execute(t, "--log-level", "loud", "tree", "window.yaml")
	assert.Error(t, err)
}
