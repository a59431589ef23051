package envfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/envstamp/envfile"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

func TestLoad_parses_declarations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"APP_NAME=envstamp\nAPP_VERSION=1.0.0\n",
	)

	vars, err := envfile.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, "envstamp", vars["APP_NAME"])
	assert.Equal(t, "1.0.0", vars["APP_VERSION"])
	assert.Len(t, vars, 2)
}

func TestLoad_missing_file_yields_empty_map(t *testing.T) {
	t.Parallel()

	vars, err := envfile.Load(
		filepath.Join(t.TempDir(), "absent.env"),
	)

	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestLoad_skips_comments_and_blank_lines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"# build identity\n\nAPP_NAME=envstamp\n   # indented comment\n\n",
	)

	vars, err := envfile.Load(pa)

	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]string{"APP_NAME": "envstamp"},
		vars,
	)
}

func TestLoad_tolerates_crlf(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"A=1\r\nB=2\r\n",
	)

	vars, err := envfile.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, "1", vars["A"])
	assert.Equal(t, "2", vars["B"])
}

func TestLoad_quoted_value(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		`MSG="hello world"`+"\n",
	)

	vars, err := envfile.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, "hello world", vars["MSG"])
}

func TestLoad_export_prefix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"export APP_NAME=envstamp\n",
	)

	vars, err := envfile.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, "envstamp", vars["APP_NAME"])
}

func TestLoad_duplicate_is_fatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"A=1\nB=2\nA=3\n",
	)

	_, err := envfile.Load(pa)

	require.Error(t, err)

	var dup *envfile.DuplicateError

	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "A", dup.Name)
	assert.Equal(t, pa, dup.File)
	assert.Equal(t, 3, dup.Line)
}

func TestLoad_duplicate_rejected_even_if_unreferenced(
	t *testing.T,
) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"A=1\nA=2\n",
	)

	_, err := envfile.Load(pa)

	var dup *envfile.DuplicateError

	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "A", dup.Name)
}

func TestLoad_malformed_line_is_fatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"A=1\n\nJUNK\n",
	)

	_, err := envfile.Load(pa)

	require.Error(t, err)

	var pe *envfile.ParseError

	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pa, pe.File)
	assert.Equal(t, 3, pe.Line)
}

func TestResolveWith_file_wins_over_ambient(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"APP_NAME=from-file\n",
	)

	vars, err := envfile.ResolveWith(
		pa,
		[]string{"APP_NAME=from-env", "HOME=/home/ci"},
	)

	require.NoError(t, err)
	assert.Equal(t, "from-file", vars["APP_NAME"])
	assert.Equal(t, "/home/ci", vars["HOME"])
}

func TestResolveWith_ambient_only_adds(t *testing.T) {
	t.Parallel()

	vars, err := envfile.ResolveWith(
		filepath.Join(t.TempDir(), "absent.env"),
		[]string{"A=1", "B=2"},
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]string{"A": "1", "B": "2"},
		vars,
	)
}

func TestResolveWith_skips_malformed_environ_entries(
	t *testing.T,
) {
	t.Parallel()

	vars, err := envfile.ResolveWith(
		filepath.Join(t.TempDir(), "absent.env"),
		[]string{"NOEQUALS", "A=1"},
	)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1"}, vars)
}

func TestResolveWith_fresh_map_per_call(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(t, dir, ".env", "A=1\n")

	first, err := envfile.ResolveWith(pa, nil)
	require.NoError(t, err)

	first["A"] = "mutated"

	second, err := envfile.ResolveWith(pa, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", second["A"])
}

func TestResolve_uses_process_environment(t *testing.T) {
	t.Setenv("ENVSTAMP_TEST_AMBIENT", "ambient-value")

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"APP_NAME=envstamp\n",
	)

	vars, err := envfile.Resolve(pa)

	require.NoError(t, err)
	assert.Equal(t, "envstamp", vars["APP_NAME"])
	assert.Equal(
		t,
		"ambient-value",
		vars["ENVSTAMP_TEST_AMBIENT"],
	)
}

func TestResolve_file_wins_over_process_environment(
	t *testing.T,
) {
	t.Setenv("ENVSTAMP_TEST_CLASH", "from-env")

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, ".env",
		"ENVSTAMP_TEST_CLASH=from-file\n",
	)

	vars, err := envfile.Resolve(pa)

	require.NoError(t, err)
	assert.Equal(
		t,
		"from-file",
		vars["ENVSTAMP_TEST_CLASH"],
	)
}
