package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/workbench"
)

const peopleCSV = `name,age,city
Ann,29,Berlin
Bob,41,Paris
Cat,35,Berlin
Dan,,Oslo
`

func writePeople(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(peopleCSV), 0o644))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestViewCommand(t *testing.T) {
	path := writePeople(t)

	tests := []struct {
		name     string
		args     []string
		wantErr  string
		contains []string
		excludes []string
	}{
		{
			name:     "first page as a table",
			args:     []string{path},
			contains: []string{"name", "age", "city", "Ann", "Dan", "Page 1 of 1 (4 rows)"},
		},
		{
			name:     "search and column selection",
			args:     []string{path, "--search", "berlin", "--columns", "Name"},
			contains: []string{"Ann", "Cat", "(2 rows)"},
			excludes: []string{"Bob", "city"},
		},
		{
			name:     "no matches",
			args:     []string{path, "--search", "zzz"},
			contains: []string{"No rows found."},
		},
		{
			name:    "unknown sort column",
			args:    []string{path, "--sort", "salary"},
			wantErr: "unknown sort column: salary",
		},
		{
			name:    "unknown selected column",
			args:    []string{path, "--columns", "name,salary"},
			wantErr: "unknown column: salary",
		},
		{
			name:    "bad output format",
			args:    []string{path, "-o", "xml"},
			wantErr: "invalid output format",
		},
		{
			name:    "missing file",
			args:    []string{filepath.Join(t.TempDir(), "nope.csv")},
			wantErr: "does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewViewCommand(), tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestViewCommand_JSON(t *testing.T) {
	path := writePeople(t)

	out, err := execute(t, NewViewCommand(), path, "--search", "berlin", "--sort", "age", "--desc", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Page    int              `json:"page"`
		Pages   int              `json:"pages"`
		Total   int              `json:"total"`
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.Pages)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, []string{"name", "age", "city"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Cat", got.Rows[0]["name"])
	assert.Equal(t, float64(35), got.Rows[0]["age"])
	assert.Equal(t, "Ann", got.Rows[1]["name"])
}

func TestViewCommand_PageIsClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.csv")
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < 25; i++ {
		b.WriteString("row\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	out, err := execute(t, NewViewCommand(), path, "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 3 of 3 (25 rows)")
}

func TestCheckCommand(t *testing.T) {
	path := writePeople(t)

	out, err := execute(t, NewCheckCommand(), path, "--require", "name")
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "4 rows, 3 columns")

	// Dan has an empty age, which still counts as provided.
	out, err = execute(t, NewCheckCommand(), path, "--require", "name,age")
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows, 3 columns")

	short := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("name,age,city\nAnn,29,Berlin\nDan\nEve,30,Rome,extra\n"), 0o644))

	out, err = execute(t, NewCheckCommand(), short, "--require", "name,age")
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "2 rows, 1 skipped")
	assert.Contains(t, out, "Row 2 missing columns: age")
	assert.Contains(t, out, "warning: Row 3 has 4 fields, expected 3")
}

func TestCheckCommand_YAML(t *testing.T) {
	path := writePeople(t)

	out, err := execute(t, NewCheckCommand(), path, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "rows: 4")
	assert.Contains(t, out, "skipped: 0")
	assert.Contains(t, out, "ok: true")
	assert.NotContains(t, out, "errors:")
}

func TestCheckCommand_UnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n\"unterminated\n"), 0o644))

	out, err := execute(t, NewCheckCommand(), path)
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, csvio.MsgParseError)
}

func TestExportCommand(t *testing.T) {
	path := writePeople(t)

	t.Run("json to stdout", func(t *testing.T) {
		out, err := execute(t, NewExportCommand(), path, "--format", "json", "--columns", "name")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 4)
		assert.Equal(t, map[string]any{"name": "Ann"}, rows[0])
	})

	t.Run("csv with search", func(t *testing.T) {
		out, err := execute(t, NewExportCommand(), path, "--search", "paris")
		require.NoError(t, err)
		assert.Equal(t, "name,age,city\nBob,41,Paris\n", out)
	})

	t.Run("parquet needs a file", func(t *testing.T) {
		_, err := execute(t, NewExportCommand(), path, "--format", "parquet")
		assert.ErrorContains(t, err, "needs --out")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, NewExportCommand(), path, "--format", "xlsx")
		assert.Error(t, err)
	})

	t.Run("parquet file round trip", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out", "people.parquet")
		out, err := execute(t, NewExportCommand(), path, "--out", dest)
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Exported 4 rows to "+dest)

		res := workbench.Load(context.Background(), dest, csvio.Options{})
		require.True(t, res.OK(), res.Errors)
		assert.Len(t, res.Rows, 4)
		assert.Equal(t, []string{"name", "age", "city"}, res.Headers)
	})
}
