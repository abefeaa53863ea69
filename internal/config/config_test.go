package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Sort != DefaultSort {
		t.Errorf("expected sort %q, got %q", DefaultSort, cfg.Sort)
	}
	if cfg.Errors != DefaultErrors {
		t.Errorf("expected errors %q, got %q", DefaultErrors, cfg.Errors)
	}
	if cfg.Workers != nil {
		t.Errorf("expected auto workers, got %d", *cfg.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_Full(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, `
roots = ["~/src", "/srv/git"]
workers = 0
fetch = true
sort = "author"
reverse = true
dirty_only = true
columns = "-ident,mtime"
errors = "full"
activity_scope = "all"

[theme]
name = "nord"
mode = "dark"
accent = "#123456"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(home, "src"), "/srv/git"}, cfg.Roots)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 0, *cfg.Workers)
	assert.True(t, cfg.Fetch)
	assert.Equal(t, "author", cfg.Sort)
	assert.True(t, cfg.Reverse)
	assert.True(t, cfg.DirtyOnly)
	assert.Equal(t, "-ident,mtime", cfg.Columns)
	assert.Equal(t, "full", cfg.Errors)
	assert.Equal(t, "all", cfg.ActivityScope)
	assert.Equal(t, ThemeConfig{Name: "nord", Mode: "dark", Accent: "#123456"}, cfg.Theme)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "fetch = true\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Fetch)
	assert.Equal(t, DefaultSort, cfg.Sort)
	assert.Equal(t, DefaultErrors, cfg.Errors)
	assert.Equal(t, DefaultActivityScope, cfg.ActivityScope)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "sort = \n", "failed to parse"},
		{"unknown key", "sortt = \"mtime\"\n", `unknown key "sortt"`},
		{"bad sort", "sort = \"size\"\n", `invalid sort "size"`},
		{"bad workers", "workers = -4\n", "invalid workers -4"},
		{"empty root", "roots = [\"\"]\n", "roots[0] is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	workers := -2
	cfg := Config{
		Workers: &workers,
		Sort:    "size",
		Errors:  "loud",
		Theme:   ThemeConfig{Mode: "sepia"},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
	assert.Contains(t, err.Error(), "4 problems:")
	assert.Contains(t, err.Error(), `invalid theme.mode "sepia": must be "auto", "light", or "dark"`)
}

func TestValidate_CaseInsensitiveEnums(t *testing.T) {
	cfg := Config{Sort: "MTime", Errors: "Hide", ActivityScope: "ALL"}
	assert.NoError(t, cfg.Validate())
}

func TestFormatOptions(t *testing.T) {
	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %s, want %s", tt.opts, got, tt.want)
		}
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/gitoverit.toml")

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/etc/gitoverit.toml", path)
}

func TestLoad_UsesEnvPath(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t, "dirty_only = true\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DirtyOnly)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/src", filepath.Join(home, "src")},
		{"/abs", "/abs"},
		{"rel/dir", "rel/dir"},
		{"~user/x", "~user/x"},
	}
	for _, tt := range tests {
		got, err := expandPath(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "expandPath(%q)", tt.in)
	}
}
