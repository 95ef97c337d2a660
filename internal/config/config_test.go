package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, ".bak", cfg.BackupSuffix)
	assert.Equal(t, "latin-1", cfg.FallbackEncoding)
	assert.Equal(t, "vale", cfg.ValeBinary)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfix.yaml")
	content := "workers: 4\nbackup_suffix: .orig\nskip_rules:\n  - AsciiDocDITA.LineBreak\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ".orig", cfg.BackupSuffix)
	assert.True(t, cfg.RuleSkipped("AsciiDocDITA.LineBreak"))
	assert.False(t, cfg.RuleSkipped("AsciiDocDITA.EntityReference"))
	// Untouched keys keep their defaults.
	assert.Equal(t, "latin-1", cfg.FallbackEncoding)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 4\n"), 0644))

	t.Setenv("ADFIX_WORKERS", "2")
	t.Setenv("ADFIX_SKIP_RULES", "A.One,A.Two")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{"A.One", "A.Two"}, cfg.SkipRules)
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [not a number\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

func TestLoad_ValidationRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"negative workers":     "workers: -1\n",
		"excessive workers":    "workers: 100\n",
		"zero size ceiling":    "max_file_size: 0\n",
		"empty backup":         "backup_suffix: \"\"\n",
		"unsupported fallback": "fallback_encoding: utf-16\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "adfix.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestRuleSkipped_OnlyList(t *testing.T) {
	cfg := Default()
	cfg.OnlyRules = []string{"AsciiDocDITA.EntityReference"}

	assert.False(t, cfg.RuleSkipped("AsciiDocDITA.EntityReference"))
	assert.True(t, cfg.RuleSkipped("AsciiDocDITA.LineBreak"))

	// Skip wins over only.
	cfg.SkipRules = []string{"AsciiDocDITA.EntityReference"}
	assert.True(t, cfg.RuleSkipped("AsciiDocDITA.EntityReference"))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfix.yaml")
	cfg := Default()
	cfg.Workers = 3
	cfg.SkipRules = []string{"AsciiDocDITA.TaskStep"}
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEffectiveWorkers(t *testing.T) {
	cfg := Default()
	cfg.Workers = 5
	assert.Equal(t, 5, cfg.EffectiveWorkers())

	cfg.Workers = 0
	got := cfg.EffectiveWorkers()
	assert.GreaterOrEqual(t, got, 1)
	assert.LessOrEqual(t, got, 8)
}
