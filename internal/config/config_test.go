package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "projects_data.json", cfg.Data.File)
	require.Equal(t, "backups", cfg.Backups.Dir)
	require.Equal(t, 10, cfg.Backups.Keep)
	require.Equal(t, 1, cfg.Notify.RemindDaysBefore)
	require.Equal(t, 60, cfg.Notify.CheckIntervalMinutes)
	require.True(t, cfg.Notify.DailySummary)
	require.Equal(t, 3, cfg.Filters.RecentDays)
	require.Equal(t, 14, cfg.Filters.StalledDays)
	require.Equal(t, "default", cfg.UI.Theme)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projorg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backups:
  keep: 3
notify:
  remind_days_before: 5
filters:
  stalled_days: 30
ui:
  theme: neon
`), 0o644))
	t.Setenv("PROJORG_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Backups.Keep)
	require.Equal(t, 5, cfg.Notify.RemindDaysBefore)
	require.Equal(t, 30, cfg.Filters.StalledDays)
	require.Equal(t, "neon", cfg.UI.Theme)
	// Untouched keys keep their defaults.
	require.Equal(t, 3, cfg.Filters.RecentDays)
	require.True(t, cfg.Notify.DailySummary)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projorg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backups:\n  keep: 3\n"), 0o644))
	t.Setenv("PROJORG_CONFIG_PATH", path)
	t.Setenv("PROJORG_BACKUP_KEEP", "7")
	t.Setenv("PROJORG_THEME", "mono")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Backups.Keep)
	require.Equal(t, "mono", cfg.UI.Theme)
}

func TestInvalidEnvValue(t *testing.T) {
	t.Setenv("PROJORG_BACKUP_KEEP", "many")
	_, err := Load()
	require.Error(t, err)
}

func TestBackupDirFollowsDataFile(t *testing.T) {
	t.Setenv("PROJORG_DATA_FILE", filepath.Join("some", "dir", "data.json"))
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("some", "dir", "backups"), cfg.Backups.Dir)
}
