package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
[database]
host = "localhost"
dbname = "schedule"
user = "postgres"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimal)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 30, cfg.Schedule.DefaultSlotMinutes)
	assert.Equal(t, 60, cfg.Schedule.DefaultAdvanceBookingDays)
	assert.Equal(t, "UTC", cfg.Schedule.Location().String())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=schedule sslmode=disable", cfg.Database.DSN())
}

func TestParse_Timezone(t *testing.T) {
	cfg, err := Parse(minimal + `
[schedule]
timezone = "Europe/Moscow"
default_slot_minutes = 15
`)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", cfg.Schedule.Location().String())
	assert.Equal(t, 15, cfg.Schedule.DefaultSlotMinutes)

	_, err = Parse(minimal + `
[schedule]
timezone = "Mars/Olympus"
`)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"no host":        `[database]` + "\n" + `dbname = "x"`,
		"bad level":      minimal + "[logs]\nlevel = \"trace\"\n",
		"slot too small": minimal + "[schedule]\ndefault_slot_minutes = 1\n",
		"bad port":       minimal + "[server]\nhttp_port = 70000\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "schedule", cfg.Database.DBName)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
