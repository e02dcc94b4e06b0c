package migration

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add vehicles table", "add_vehicles_table"},
		{"Add-Vehicles-Table", "add_vehicles_table"},
		{"ADD_VEHICLES_TABLE", "add_vehicles_table"},
		{"add__double__separators", "add_double_separators"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	tmpDir := t.TempDir()

	mf, err := CreateMigration(tmpDir, "add vehicles table")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)
	assert.Contains(t, upBase, "add_vehicles_table")

	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
}

func TestListMigrations(t *testing.T) {
	tmpDir := t.TempDir()

	migrations, err := ListMigrations(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, migrations)

	_, err = CreateMigration(tmpDir, "first")
	require.NoError(t, err)

	migrations, err = ListMigrations(tmpDir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Contains(t, migrations[0], "first")

	missing, err := ListMigrations(filepath.Join(tmpDir, "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}
