package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add fundraisers table", "add_fundraisers_table"},
		{"Add-Fundraisers-Table", "add_fundraisers_table"},
		{"ADD_FUNDRAISERS_TABLE", "add_fundraisers_table"},
		{"add__donations__table", "add_donations_table"},
		{"Add Donations 123", "add_donations_123"},
		{"create-payout-config", "create_payout_config"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add fundraisers table", "Create the fundraisers table")
	require.NoError(t, err)
	require.NotNil(t, mf)

	// version is a 14-digit YYYYMMDDHHMMSS timestamp
	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add fundraisers table")
	assert.Contains(t, string(upContent), "Create the fundraisers table")
	assert.Contains(t, string(upContent), "Write your UP migration SQL here")

	downContent, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
	assert.Contains(t, string(downContent), "Write your DOWN migration SQL here")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	mf, err := CreateMigration(nested, "init", "initial schema")
	require.NoError(t, err)
	require.NotNil(t, mf)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	pairs := []string{
		"000001_init_schema",
		"000002_add_fundraisers",
		"000003_add_donations",
	}
	for _, base := range pairs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, base+".up.sql"), []byte("-- up"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, base+".down.sql"), []byte("-- down"), 0644))
	}

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, pairs, names)
}

func TestListMigrations_EmptyDirectory(t *testing.T) {
	names, err := ListMigrations(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListMigrations_SkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"000001_init.up.sql",
		"000001_init.down.sql",
		"README.md",
		"config.yaml",
		".gitkeep",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init"}, names)
}
