package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(names), 2)

	for i, n := range names {
		assert.True(t, strings.HasSuffix(n, ".sql"), "migration %q is not a .sql file", n)
		if i > 0 {
			assert.Less(t, names[i-1], n, "migrations out of order")
		}
	}
}

func TestMigrations_DoNotStoreColors(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	for _, n := range names {
		b, err := migrationsFS.ReadFile("migrations/" + n)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToLower(string(b)), "color", "migration %s persists colors", n)
	}
}
