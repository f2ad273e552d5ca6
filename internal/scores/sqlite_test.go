package scores

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecordAndTop(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", SQLiteFileName)
	db, err := OpenSQLite(path, zerolog.Nop())
	require.NoError(t, err)

	for i, name := range []string{"ada", "bob", "eve"} {
		require.NoError(t, db.Record(ctx, Entry{Name: name, Score: int64(i * 50), Points: int64(i * 50), Level: 1, When: "2024-01-01T00:00:00Z"}))
	}
	top, err := db.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "eve", top[0].Name)
	assert.Equal(t, "bob", top[1].Name)
	require.NoError(t, db.Close())

	// reopening must not reapply the migration
	db, err = OpenSQLite(path, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()
	top, err = db.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, top, 3)
}
