//go:build unit

package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/infrastructure/repositories/sqlite"
)

func TestHistoryRepository(t *testing.T) {
	t.Parallel()

	t.Run("should list records newest revision first", func(t *testing.T) {
		t.Parallel()
		// given
		repo, err := sqlite.NewHistoryRepository(t.TempDir())
		require.NoError(t, err)
		defer repo.Close()
		ctx := context.Background()

		// when
		require.NoError(t, repo.Insert(ctx, []entities.ReleaseHistoryRecord{
			{Revision: 7, Summary: "seven"},
			{Revision: 12, Summary: "twelve"},
			{Revision: 9, Summary: "nine"},
		}))
		records, listErr := repo.List(ctx)

		// then
		require.NoError(t, listErr)
		require.Len(t, records, 3)
		assert.Equal(t, 12, records[0].Revision)
		assert.Equal(t, 9, records[1].Revision)
		assert.Equal(t, 7, records[2].Revision)
		assert.Equal(t, "twelve", records[0].Summary)
		assert.False(t, records[0].Released())
	})

	t.Run("should set and clear the release time of stored revisions only", func(t *testing.T) {
		t.Parallel()
		// given
		dir := t.TempDir()
		repo, err := sqlite.NewHistoryRepository(dir)
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, repo.Insert(ctx, []entities.ReleaseHistoryRecord{{Revision: 3}, {Revision: 4}}))
		at := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

		// when
		require.NoError(t, repo.SetReleasedAt(ctx, []int{3, 99}, &at))
		require.NoError(t, repo.Close())
		reopened, reopenErr := sqlite.NewHistoryRepository(dir)
		require.NoError(t, reopenErr)
		defer reopened.Close()
		records, listErr := reopened.List(ctx)

		// then
		require.NoError(t, listErr)
		require.Len(t, records, 2)
		assert.False(t, records[0].Released())
		require.True(t, records[1].Released())
		assert.True(t, at.Equal(*records[1].ReleasedAt))

		// when
		require.NoError(t, reopened.SetReleasedAt(ctx, []int{3}, nil))
		records, listErr = reopened.List(ctx)

		// then
		require.NoError(t, listErr)
		assert.False(t, records[1].Released())
	})
}
