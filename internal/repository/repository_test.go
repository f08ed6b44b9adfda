package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/database"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
)

// testPool connects to REPOSITORY_TEST_DSN or skips. The database is expected
// to be disposable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("REPOSITORY_TEST_DSN")
	if dsn == "" {
		t.Skip("REPOSITORY_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE phases, registrations`)
	require.NoError(t, err)
	return pool
}

func TestPhaseRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPhaseRepository(pool)

	phases := []model.Phase{
		{ID: "final-rift", Number: "INCIDENT 03", Title: "The Final Rift", Position: 3},
		{ID: "neural-link", Number: "INCIDENT 01", Title: "Neural Link", Position: 1},
	}
	require.NoError(t, repo.Upsert(ctx, phases))

	phases[1].Title = "Neural Link v2"
	require.NoError(t, repo.Upsert(ctx, phases))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "neural-link", list[0].ID)
	assert.Equal(t, "Neural Link v2", list[0].Title)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistrationRepositoryRejectsDuplicateEmail(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewRegistrationRepository(pool)

	reg := model.Registration{
		ID:         uuid.New().String(),
		Name:       "Riya",
		Email:      "r@nita.ac.in",
		QuestClass: model.TechTitan,
		Stats:      model.PlayerStats{Innovation: 80, Resilience: 60, Leadership: 70, RiskTaking: 50},
		Bio:        "...",
		AvatarURL:  "https://example.test/avatar",
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := repo.Create(ctx, reg)
	require.NoError(t, err)

	dup := reg
	dup.ID = uuid.New().String()
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.TechTitan, list[0].QuestClass)
	assert.Equal(t, reg.Stats, list[0].Stats)
}
