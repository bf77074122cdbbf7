package repository_test

import (
	"testing"

	"github.com/emgbraker/greencompanions/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMatchCreateAndDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMatchRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")

	m, err := repo.Create(a, b)
	require.NoError(t, err)
	assert.Equal(t, a, m.UserID)
	assert.Equal(t, b, m.MatchedUserID)
	assert.Equal(t, "pending", m.Status)

	// Same direction again hits the unique index.
	_, err = repo.Create(a, b)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The reverse direction is a distinct intent.
	_, err = repo.Create(b, a)
	assert.NoError(t, err)
}

func TestMatchIsMutual(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMatchRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	c := seedMember(t, db, "c@test.nl", "Cas")

	_, err := repo.Create(a, b)
	require.NoError(t, err)

	// One direction is not a match.
	mutual, err := repo.IsMutual(a, b)
	require.NoError(t, err)
	assert.False(t, mutual)

	_, err = repo.Create(b, a)
	require.NoError(t, err)

	// Symmetric once both directions exist.
	mutual, err = repo.IsMutual(a, b)
	require.NoError(t, err)
	assert.True(t, mutual)
	mutual, err = repo.IsMutual(b, a)
	require.NoError(t, err)
	assert.True(t, mutual)

	// Unrelated pair stays unmatched.
	mutual, err = repo.IsMutual(a, c)
	require.NoError(t, err)
	assert.False(t, mutual)
}

func TestMatchHasIntentAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMatchRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")

	has, err := repo.HasIntent(a, b)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = repo.Create(a, b)
	require.NoError(t, err)

	has, err = repo.HasIntent(a, b)
	require.NoError(t, err)
	assert.True(t, has)

	// Directional: b never liked a.
	has, err = repo.HasIntent(b, a)
	require.NoError(t, err)
	assert.False(t, has)

	list, err := repo.ListPendingByUserID(a)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b, list[0].MatchedUserID)
}
