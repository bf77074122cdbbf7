package repository_test

import (
	"testing"
	"time"

	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSearchExcludesViewerAndBlocked(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDirectoryRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	c := seedMember(t, db, "c@test.nl", "Cas")

	require.NoError(t, profileRepo.Block(c, "nep profiel"))

	members, err := repo.SearchMembers(a, repository.MemberFilters{})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, b, members[0].UserID)
}

func TestSearchNameQueryCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDirectoryRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	seedMember(t, db, "c@test.nl", "Cas")

	members, err := repo.SearchMembers(a, repository.MemberFilters{Query: "bRaM"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, b, members[0].UserID)

	// Last name matches too; every seeded member is "Tester".
	members, err = repo.SearchMembers(a, repository.MemberFilters{Query: "tester"})
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestSearchEqualityFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDirectoryRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	c := seedMember(t, db, "c@test.nl", "Cas")

	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", b).
		Updates(map[string]interface{}{"province": "Zeeland", "handicap": "0-10"}).Error)
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", c).
		Updates(map[string]interface{}{"gender": "female", "seeking_relationship": true}).Error)

	members, err := repo.SearchMembers(a, repository.MemberFilters{Province: "Zeeland"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, b, members[0].UserID)

	members, err = repo.SearchMembers(a, repository.MemberFilters{Handicap: "0-10"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, b, members[0].UserID)

	seeking := true
	members, err = repo.SearchMembers(a, repository.MemberFilters{SeekingRelationship: &seeking})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, c, members[0].UserID)
}

func TestSearchAgeRange(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDirectoryRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")
	c := seedMember(t, db, "c@test.nl", "Cas")
	d := seedMember(t, db, "d@test.nl", "Daan")

	now := time.Now()
	young := now.AddDate(-25, 0, -1)
	old := now.AddDate(-62, 0, -1)
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", b).Update("birth_date", young).Error)
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", c).Update("birth_date", old).Error)
	// d has no birth date at all.
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", d).Update("birth_date", gorm.Expr("NULL")).Error)

	members, err := repo.SearchMembers(a, repository.MemberFilters{AgeMin: 20, AgeMax: 30})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, b, members[0].UserID)
	assert.Equal(t, 25, members[0].Age)

	members, err = repo.SearchMembers(a, repository.MemberFilters{AgeMin: 60})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, c, members[0].UserID)

	// Unknown birth date is excluded only when an age filter is active.
	members, err = repo.SearchMembers(a, repository.MemberFilters{})
	require.NoError(t, err)
	assert.Len(t, members, 3)
}

func TestGetMemberHidesBlocked(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDirectoryRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	a := seedMember(t, db, "a@test.nl", "Anna")
	b := seedMember(t, db, "b@test.nl", "Bram")

	m, err := repo.GetMember(a, b)
	require.NoError(t, err)
	assert.Equal(t, "Bram", m.FirstName)

	require.NoError(t, profileRepo.Block(b, "spam"))
	_, err = repo.GetMember(a, b)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
