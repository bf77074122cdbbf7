package service_test

import (
	"testing"
	"time"

	"github.com/emgbraker/greencompanions/config"
	"github.com/emgbraker/greencompanions/internal/auth"
	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "greenconnect-test",
		},
	}
}

func newAuthService(t *testing.T) (*service.AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	mail := service.NewMailService(&config.ResendConfig{}) // no API key: sends are no-ops
	svc := service.NewAuthService(
		testConfig(),
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		repository.NewMembershipRepository(db),
		mail,
	)
	return svc, db
}

func validInput() service.RegisterInput {
	return service.RegisterInput{
		Email:     "Nieuw@Test.NL",
		Password:  "sterkwachtwoord",
		FirstName: "Noor",
		LastName:  "de Vries",
		BirthDate: time.Date(1980, 4, 2, 0, 0, 0, 0, time.UTC),
		City:      "Breda",
		Province:  "Noord-Brabant",
		Handicap:  "21-30",
	}
}

func TestRegisterCreatesUserProfileAndFreeMembership(t *testing.T) {
	svc, db := newAuthService(t)

	u, access, refresh, err := svc.Register(validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "nieuw@test.nl", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	require.NotNil(t, u.Profile)
	assert.Equal(t, "Noor", u.Profile.FirstName)

	var m models.Membership
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&m).Error)
	assert.Equal(t, domain.MembershipFree, m.Type)
	assert.Nil(t, m.EndDate)

	// The issued access token round-trips with our claims.
	cfg := testConfig()
	claims, err := auth.ParseAccessToken(&cfg.JWT, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	in := validInput()
	in.Password = "kort"
	_, _, _, err := svc.Register(in)
	assert.ErrorIs(t, err, service.ErrWeakPassword)

	in = validInput()
	in.BirthDate = time.Now().AddDate(-17, 0, 0)
	_, _, _, err = svc.Register(in)
	assert.ErrorIs(t, err, service.ErrAgeRequired)

	in = validInput()
	in.Province = "Vlaanderen"
	_, _, _, err = svc.Register(in)
	assert.ErrorIs(t, err, service.ErrInvalidProvince)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, _, err := svc.Register(validInput())
	require.NoError(t, err)

	// Same address, different casing.
	in := validInput()
	in.Email = "NIEUW@test.nl"
	_, _, _, err = svc.Register(in)
	assert.ErrorIs(t, err, service.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, db := newAuthService(t)
	u, _, _, err := svc.Register(validInput())
	require.NoError(t, err)

	got, access, _, err := svc.Login("nieuw@test.nl", "sterkwachtwoord")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, access)

	_, _, _, err = svc.Login("nieuw@test.nl", "verkeerd")
	assert.ErrorIs(t, err, service.ErrInvalidCreds)

	_, _, _, err = svc.Login("bestaat@niet.nl", "sterkwachtwoord")
	assert.ErrorIs(t, err, service.ErrInvalidCreds)

	// Blocked members are locked out.
	require.NoError(t, repository.NewProfileRepository(db).Block(u.ID, "fraude"))
	_, _, _, err = svc.Login("nieuw@test.nl", "sterkwachtwoord")
	assert.ErrorIs(t, err, service.ErrAccountBlocked)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	_, _, refresh, err := svc.Register(validInput())
	require.NoError(t, err)

	access2, refresh2, err := svc.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEmpty(t, refresh2)

	_, _, err = svc.Refresh("niet-een-token")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	u, _, _, err := svc.Register(validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(u.ID, "verkeerd", "nieuwwachtwoord"), service.ErrInvalidCreds)
	assert.ErrorIs(t, svc.ChangePassword(u.ID, "sterkwachtwoord", "kort"), service.ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(u.ID, "sterkwachtwoord", "nieuwwachtwoord"))
	_, _, _, err = svc.Login("nieuw@test.nl", "nieuwwachtwoord")
	assert.NoError(t, err)
	_, _, _, err = svc.Login("nieuw@test.nl", "sterkwachtwoord")
	assert.ErrorIs(t, err, service.ErrInvalidCreds)
}

func TestLoginWithGoogleLinksExistingAccount(t *testing.T) {
	svc, _ := newAuthService(t)
	u, _, _, err := svc.Register(validInput())
	require.NoError(t, err)

	got, access, _, isNew, err := svc.LoginWithGoogle("google-123", "nieuw@test.nl", "Noor", "de Vries", "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, access)

	// Subsequent logins resolve by Google ID directly.
	got2, _, _, isNew, err := svc.LoginWithGoogle("google-123", "", "", "", "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, u.ID, got2.ID)
}

func TestLoginWithGoogleCreatesNewAccount(t *testing.T) {
	svc, db := newAuthService(t)

	u, _, _, isNew, err := svc.LoginWithGoogle("google-999", "vers@test.nl", "Vera", "Vers", "https://img/avatar.png")
	require.NoError(t, err)
	assert.True(t, isNew)
	require.NotNil(t, u.Profile)
	assert.Equal(t, "Vera", u.Profile.FirstName)
	assert.Equal(t, "https://img/avatar.png", u.Profile.AvatarURL)

	var m models.Membership
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&m).Error)
	assert.Equal(t, domain.MembershipFree, m.Type)
}
