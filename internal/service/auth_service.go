package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/emgbraker/greencompanions/config"
	"github.com/emgbraker/greencompanions/internal/auth"
	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidCreds    = errors.New("invalid email or password")
	ErrAgeRequired     = errors.New("must be 18 or older")
	ErrWeakPassword    = errors.New("password must be at least 8 characters")
	ErrInvalidProvince = errors.New("unknown province")
	ErrAccountBlocked  = errors.New("account is blocked")
)

// RegisterInput is everything a new member supplies at signup. Profile
// fields beyond name are optional and can be completed later.
type RegisterInput struct {
	Email               string
	Password            string
	FirstName           string
	LastName            string
	BirthDate           time.Time
	City                string
	Province            string
	Gender              string
	Handicap            string
	GolfClub            string
	Bio                 string
	SeekingRelationship bool
}

type AuthService struct {
	cfg            *config.Config
	userRepo       *repository.UserRepository
	profileRepo    *repository.ProfileRepository
	membershipRepo *repository.MembershipRepository
	mail           *MailService
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, membershipRepo *repository.MembershipRepository, mail *MailService) *AuthService {
	return &AuthService{
		cfg:            cfg,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		membershipRepo: membershipRepo,
		mail:           mail,
	}
}

// Register creates a user with its profile and a free membership, then
// returns the user plus an access/refresh token pair. The welcome mail goes
// out asynchronously; a mail failure never fails the signup.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if len(in.Password) < 8 {
		return nil, "", "", ErrWeakPassword
	}
	age := time.Now().Year() - in.BirthDate.Year()
	if time.Now().YearDay() < in.BirthDate.YearDay() {
		age--
	}
	if in.BirthDate.IsZero() || age < 18 {
		return nil, "", "", ErrAgeRequired
	}
	if in.Province != "" && !domain.ValidProvince(in.Province) {
		return nil, "", "", ErrInvalidProvince
	}
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.userRepo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", "", ErrEmailExists
		}
		return nil, "", "", err
	}
	birth := in.BirthDate
	p := &models.Profile{
		UserID:              u.ID,
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		BirthDate:           &birth,
		City:                in.City,
		Province:            in.Province,
		Gender:              in.Gender,
		Handicap:            in.Handicap,
		GolfClub:            in.GolfClub,
		Bio:                 in.Bio,
		SeekingRelationship: in.SeekingRelationship,
	}
	if err := s.profileRepo.Create(p); err != nil {
		return nil, "", "", err
	}
	u.Profile = p
	if err := s.membershipRepo.Create(&models.Membership{
		UserID:    u.ID,
		Type:      domain.MembershipFree,
		Status:    domain.MembershipStatusActive,
		StartDate: time.Now(),
	}); err != nil {
		return nil, "", "", err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mail.SendWelcome(ctx, u.Email, p.FirstName); err != nil {
			logger.Warn("welcome mail failed", "user_id", u.ID, "error", err)
		}
	}()

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

// Login verifies credentials and returns the user with a fresh token pair.
// Blocked members cannot log in.
func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if u.Profile != nil && u.Profile.Blocked {
		return nil, "", "", ErrAccountBlocked
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LoginWithGoogle finds or creates a user for a verified Google identity and
// returns user, tokens, and whether the account is new.
func (s *AuthService) LoginWithGoogle(googleID, email, firstName, lastName, avatarURL string) (*models.User, string, string, bool, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil {
		if u.Profile != nil && u.Profile.Blocked {
			return nil, "", "", false, ErrAccountBlocked
		}
		access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
		if err != nil {
			return nil, "", "", false, err
		}
		refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
		if err != nil {
			return nil, "", "", false, err
		}
		return u, access, refresh, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", false, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.userRepo.GetByEmail(email)
	if err == nil {
		// Link Google to the existing account.
		gid := googleID
		existing.GoogleID = &gid
		if err := s.userRepo.Update(existing); err != nil {
			return nil, "", "", false, err
		}
		access, err := auth.GenerateAccessToken(&s.cfg.JWT, existing.ID, existing.Email, existing.Role)
		if err != nil {
			return nil, "", "", false, err
		}
		refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, existing.ID)
		if err != nil {
			return nil, "", "", false, err
		}
		return existing, access, refresh, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", false, err
	}

	gid := googleID
	u = &models.User{Email: email, Role: domain.RoleUser, GoogleID: &gid}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", false, err
	}
	p := &models.Profile{
		UserID:    u.ID,
		FirstName: firstName,
		LastName:  lastName,
		AvatarURL: avatarURL,
	}
	if err := s.profileRepo.Create(p); err != nil {
		return nil, "", "", false, err
	}
	u.Profile = p
	if err := s.membershipRepo.Create(&models.Membership{
		UserID:    u.ID,
		Type:      domain.MembershipFree,
		Status:    domain.MembershipStatusActive,
		StartDate: time.Now(),
	}); err != nil {
		return nil, "", "", false, err
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mail.SendWelcome(ctx, u.Email, firstName); err != nil {
			logger.Warn("welcome mail failed", "user_id", u.ID, "error", err)
		}
	}()
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", false, err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", false, err
	}
	return u, access, refresh, true, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	if u.Profile != nil && u.Profile.Blocked {
		return "", "", ErrAccountBlocked
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	if len(next) < 8 {
		return ErrWeakPassword
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}
