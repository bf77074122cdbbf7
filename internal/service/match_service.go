package service

import (
	"errors"
	"fmt"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/models"
	"github.com/emgbraker/greencompanions/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrSelfLike        = errors.New("cannot like yourself")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileBlocked  = errors.New("profile is blocked")
	ErrNotMutualMatch  = errors.New("no mutual match with this member")
)

// LikeOutcome distinguishes a fresh intent from a repeat. A repeat is an
// informational outcome, not an error.
type LikeOutcome string

const (
	LikeCreated       LikeOutcome = "created"
	LikeAlreadyExists LikeOutcome = "already_exists"
)

// LikeResult tells the caller what the like produced. Mutual flips true the
// moment the reverse intent already existed.
type LikeResult struct {
	Outcome LikeOutcome   `json:"outcome"`
	Match   *models.Match `json:"match,omitempty"`
	Mutual  bool          `json:"mutual"`
}

type MatchService struct {
	matchRepo   *repository.MatchRepository
	profileRepo *repository.ProfileRepository
	notifier    *NotificationService
}

func NewMatchService(matchRepo *repository.MatchRepository, profileRepo *repository.ProfileRepository, notifier *NotificationService) *MatchService {
	return &MatchService{matchRepo: matchRepo, profileRepo: profileRepo, notifier: notifier}
}

// Like records actor→target interest. Blocked members can neither like nor
// be liked. A repeated like yields LikeAlreadyExists whether the duplicate is
// caught by the pre-check or by the unique index under a race. When the
// reverse intent already exists both parties get a match notification.
func (s *MatchService) Like(actorID, targetID uint) (*LikeResult, error) {
	if actorID == targetID {
		return nil, ErrSelfLike
	}
	actor, err := s.profileRepo.GetByUserID(actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor profile: %w", err)
	}
	if actor.Blocked {
		return nil, ErrProfileBlocked
	}
	target, err := s.profileRepo.GetByUserID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if target.Blocked {
		return nil, ErrProfileBlocked
	}

	exists, err := s.matchRepo.HasIntent(actorID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return &LikeResult{Outcome: LikeAlreadyExists}, nil
	}

	m, err := s.matchRepo.Create(actorID, targetID)
	if err != nil {
		// Two concurrent first likes can both pass the pre-check; the
		// unique index catches the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &LikeResult{Outcome: LikeAlreadyExists}, nil
		}
		return nil, err
	}

	mutual, err := s.matchRepo.IsMutual(actorID, targetID)
	if err != nil {
		return nil, err
	}
	if mutual {
		s.notifier.NotifyMatch(actorID, target.FirstName)
		s.notifier.NotifyMatch(targetID, actor.FirstName)
		logger.Info("mutual match", "user_a", actorID, "user_b", targetID)
	}
	return &LikeResult{Outcome: LikeCreated, Match: m, Mutual: mutual}, nil
}

// Likes returns the caller's outgoing pending intents.
func (s *MatchService) Likes(userID uint) ([]models.Match, error) {
	return s.matchRepo.ListPendingByUserID(userID)
}

// RequireMutual errors unless the two users form a mutual match. Used as
// the access gate for messaging.
func (s *MatchService) RequireMutual(a, b uint) error {
	mutual, err := s.matchRepo.IsMutual(a, b)
	if err != nil {
		return err
	}
	if !mutual {
		return ErrNotMutualMatch
	}
	return nil
}
