package memberships

import (
	"context"
	"time"

	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/internal/service"
)

// Mailer is the slice of the mail layer the job needs.
type Mailer interface {
	SendMembershipExpiry(ctx context.Context, to, firstName, membershipType string, endDate time.Time) error
}

// Runner periodically warns members whose paid membership ends within the
// notice window and expires memberships past their end date. Each
// membership is warned once; the notification_sent flag guards repeats
// across runs.
type Runner struct {
	repo       *repository.MembershipRepository
	mailer     Mailer
	notifier   *service.NotificationService
	interval   time.Duration
	noticeDays int
}

func NewRunner(repo *repository.MembershipRepository, mailer Mailer, notifier *service.NotificationService, interval time.Duration, noticeDays int) *Runner {
	return &Runner{
		repo:       repo,
		mailer:     mailer,
		notifier:   notifier,
		interval:   interval,
		noticeDays: noticeDays,
	}
}

// Run checks immediately, then on every tick until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	r.CheckOnce(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.CheckOnce(ctx)
		}
	}
}

// CheckOnce performs one sweep: notify upcoming expiries, then expire
// overdue rows. A failed email leaves notification_sent unset so the next
// sweep retries it.
func (r *Runner) CheckOnce(ctx context.Context) {
	now := time.Now()
	window := time.Duration(r.noticeDays) * 24 * time.Hour

	rows, err := r.repo.ListExpiringWithin(now, window)
	if err != nil {
		logger.Error("membership sweep failed", "error", err)
		return
	}
	for _, row := range rows {
		if err := r.mailer.SendMembershipExpiry(ctx, row.Email, row.FirstName, row.Type, row.EndDate); err != nil {
			logger.Warn("expiry mail failed, will retry next sweep",
				"membership_id", row.MembershipID, "error", err)
			continue
		}
		r.notifier.NotifyMembershipExpiry(row.UserID, row.Type)
		if err := r.repo.MarkNotified(row.MembershipID); err != nil {
			logger.Error("mark notified failed", "membership_id", row.MembershipID, "error", err)
		}
	}

	expired, err := r.repo.ExpireOverdue(now)
	if err != nil {
		logger.Error("expire overdue failed", "error", err)
		return
	}
	if len(rows) > 0 || expired > 0 {
		logger.Info("membership sweep done", "notified", len(rows), "expired", expired)
	}
}
