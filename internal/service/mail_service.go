package service

import (
	"context"
	"fmt"
	"time"

	"github.com/emgbraker/greencompanions/config"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/pkg/resend"
)

// MailService sends transactional email through Resend. When no API key is
// configured every send is a logged no-op, so local environments work
// without credentials.
type MailService struct {
	cfg    *config.ResendConfig
	client *resend.Client
}

func NewMailService(cfg *config.ResendConfig) *MailService {
	return &MailService{cfg: cfg, client: resend.New(cfg.APIKey)}
}

// NewMailServiceWithClient is used by tests with a stub-backed client.
func NewMailServiceWithClient(cfg *config.ResendConfig, client *resend.Client) *MailService {
	return &MailService{cfg: cfg, client: client}
}

// SendWelcome greets a freshly registered member.
func (s *MailService) SendWelcome(ctx context.Context, to, firstName string) error {
	if !s.client.Enabled() {
		logger.Debug("mail disabled, skipping welcome", "to", to)
		return nil
	}
	html := fmt.Sprintf(`<h1>Welkom bij GreenConnect, %s!</h1>
<p>Leuk dat je erbij bent. Vul je profiel aan, zoek golfers bij jou in de buurt en sla je eerste balletje samen.</p>
<p>Veel plezier op de green!</p>
<p>Het GreenConnect team</p>`, firstName)
	_, err := s.client.Send(ctx, resend.SendRequest{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: "Welkom bij GreenConnect",
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	logger.Info("welcome mail sent", "to", to)
	return nil
}

// SendMembershipExpiry warns a member their paid membership ends soon.
func (s *MailService) SendMembershipExpiry(ctx context.Context, to, firstName, membershipType string, endDate time.Time) error {
	if !s.client.Enabled() {
		logger.Debug("mail disabled, skipping expiry notice", "to", to)
		return nil
	}
	html := fmt.Sprintf(`<h1>Je %s lidmaatschap verloopt binnenkort</h1>
<p>Beste %s,</p>
<p>Je lidmaatschap verloopt op %s. Verleng op tijd zodat je toegang houdt tot alle functies van GreenConnect.</p>
<p>Het GreenConnect team</p>`, membershipType, firstName, endDate.Format("2 January 2006"))
	_, err := s.client.Send(ctx, resend.SendRequest{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: "Je GreenConnect lidmaatschap verloopt binnenkort",
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("send expiry mail: %w", err)
	}
	logger.Info("expiry mail sent", "to", to)
	return nil
}
