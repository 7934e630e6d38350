package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tw-stock-insight/pkg/logger"
	"tw-stock-insight/pkg/telegram"
	"tw-stock-insight/pkg/utils"
)

// ErrNoDashboard is returned when the session has no ready dashboard to send.
var ErrNoDashboard = errors.New("no ready dashboard to send")

// DigestService sends the current dashboard to a Telegram chat.
type DigestService interface {
	Send(ctx context.Context) (int, error)
}

type digestService struct {
	log      *logger.Logger
	session  *Session
	notifier telegram.Notifier
	now      func() time.Time
}

// NewDigestService creates a new DigestService. A nil notifier makes every
// Send fail with telegram.ErrNotConfigured.
func NewDigestService(log *logger.Logger, session *Session, notifier telegram.Notifier) DigestService {
	return &digestService{
		log:      log,
		session:  session,
		notifier: notifier,
		now:      utils.TimeNowTaipei,
	}
}

// Send formats the session's ready dashboard and returns the number of
// messages delivered.
func (s *digestService) Send(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, telegram.ErrNotConfigured
	}

	state := s.session.Current()
	dashboard, ok := state.Dashboard()
	if !ok {
		return 0, fmt.Errorf("%w: session is %s", ErrNoDashboard, state.Phase())
	}

	messages := telegram.FormatDashboardDigest(dashboard, s.now())
	for i, msg := range messages {
		if !utils.ShouldContinue(ctx, s.log) {
			return i, ctx.Err()
		}
		if err := s.notifier.SendMessage(msg); err != nil {
			s.log.ErrorContext(ctx, "Failed to send digest",
				logger.StringField("ticker", state.Ticker()),
				logger.IntField("part", i+1),
				logger.ErrorField(err),
			)
			return i, fmt.Errorf("failed to send digest part %d: %w", i+1, err)
		}
	}

	s.log.InfoContext(ctx, "Digest sent",
		logger.StringField("ticker", state.Ticker()),
		logger.IntField("parts", len(messages)),
	)
	return len(messages), nil
}
