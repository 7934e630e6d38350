package service

import (
	"context"
	"fmt"

	"tw-stock-insight/internal/dashboard/repository"
	"tw-stock-insight/pkg/logger"
	"tw-stock-insight/pkg/utils"

	"github.com/robfig/cron/v3"
)

// FeedRefresher keeps the cached sentiment feed warm on a cron schedule.
type FeedRefresher struct {
	log      *logger.Logger
	feed     repository.SentimentFeedRepository
	schedule string
	cron     *cron.Cron
}

// NewFeedRefresher parses schedule (standard five-field cron or a descriptor
// such as "@every 30m"). Schedules run in Taipei time.
func NewFeedRefresher(log *logger.Logger, feed repository.SentimentFeedRepository, schedule string) (*FeedRefresher, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("invalid feed refresh schedule %q: %w", schedule, err)
	}
	return &FeedRefresher{
		log:      log,
		feed:     feed,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser), cron.WithLocation(utils.TaipeiLocation())),
	}, nil
}

// Start schedules the refresh job and blocks until ctx is done.
func (r *FeedRefresher) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.schedule, func() { r.RefreshNow(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule feed refresh: %w", err)
	}
	r.cron.Start()
	r.log.Info("Sentiment feed refresher started", logger.StringField("schedule", r.schedule))

	<-ctx.Done()
	<-r.cron.Stop().Done()
	r.log.Info("Sentiment feed refresher stopped")
	return nil
}

// RefreshNow reloads the feed once. Failures are logged and the previous
// cached copy stays in place.
func (r *FeedRefresher) RefreshNow(ctx context.Context) {
	if !utils.ShouldContinue(ctx, r.log) {
		return
	}
	items, err := r.feed.Refresh(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "Sentiment feed refresh failed", logger.ErrorField(err))
		return
	}
	r.log.InfoContext(ctx, "Sentiment feed refreshed", logger.IntField("items", len(items)))
}
