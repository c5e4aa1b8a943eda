package services

import (
	"context"
	"time"

	"lead-rag-platform/internal/logger"

	"github.com/go-co-op/gocron"
)

// ReindexScheduler runs periodic full reindexes for every registered company.
type ReindexScheduler struct {
	scheduler *gocron.Scheduler
	leadSvc   *LeadService
}

func NewReindexScheduler(leadSvc *LeadService) *ReindexScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.TagsUnique()

	return &ReindexScheduler{
		scheduler: s,
		leadSvc:   leadSvc,
	}
}

// Start registers the reindex job under the given cron expression and starts
// the scheduler in the background.
func (rs *ReindexScheduler) Start(cronExpr string) error {
	_, err := rs.scheduler.Cron(cronExpr).Tag("reindex-all").Do(rs.reindexAll)
	if err != nil {
		return err
	}
	rs.scheduler.StartAsync()
	logger.Info("scheduled reindex started", "cron", cronExpr)
	return nil
}

func (rs *ReindexScheduler) Stop() {
	rs.scheduler.Stop()
}

func (rs *ReindexScheduler) reindexAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	companies, err := rs.leadSvc.Companies(ctx)
	if err != nil {
		logger.Error("scheduled reindex: failed to list companies", "error", err)
		return
	}

	for _, company := range companies {
		result, err := rs.leadSvc.Reindex(ctx, company)
		if err != nil {
			logger.Error("scheduled reindex failed", "company", company, "error", err)
			continue
		}
		logger.Info("scheduled reindex finished", "company", company, "status", result.Status)
	}
}
