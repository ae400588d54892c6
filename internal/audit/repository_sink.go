package audit

import (
	"context"
	"log"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/waynenilsen/safeworkout/internal/repository"
)

// RepositorySink writes audit records through an AuditRepository, retrying
// transient failures with exponential backoff before giving up. A dropped
// write is logged, never returned as an error: losing an audit trail entry
// must not block the plan it describes.
type RepositorySink struct {
	repo     *repository.AuditRepository
	diag     *log.Logger
	maxTries uint64
	baseWait time.Duration
}

// NewRepositorySink builds a RepositorySink. diag receives a line for every
// write that is dropped after exhausting its retries; pass nil to use the
// standard logger.
func NewRepositorySink(repo *repository.AuditRepository, diag *log.Logger) *RepositorySink {
	if diag == nil {
		diag = log.Default()
	}
	return &RepositorySink{repo: repo, diag: diag, maxTries: 3, baseWait: 100 * time.Millisecond}
}

// Write persists rec, making up to three attempts with exponential backoff.
// It always returns nil: a permanently failed write is logged and dropped.
func (s *RepositorySink) Write(ctx context.Context, rec Record) error {
	b, err := retry.NewExponential(s.baseWait)
	if err != nil {
		s.diag.Printf("audit: failed to build backoff, dropping record for rule %s: %v", rec.RuleID, err)
		return nil
	}
	// WithMaxRetries counts retries after the first attempt.
	b = retry.WithMaxRetries(s.maxTries-1, b)

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		insertErr := s.repo.Insert(ctx, repository.AuditRecord{
			UserID:      rec.UserID,
			PlanID:      rec.PlanID,
			RuleID:      rec.RuleID,
			Category:    rec.Category,
			ActionType:  rec.ActionType,
			UserMessage: rec.UserMessage,
			OccurredAt:  rec.OccurredAt,
		})
		if insertErr != nil {
			return retry.RetryableError(insertErr)
		}
		return nil
	})
	if err != nil {
		s.diag.Printf("audit: dropping record for rule %s after retries exhausted: %v", rec.RuleID, err)
	}
	return nil
}
