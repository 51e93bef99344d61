package jobs

import (
	"context"
	"log"
	"time"

	"refpool.backend/internal/domain/repositories"
)

// EventRetentionJob prunes pool audit events past the retention window so
// the audit table does not grow unbounded.
type EventRetentionJob struct {
	repo      repositories.PoolEventRepository
	retention time.Duration
	interval  time.Duration
	stop      chan struct{}
}

func NewEventRetentionJob(repo repositories.PoolEventRepository, retention time.Duration) *EventRetentionJob {
	return &EventRetentionJob{
		repo:      repo,
		retention: retention,
		interval:  1 * time.Hour,
		stop:      make(chan struct{}),
	}
}

func (j *EventRetentionJob) Start(ctx context.Context) {
	log.Println("🕐 Starting pool event retention job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Pool event retention job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Pool event retention job stopped")
			return
		case <-ticker.C:
			j.prune(ctx)
		}
	}
}

func (j *EventRetentionJob) Stop() {
	close(j.stop)
}

func (j *EventRetentionJob) prune(ctx context.Context) {
	cutoff := time.Now().Add(-j.retention)
	removed, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Error pruning pool events: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("✅ Pruned %d pool events older than %s", removed, j.retention)
	}
}
