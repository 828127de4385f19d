package jobs

import (
	"context"
	"log"
	"time"
)

// ExpiredTokenDeactivator is the slice of the student repository the job needs
type ExpiredTokenDeactivator interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenExpiryJob deactivates students whose token expiry has passed, so
// revocation does not depend on the student attempting another login.
type TokenExpiryJob struct {
	repo     ExpiredTokenDeactivator
	interval time.Duration
	stop     chan struct{}
}

func NewTokenExpiryJob(repo ExpiredTokenDeactivator, interval time.Duration) *TokenExpiryJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &TokenExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *TokenExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting token expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Token expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Token expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *TokenExpiryJob) Stop() {
	close(j.stop)
}

func (j *TokenExpiryJob) sweep(ctx context.Context) {
	count, err := j.repo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Error deactivating expired tokens: %v", err)
		return
	}
	if count > 0 {
		log.Printf("✅ Deactivated %d expired student tokens", count)
	}
}
