// services/scheduler.go
package services

import (
	"log"
	"time"

	"coin-rewards-system/models"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the background jobs: a periodic settings cache refresh
// and a watchdog that flags withdrawal requests stuck in Pending for more
// than 48 hours.
type Scheduler struct {
	Settings *SettingsService
	Withdraw *WithdrawalService
}

func NewScheduler(settings *SettingsService, withdraw *WithdrawalService) *Scheduler {
	return &Scheduler{Settings: settings, Withdraw: withdraw}
}

func (s *Scheduler) Start() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 5 minutes: drop the cached settings so admin edits made through
	// another instance get picked up.
	_, _ = sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			s.Settings.Invalidate()
		}),
	)

	// Every hour: flag withdrawal requests stuck in Pending for over 48h.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-48 * time.Hour)
			var stale []models.WithdrawalRequest
			err := s.Withdraw.DB.
				Where("status = ? AND created_at <= ?", models.WithdrawalStatusPending, cutoff).
				Find(&stale).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, req := range stale {
				log.Printf("[Scheduler] withdrawal %s (user %s, amount %.2f) pending since %s", req.ID, req.UserID, req.Amount, req.CreatedAt.Format(time.RFC3339))
			}
		}),
	)
}
