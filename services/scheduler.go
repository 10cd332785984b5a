// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExpiryScheduler sweeps the boards in the background so overdue
// postings and tips don't linger as open.
func (s *BoardService) StartExpiryScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: expire overdue jobs and intern tips
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := s.ExpireOverdue(time.Now()); err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
			}
		}),
	)
}
