package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crimson-site/crimson-backend/config"
	"github.com/crimson-site/crimson-backend/internal/projects/repository"
)

type Scheduler struct {
	repo *repository.ProjectRepository
	cfg  config.RetentionConfig
	cron *cron.Cron
}

func NewScheduler(repo *repository.ProjectRepository, cfg config.RetentionConfig) *Scheduler {
	return &Scheduler{repo: repo, cfg: cfg}
}

// Start schedules the retention sweep. Soft-deleted projects older than
// the configured retention window are permanently purged.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.cfg.Schedule, func() {
		s.runSweep()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Printf("Retention sweeper started (schedule %q, keep %d days)", s.cfg.Schedule, s.cfg.Days)
	s.cron = c
	c.Start()
}

// Stop halts the scheduler; in-flight sweeps run to completion.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	olderThan := time.Duration(s.cfg.Days) * 24 * time.Hour
	n, err := s.repo.PurgeDeleted(ctx, olderThan)
	if err != nil {
		log.Printf("Retention sweep failed: %v", err)
		return
	}
	log.Printf("Retention sweep purged %d projects at %s", n, time.Now().Format(time.RFC1123))
}
