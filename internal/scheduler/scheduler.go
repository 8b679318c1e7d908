// Package scheduler runs the periodic housekeeping jobs: expiring the Profile
// API response cache and closing idle validator sessions.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is one named periodic task. Schedule uses the standard five-field cron syntax
// or a descriptor such as "@every 5m".
type Job struct {
	Name     string
	Schedule string
	Run      func() int
}

type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{cron: cron.New(), logger: logger}
}

// Add registers jobs. Nothing runs until Start.
func (s *Scheduler) Add(jobs ...Job) error {
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.Schedule, func() { s.run(j) }); err != nil {
			return fmt.Errorf("failed to add cron job %s: %w", j.Name, err)
		}
	}
	return nil
}

func (s *Scheduler) run(j Job) {
	n := j.Run()
	if n > 0 {
		s.logger.Info("scheduler: job finished", "job", j.Name, "removed", n)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) entries() int {
	return len(s.cron.Entries())
}
