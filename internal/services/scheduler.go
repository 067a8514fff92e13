package services

import (
	"github.com/robfig/cron/v3"
	"github.com/wicaksana/reportportal/pkg/logger"
	"gorm.io/gorm"
)

const logRetentionDays = 30

// Scheduler runs periodic maintenance: expired captcha purges and audit
// log cleanup.
type Scheduler struct {
	cron       *cron.Cron
	challenges *ChallengeService
	logs       *SystemLogService
}

func NewScheduler(db *gorm.DB, challenges *ChallengeService) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		challenges: challenges,
		logs:       NewSystemLogService(db),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 5m", s.purgeChallenges); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.cleanupLogs); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info().Msg("maintenance scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) purgeChallenges() {
	if removed := s.challenges.PurgeExpired(); removed > 0 {
		logger.Debug().Int("removed", removed).Msg("purged expired captcha challenges")
	}
}

func (s *Scheduler) cleanupLogs() {
	deleted, err := s.logs.CleanupOldLogs(logRetentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("audit log cleanup failed")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Msg("cleaned up old audit logs")
	}
}
