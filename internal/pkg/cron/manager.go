package cron

import (
	"Pawtner/internal/api/config"
	"Pawtner/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	badWordReload *job.BadWordReloadJob
}

func NewCronManager(badWordReload *job.BadWordReloadJob) *Manager {
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		badWordReload: badWordReload,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	spec := config.Cfg.Moderation.ReloadSpec
	if spec == "" {
		spec = "@hourly"
	}
	if _, err := s.engine.AddJob(spec, s.badWordReload); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
