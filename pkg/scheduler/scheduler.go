package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameScheduler)
}

// Scheduler runs the connection liveness sweep on a cron spec. A tick that
// arrives while the previous sweep is still running is skipped.
type Scheduler struct {
	cron     *cron.Cron
	liveness cct.ILiveness
	job      cron.Job
	entry    cron.EntryID
}

func New(liveness cct.ILiveness, spec string) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger()))

	s := &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger)),
		liveness: liveness,
	}
	s.job = cron.NewChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	).Then(cron.FuncJob(s.sweep))

	entry, err := s.cron.AddJob(spec, s.job)
	if err != nil {
		return nil, err
	}
	s.entry = entry

	logger().Info("Liveness sweep scheduled", zap.String("spec", spec))

	return s, nil
}

func (s *Scheduler) sweep() {
	result, err := s.liveness.CheckConnectionStatus()
	if err != nil {
		logger().Error("Liveness sweep failed", zap.Error(err))
	}
	if result != nil {
		logger().Info("Liveness sweep done",
			zap.Strings("devices_disconnected", result.DevicesDisconnected),
			zap.Strings("probes_disconnected", result.ProbesDisconnected))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and blocks until a running sweep finishes.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
