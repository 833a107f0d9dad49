package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/xcstrings/pkg/store"
)

// refreshTimeout bounds one discovery scan.
const refreshTimeout = time.Minute

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule validates a discovery refresh schedule: a five-field cron
// expression or a descriptor such as "@every 5m".
func ParseSchedule(expr string) (cron.Schedule, error) {
	s, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", expr, err)
	}
	return s, nil
}

// DiscoveryRefresher rescans a registry's search root on a schedule.
type DiscoveryRefresher struct {
	cron     *cron.Cron
	catalogs *store.Registry
	logger   *slog.Logger
}

// NewDiscoveryRefresher schedules refreshes of reg according to expr.
func NewDiscoveryRefresher(reg *store.Registry, expr string, logger *slog.Logger) (*DiscoveryRefresher, error) {
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return nil, err
	}
	cl := cronLogger{logger}
	r := &DiscoveryRefresher{
		cron:     cron.New(cron.WithParser(scheduleParser), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		catalogs: reg,
		logger:   logger,
	}
	r.cron.Schedule(schedule, cron.FuncJob(r.refresh))
	return r, nil
}

func (r *DiscoveryRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	paths, err := r.catalogs.Refresh(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "catalog discovery failed", slog.String("error", err.Error()))
		return
	}
	r.logger.DebugContext(ctx, "catalog discovery refreshed", slog.Int("count", len(paths)))
}

// Start begins scheduling. It does not block.
func (r *DiscoveryRefresher) Start(context.Context) error {
	r.cron.Start()
	return nil
}

// Stop prevents new runs and waits for a running scan to finish.
func (r *DiscoveryRefresher) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err.Error())...)
}
