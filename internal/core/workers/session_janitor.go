package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SessionPurger deletes server-side sessions that have been idle since
// before the cutoff.
type SessionPurger interface {
	PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error)
}

type PurgeJob struct {
	Cutoff time.Time
}

// SessionJanitor removes idle browser sessions on a fixed interval and on
// demand.
type SessionJanitor struct {
	purger   SessionPurger
	maxIdle  time.Duration
	interval time.Duration
	jobs     chan PurgeJob
	logger   *logrus.Entry
	now      func() time.Time
}

func NewSessionJanitor(purger SessionPurger, maxIdle, interval time.Duration, logger *logrus.Entry) *SessionJanitor {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SessionJanitor{
		purger:   purger,
		maxIdle:  maxIdle,
		interval: interval,
		jobs:     make(chan PurgeJob, 10),
		logger:   logger.WithField("component", "session_janitor"),
		now:      time.Now,
	}
}

func (w *SessionJanitor) Start(ctx context.Context) {
	go func() {
		w.logger.WithField("interval", w.interval.String()).Info("session janitor started")

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-tick:
				w.processJob(ctx, PurgeJob{Cutoff: w.now().Add(-w.maxIdle)})
			case <-ctx.Done():
				w.logger.Info("session janitor shutting down")
				return
			}
		}
	}()
}

// Enqueue requests an immediate purge. It never blocks; a full queue drops
// the request since the next tick covers it.
func (w *SessionJanitor) Enqueue() {
	select {
	case w.jobs <- PurgeJob{Cutoff: w.now().Add(-w.maxIdle)}:
	default:
		w.logger.Warn("session janitor queue full, dropping purge request")
	}
}

func (w *SessionJanitor) processJob(ctx context.Context, job PurgeJob) {
	removed, err := w.purger.PurgeIdle(ctx, job.Cutoff)
	if err != nil {
		w.logger.WithError(err).Error("failed to purge idle sessions")
		return
	}
	if removed > 0 {
		w.logger.WithFields(logrus.Fields{
			"rows":   removed,
			"cutoff": job.Cutoff.Format(time.RFC3339),
		}).Info("purged idle sessions")
	}
}
