package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Counter reports how many records a collection holds.
type Counter interface {
	Count(ctx context.Context, collection string) (int, error)
}

// Scheduler periodically counts a collection so that an empty or unreachable
// default data set shows up in the logs before suppliers run into it.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	counter    Counter
	collection string
	interval   time.Duration
	log        logrus.FieldLogger
}

// New creates a new Scheduler probing collection every interval.
func New(counter Counter, collection string, interval time.Duration, log logrus.FieldLogger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:  s,
		counter:    counter,
		collection: collection,
		interval:   interval,
		log:        log.WithField("collection", collection),
	}
}

// Start schedules the probe and starts the underlying scheduler. A
// non-positive interval disables probing.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("scheduler: probe interval not set; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.Probe)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Probe counts the collection once and logs the result.
func (s *Scheduler) Probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.counter.Count(ctx, s.collection)
	switch {
	case err != nil:
		s.log.WithError(err).Error("scheduler: probe failed")
	case n == 0:
		s.log.Warn("scheduler: collection is empty")
	default:
		s.log.WithField("records", n).Info("scheduler: probe ok")
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
