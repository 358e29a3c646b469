package background

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Task is a unit of background work. The context is cancelled when the scheduler stops.
type Task func(ctx context.Context) error

// JobScheduler manages background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler() (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &JobScheduler{
		scheduler: scheduler,
		ctx:       ctx,
		cancel:    cancel,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// Every registers task to run each interval. A run still in progress when the next one is
// due causes that tick to be rescheduled rather than overlap. With immediately set the first
// run happens on Start.
func (js *JobScheduler) Every(name string, interval time.Duration, immediately bool, task Task) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", name)
	}

	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.wrap(name, task)),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", name, err)
	}

	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
	log.Printf("INFO: registered background job %s every %s", name, interval)
	return nil
}

func (js *JobScheduler) wrap(name string, task Task) func() {
	return func() {
		start := time.Now()
		if err := task(js.ctx); err != nil {
			log.Printf("WARN: job %s failed after %s: %v", name, time.Since(start), err)
			return
		}
		log.Printf("INFO: job %s completed in %s", name, time.Since(start))
	}
}

// JobNames lists the registered jobs in name order.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("INFO: starting background job scheduler with jobs %v", js.JobNames())
	js.scheduler.Start()
}

// Stop cancels running tasks and waits for them to return.
func (js *JobScheduler) Stop() error {
	log.Printf("INFO: stopping background job scheduler")
	js.cancel()
	return js.scheduler.Shutdown()
}
