package job

import (
	"context"
	"log"
	"time"

	"morning-macro/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type BriefingRunner interface {
	RunBriefing(ctx context.Context) (domain.BriefingRunResult, error)
}

// ShouldFire reports whether now qualifies for the scheduled send: a weekday
// in KST at exactly the configured hour and minute. Pure query; the job's
// per-minute guard keeps it from firing twice within the same minute.
func ShouldFire(now time.Time, hour, minute int) bool {
	kst := now.In(domain.KST)
	if wd := kst.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return kst.Hour() == hour && kst.Minute() == minute
}

// BriefingJob wakes on a fixed interval, checks the clock gate, and runs one
// briefing cycle when it passes. Cycle failures are logged and absorbed; the
// loop only stops on context cancellation.
type BriefingJob struct {
	tracer    trace.Tracer
	runner    BriefingRunner
	interval  time.Duration
	hour      int
	minute    int
	now       func() time.Time
	lastFired string
}

func NewBriefingJob(tracer trace.Tracer, runner BriefingRunner, pollSecs, hour, minute int) *BriefingJob {
	if pollSecs <= 0 {
		pollSecs = 60
	}
	return &BriefingJob{
		tracer:   tracer,
		runner:   runner,
		interval: time.Duration(pollSecs) * time.Second,
		hour:     hour,
		minute:   minute,
		now:      time.Now,
	}
}

// Start blocks until ctx is cancelled.
func (j *BriefingJob) Start(ctx context.Context) {
	if j.runner == nil {
		log.Println("Briefing job disabled: no runner")
		<-ctx.Done()
		return
	}

	log.Printf("Briefing scheduler started (weekdays %02d:%02d KST, wake every %s)", j.hour, j.minute, j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Briefing scheduler stopped")
			return
		case <-ticker.C:
			j.tick(ctx)
		}
	}
}

func (j *BriefingJob) tick(ctx context.Context) {
	now := j.now()
	if !ShouldFire(now, j.hour, j.minute) {
		return
	}

	// At most one send per calendar minute, even if the loop wakes more than
	// once within the trigger minute.
	key := now.In(domain.KST).Format("2006-01-02 15:04")
	if key == j.lastFired {
		return
	}
	j.lastFired = key

	j.runOnce(ctx)
}

func (j *BriefingJob) runOnce(ctx context.Context) {
	_, span := j.tracer.Start(ctx, "briefing-job.run-once")
	defer span.End()

	result, err := j.runner.RunBriefing(ctx)
	if err != nil {
		log.Printf("Briefing cycle error: %v", err)
		return
	}
	log.Printf(
		"Briefing cycle complete collected=%d failed=%d skipped=%v delivered=%v",
		result.Collected, len(result.Failed), result.Skipped, result.Delivered,
	)
}
