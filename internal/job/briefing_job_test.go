package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"morning-macro/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type briefingRunnerTestStub struct {
	calls *int32
}

func (s *briefingRunnerTestStub) RunBriefing(ctx context.Context) (domain.BriefingRunResult, error) {
	atomic.AddInt32(s.calls, 1)
	return domain.BriefingRunResult{Delivered: true}, nil
}

func TestShouldFire(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"weekday at send time", time.Date(2024, 8, 15, 7, 30, 0, 0, domain.KST), true},   // Thursday
		{"weekday wrong minute", time.Date(2024, 8, 15, 7, 29, 0, 0, domain.KST), false},
		{"weekday wrong hour", time.Date(2024, 8, 15, 8, 30, 0, 0, domain.KST), false},
		{"saturday at send time", time.Date(2024, 8, 17, 7, 30, 0, 0, domain.KST), false},
		{"sunday at send time", time.Date(2024, 8, 18, 7, 30, 0, 0, domain.KST), false},
		{"UTC instant matching 07:30 KST", time.Date(2024, 8, 14, 22, 30, 0, 0, time.UTC), true}, // Thu 07:30 KST
		{"seconds within the minute still fire", time.Date(2024, 8, 15, 7, 30, 59, 0, domain.KST), true},
	}

	for _, c := range cases {
		if got := ShouldFire(c.t, 7, 30); got != c.want {
			t.Fatalf("%s: ShouldFire=%v, want %v", c.name, got, c.want)
		}
	}
}

func TestShouldFireHonorsConfiguredTime(t *testing.T) {
	monday := time.Date(2024, 8, 12, 9, 0, 0, 0, domain.KST)
	if !ShouldFire(monday, 9, 0) {
		t.Fatal("configured 09:00 should fire at 09:00")
	}
	if ShouldFire(monday, 7, 30) {
		t.Fatal("default 07:30 should not fire at 09:00")
	}
}

func TestBriefingJobFiresAtMostOncePerMinute(t *testing.T) {
	var calls int32
	j := NewBriefingJob(trace.NewNoopTracerProvider().Tracer("test"), &briefingRunnerTestStub{calls: &calls}, 1, 7, 30)

	// Freeze the clock inside the trigger minute and wake far more often
	// than once per minute.
	j.interval = 5 * time.Millisecond
	j.now = func() time.Time { return time.Date(2024, 8, 15, 7, 30, 12, 0, domain.KST) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly one run within the trigger minute, got %d", got)
	}
}

func TestBriefingJobDoesNotFireOutsideWindow(t *testing.T) {
	var calls int32
	j := NewBriefingJob(trace.NewNoopTracerProvider().Tracer("test"), &briefingRunnerTestStub{calls: &calls}, 1, 7, 30)
	j.interval = 5 * time.Millisecond
	j.now = func() time.Time { return time.Date(2024, 8, 17, 7, 30, 0, 0, domain.KST) } // Saturday

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected no runs on a weekend, got %d", got)
	}
}

func TestBriefingJobFiresAgainNextMinute(t *testing.T) {
	var calls int32
	j := NewBriefingJob(trace.NewNoopTracerProvider().Tracer("test"), &briefingRunnerTestStub{calls: &calls}, 1, 7, 30)

	base := time.Date(2024, 8, 15, 7, 30, 12, 0, domain.KST)
	j.now = func() time.Time { return base }
	j.tick(context.Background())
	j.tick(context.Background())
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("same minute should fire once, got %d", got)
	}

	// Next day, same minute key differs: the guard resets naturally.
	j.now = func() time.Time { return base.Add(24 * time.Hour) }
	j.tick(context.Background())
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("next day's window should fire again, got %d", got)
	}
}
