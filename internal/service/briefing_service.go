package service

import (
	"context"
	"log"
	"time"

	"morning-macro/internal/briefing"
	"morning-macro/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// ObservationProvider fetches the recent observations of one series,
// newest first.
type ObservationProvider interface {
	FetchObservations(ctx context.Context, seriesID string) ([]domain.Observation, error)
}

// Notifier delivers one finished message to the briefing chat.
type Notifier interface {
	Deliver(ctx context.Context, text string) error
}

// BriefingService runs the fetch → compute → render → deliver pipeline.
type BriefingService struct {
	tracer   trace.Tracer
	provider ObservationProvider
	notifier Notifier
}

func NewBriefingService(tracer trace.Tracer, provider ObservationProvider, notifier Notifier) *BriefingService {
	return &BriefingService{
		tracer:   tracer,
		provider: provider,
		notifier: notifier,
	}
}

// CollectSnapshots fetches the latest observations for every tracked series,
// one request at a time. A failed or empty series is logged and omitted; the
// cycle continues with whatever succeeded.
func (s *BriefingService) CollectSnapshots(ctx context.Context) map[string]domain.IndicatorSnapshot {
	_, span := s.tracer.Start(ctx, "briefing-service.collect-snapshots")
	defer span.End()

	snapshots := make(map[string]domain.IndicatorSnapshot, len(domain.Indicators))
	for _, def := range domain.Indicators {
		observations, err := s.provider.FetchObservations(ctx, def.SeriesID)
		if err != nil {
			log.Printf("observation fetch error for %s: %v", def.SeriesID, err)
			continue
		}
		if len(observations) == 0 {
			log.Printf("no observations returned for %s", def.SeriesID)
			continue
		}

		snap := domain.IndicatorSnapshot{
			Definition: def,
			Latest:     observations[0],
		}
		if len(observations) > 1 {
			prev := observations[1]
			snap.Previous = &prev
		}
		snapshots[def.SeriesID] = snap
	}

	return snapshots
}

// RunBriefing executes one full briefing cycle. Failures are absorbed here: a
// fully failed fetch skips the cycle, a failed delivery is logged and lost.
// The returned error is reserved for future callers; today it is always nil
// so the scheduler loop never treats a cycle as fatal.
func (s *BriefingService) RunBriefing(ctx context.Context) (domain.BriefingRunResult, error) {
	ctx, span := s.tracer.Start(ctx, "briefing-service.run-briefing")
	defer span.End()

	var result domain.BriefingRunResult

	snapshots := s.CollectSnapshots(ctx)
	result.Collected = len(snapshots)
	for _, def := range domain.Indicators {
		if _, ok := snapshots[def.SeriesID]; !ok {
			result.Failed = append(result.Failed, def.SeriesID)
		}
	}

	if len(snapshots) == 0 {
		log.Println("briefing skipped: no indicator data available")
		result.Skipped = true
		return result, nil
	}

	if s.notifier == nil {
		log.Println("briefing skipped: notifier not configured")
		result.Skipped = true
		return result, nil
	}

	text := briefing.Render(snapshots, time.Now())
	if err := s.notifier.Deliver(ctx, text); err != nil {
		log.Printf("briefing delivery failed: %v", err)
		return result, nil
	}

	result.Delivered = true
	log.Printf("briefing delivered collected=%d failed=%d", result.Collected, len(result.Failed))
	return result, nil
}

// SendStartupNotice delivers the one-time boot message.
func (s *BriefingService) SendStartupNotice(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "briefing-service.send-startup-notice")
	defer span.End()

	if s.notifier == nil {
		log.Println("startup notice skipped: notifier not configured")
		return nil
	}
	return s.notifier.Deliver(ctx, briefing.StartupMessage(time.Now()))
}
