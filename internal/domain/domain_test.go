package domain

import (
	"math"
	"testing"
	"time"
)

func TestParseValue(t *testing.T) {
	v := ParseValue("4.3")
	if v.Missing() {
		t.Fatal("numeric value should not be missing")
	}
	if n, ok := v.Num(); !ok || n != 4.3 {
		t.Fatalf("unexpected parse: %v %v", n, ok)
	}
	if v.String() != "4.3" {
		t.Fatalf("raw string should be preserved, got %q", v.String())
	}

	if !ParseValue(".").Missing() {
		t.Fatal("missing token should report missing")
	}
	if !ParseValue("").Missing() {
		t.Fatal("empty value should report missing")
	}

	odd := ParseValue("n/a")
	if odd.Missing() {
		t.Fatal("non-numeric value is present, just not numeric")
	}
	if _, ok := odd.Num(); ok {
		t.Fatal("non-numeric value should not parse")
	}
}

func TestComputeDelta(t *testing.T) {
	cur := ParseValue("4.3")
	prev := ParseValue("4.1")

	d, ok := ComputeDelta(cur, &prev)
	if !ok {
		t.Fatal("expected determined delta")
	}
	if math.Abs(d-0.2) > 1e-9 {
		t.Fatalf("expected 0.2, got %v", d)
	}

	down := ParseValue("4.5")
	d, ok = ComputeDelta(cur, &down)
	if !ok || d >= 0 {
		t.Fatalf("expected negative delta, got %v ok=%v", d, ok)
	}

	same := ParseValue("4.3")
	d, ok = ComputeDelta(cur, &same)
	if !ok || d != 0 {
		t.Fatalf("unchanged pair should yield exactly 0, got %v ok=%v", d, ok)
	}
}

func TestComputeDeltaUndetermined(t *testing.T) {
	cur := ParseValue("4.3")
	missing := ParseValue(".")
	junk := ParseValue("abc")

	if _, ok := ComputeDelta(cur, nil); ok {
		t.Fatal("absent previous should be undetermined")
	}
	if _, ok := ComputeDelta(cur, &missing); ok {
		t.Fatal("missing previous should be undetermined")
	}
	if _, ok := ComputeDelta(missing, &cur); ok {
		t.Fatal("missing current should be undetermined")
	}
	if _, ok := ComputeDelta(cur, &junk); ok {
		t.Fatal("non-numeric previous should be undetermined")
	}
}

func TestIndicatorsAreStaticAndTiered(t *testing.T) {
	if len(Indicators) != 5 {
		t.Fatalf("expected 5 tracked series, got %d", len(Indicators))
	}

	wantOrder := []string{"UNRATE", "CPIAUCSL", "PAYEMS", "GDPC1", "RRSFS"}
	for i, def := range Indicators {
		if def.SeriesID != wantOrder[i] {
			t.Fatalf("unexpected series at %d: %s", i, def.SeriesID)
		}
		if def.Importance != TierCritical && def.Importance != TierImportant {
			t.Fatalf("unexpected tier for %s: %s", def.SeriesID, def.Importance)
		}
	}

	// Critical entries must precede important ones in the static order.
	seenImportant := false
	for _, def := range Indicators {
		if def.Importance == TierImportant {
			seenImportant = true
		}
		if seenImportant && def.Importance == TierCritical {
			t.Fatalf("critical series %s listed after an important one", def.SeriesID)
		}
	}
}

func TestKSTOffset(t *testing.T) {
	ts := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC).In(KST)
	_, offset := ts.Zone()
	if offset != 9*60*60 {
		t.Fatalf("expected fixed +9h offset, got %d", offset)
	}
	if ts.Hour() != 9 {
		t.Fatalf("expected 09:00 KST for 00:00 UTC, got %d", ts.Hour())
	}
}
