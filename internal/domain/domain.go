package domain

import (
	"strconv"
	"time"
)

// KST is the fixed UTC+9 offset the briefing schedule runs on. A fixed zone,
// not a tzdata lookup: Korea has no daylight saving.
var KST = time.FixedZone("KST", 9*60*60)

type ImportanceTier string

const (
	TierCritical  ImportanceTier = "critical"
	TierImportant ImportanceTier = "important"
)

// IndicatorDefinition describes one tracked FRED series. The set is static:
// definitions are loaded once at process start and never change at runtime.
type IndicatorDefinition struct {
	SeriesID    string
	Name        string
	Unit        string
	Importance  ImportanceTier
	Description string
}

// Indicators is the tracked series in rendering order. Within an importance
// tier the briefing lists indicators in exactly this order.
var Indicators = []IndicatorDefinition{
	{
		SeriesID:    "UNRATE",
		Name:        "실업률",
		Unit:        "%",
		Importance:  TierCritical,
		Description: "미국 실업률",
	},
	{
		SeriesID:    "CPIAUCSL",
		Name:        "CPI (소비자물가지수)",
		Unit:        "%",
		Importance:  TierCritical,
		Description: "전년동월대비 인플레이션율",
	},
	{
		SeriesID:    "PAYEMS",
		Name:        "비농업 취업자 수",
		Unit:        "천명",
		Importance:  TierCritical,
		Description: "월간 고용 증가",
	},
	{
		SeriesID:    "GDPC1",
		Name:        "GDP",
		Unit:        "%",
		Importance:  TierImportant,
		Description: "분기별 경제성장률",
	},
	{
		SeriesID:    "RRSFS",
		Name:        "소매판매",
		Unit:        "%",
		Importance:  TierImportant,
		Description: "월간 소매판매 증감률",
	},
}

// missingToken is FRED's sentinel for "no data at this point".
const missingToken = "."

// Value wraps a FRED string-typed observation value. The provider returns
// numbers as strings and uses "." for missing data, so Value resolves
// missing vs numeric vs non-numeric once, at the parsing boundary, instead
// of scattering sentinel comparisons through the pipeline.
type Value struct {
	raw     string
	num     float64
	numeric bool
}

func ParseValue(raw string) Value {
	v := Value{raw: raw}
	if v.Missing() {
		return v
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		v.num = n
		v.numeric = true
	}
	return v
}

// Missing reports whether the value is the provider's missing-data token.
func (v Value) Missing() bool {
	return v.raw == "" || v.raw == missingToken
}

// Num returns the parsed numeric value. ok is false when the value is
// missing or did not parse as a number.
func (v Value) Num() (float64, bool) {
	return v.num, v.numeric
}

// String returns the raw provider string, used verbatim in rendering.
func (v Value) String() string {
	return v.raw
}

// Observation is one (value, date) point of a series. Date keeps the
// provider's ISO form; the renderer reparses it on demand.
type Observation struct {
	Date  string
	Value Value
}

// IndicatorSnapshot is the per-cycle view of one series: the newest
// observation and, when the provider returned at least two, the one before
// it. Snapshots never survive a cycle.
type IndicatorSnapshot struct {
	Definition IndicatorDefinition
	Latest     Observation
	Previous   *Observation
}

// ComputeDelta returns the signed period-over-period change. ok is false
// (delta undetermined) when previous is absent or either side is missing or
// non-numeric.
func ComputeDelta(current Value, previous *Value) (float64, bool) {
	if previous == nil {
		return 0, false
	}
	cur, curOK := current.Num()
	prev, prevOK := previous.Num()
	if !curOK || !prevOK {
		return 0, false
	}
	return cur - prev, true
}

// BriefingRunResult summarizes one fetch→render→deliver cycle.
type BriefingRunResult struct {
	Collected int
	Failed    []string
	Skipped   bool
	Delivered bool
}
