package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one herd generation.
const (
	PhaseScreening = "screening"
	PhaseBreeding  = "breeding"
	PhaseAging     = "aging"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseScreening, PhaseBreeding, PhaseAging, PhaseTelemetry}

// PerfSample holds timing data for a single generation.
type PerfSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// PerfCollector tracks generation timings over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	start      time.Time
	phaseStart time.Time
	lastPhase  string
}

// NewPerfCollector creates a collector averaging over windowSize generations.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 10
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		current:    make(map[string]time.Duration),
	}
}

// StartGeneration begins timing a new generation.
func (p *PerfCollector) StartGeneration() {
	p.start = time.Now()
	p.current = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndGeneration finishes timing and records the sample.
func (p *PerfCollector) EndGeneration() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{Duration: now.Sub(p.start), Phases: p.current}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated timing statistics.
type PerfStats struct {
	AvgDuration time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration
	PhaseAvg    map[string]time.Duration
	PhasePct    map[string]float64 // Share of the average generation time
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return out
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.Duration
		if i == 0 || s.Duration < out.MinDuration {
			out.MinDuration = s.Duration
		}
		if s.Duration > out.MaxDuration {
			out.MaxDuration = s.Duration
		}
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	out.AvgDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		out.PhaseAvg[phase] = avg
		if out.AvgDuration > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgDuration) * 100
		}
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_us", s.AvgDuration.Microseconds()),
		slog.Int64("min_us", s.MinDuration.Microseconds()),
		slog.Int64("max_us", s.MaxDuration.Microseconds()),
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of timing stats.
type PerfStatsCSV struct {
	Generation   int     `csv:"generation"`
	AvgUS        int64   `csv:"avg_us"`
	MinUS        int64   `csv:"min_us"`
	MaxUS        int64   `csv:"max_us"`
	ScreeningPct float64 `csv:"screening_pct"`
	BreedingPct  float64 `csv:"breeding_pct"`
	AgingPct     float64 `csv:"aging_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:   generation,
		AvgUS:        s.AvgDuration.Microseconds(),
		MinUS:        s.MinDuration.Microseconds(),
		MaxUS:        s.MaxDuration.Microseconds(),
		ScreeningPct: s.PhasePct[PhaseScreening],
		BreedingPct:  s.PhasePct[PhaseBreeding],
		AgingPct:     s.PhasePct[PhaseAging],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
