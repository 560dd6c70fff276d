package wave

import "github.com/joss/intentwave/internal/domain"

// Stats summarizes a wave decomposition, grounded on the original
// decomposer's WaveStats / analyze_waves. The Plan Builder copies these
// fields into the Plan's aggregate fields.
type Stats struct {
	TotalIntents    int
	TotalWaves      int
	PeakParallelism int
	SerialDepth     int
	BottleneckWave  int
	CriticalPath    []string
}

// Analyze computes Stats over a wave decomposition. criticalPath is
// supplied by the caller (the Plan Builder owns duration-weighted
// critical-path computation per §4.5, since it depends on chosen-agent
// throughput, not just graph shape).
func Analyze(waves domain.Waves, criticalPath []string) Stats {
	if len(waves) == 0 {
		return Stats{}
	}
	return Stats{
		TotalIntents:    waves.TotalIntents(),
		TotalWaves:      len(waves),
		PeakParallelism: waves.PeakParallelism(),
		SerialDepth:     len(waves),
		BottleneckWave:  waves.BottleneckWave(),
		CriticalPath:    criticalPath,
	}
}
