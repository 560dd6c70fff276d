package domain

// Wave is one topological level of the intent dependency DAG: an ordered
// list of intent-id sets such that wave[k]'s predecessors all lie in
// waves < k.
type Wave []string

// Waves is the full ordered decomposition, wave[0]..wave[k].
type Waves []Wave

// TotalIntents returns the number of intents across all waves.
func (w Waves) TotalIntents() int {
	n := 0
	for _, wave := range w {
		n += len(wave)
	}
	return n
}

// PeakParallelism returns the size of the largest wave.
func (w Waves) PeakParallelism() int {
	peak := 0
	for _, wave := range w {
		if len(wave) > peak {
			peak = len(wave)
		}
	}
	return peak
}

// BottleneckWave returns the index of the largest wave, ties broken by
// smallest index.
func (w Waves) BottleneckWave() int {
	best := 0
	bestSize := -1
	for idx, wave := range w {
		if len(wave) > bestSize {
			bestSize = len(wave)
			best = idx
		}
	}
	return best
}

// WaveIndex builds a lookup from intent id to the wave index it belongs
// to.
func (w Waves) WaveIndex() map[string]int {
	idx := make(map[string]int)
	for i, wave := range w {
		for _, id := range wave {
			idx[id] = i
		}
	}
	return idx
}
