package sea

import (
	"log/slog"
)

// PhaseWindow is one event's slice of the frame for one phase, annotated
// with the per-event normalized time of each row.
type PhaseWindow struct {
	Frame *Frame
	TNorm []float64
}

// splitEvents slices the frame into phase-1 ([start, epoch]) and phase-2
// ([epoch, end]) windows for every event and normalizes each window's time.
// The epoch row belongs to both phases. An event with an empty window in
// either phase contributes nothing to either phase; it is logged by index
// and skipped, never failing the run.
func splitEvents(f *Frame, events []Event, logger *slog.Logger) (phase1, phase2 []PhaseWindow) {
	for i, event := range events {
		w1 := f.Slice(event.Start, event.Epoch)
		w2 := f.Slice(event.Epoch, event.End)

		if w1.Len() == 0 || w2.Len() == 0 {
			logger.Warn("no data for event, skipping", "event", i)
			continue
		}

		phase1 = append(phase1, PhaseWindow{Frame: w1, TNorm: normalizeTime(w1)})
		phase2 = append(phase2, PhaseWindow{Frame: w2, TNorm: normalizeTime(w2)})
	}
	return phase1, phase2
}

// normalizeTime rescales a window's elapsed time onto [0, 1]. Elapsed
// seconds are measured from the window's first row; the first and last rows
// bound the range since the index is ascending. A zero-duration window
// divides by zero and yields non-finite values for every row — passed
// through on purpose so degenerate events surface in binning instead of
// being silently repaired.
func normalizeTime(w *Frame) []float64 {
	times := w.Times()
	elapsed := make([]float64, len(times))
	for i, t := range times {
		elapsed[i] = t.Sub(times[0]).Seconds()
	}

	pMin, pMax := elapsed[0], elapsed[len(elapsed)-1]
	tNorm := make([]float64, len(elapsed))
	for i, e := range elapsed {
		tNorm[i] = (e - pMin) / (pMax - pMin)
	}
	return tNorm
}

// pool concatenates all events' windows of one phase into a single combined
// sample set over the given columns. Pooling happens once, after every
// window is collected, so aggregate statistics see identical floating-point
// inputs regardless of event count.
func pool(windows []PhaseWindow, cols []string) (*PooledPhase, error) {
	total := 0
	for _, w := range windows {
		total += w.Frame.Len()
	}

	pooled := &PooledPhase{
		TNorm:   make([]float64, 0, total),
		Columns: make(map[string][]float64, len(cols)),
	}
	for _, name := range cols {
		pooled.Columns[name] = make([]float64, 0, total)
	}

	for _, w := range windows {
		pooled.TNorm = append(pooled.TNorm, w.TNorm...)
		for _, name := range cols {
			values, err := w.Frame.Column(name)
			if err != nil {
				return nil, err
			}
			pooled.Columns[name] = append(pooled.Columns[name], values...)
		}
	}
	return pooled, nil
}
