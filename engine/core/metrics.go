package core

import (
	"sync"
	"sync/atomic"
)

const AVG_COUNT uint8 = 30

type MetricsState struct {
	ImportAVGCounter uint8
	MStimes          [AVG_COUNT]float64
	MSavg            float64

	FramesCommitted atomic.Int64
	FramesAcquired  atomic.Int64
	ImportsFailed   atomic.Int64

	mu sync.Mutex
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			MStimes: [AVG_COUNT]float64{0},
		}
	})
	return nil
}

// MetricsImportTime folds one import duration (seconds) into the
// rolling millisecond average.
func MetricsImportTime(elapsed float64) {
	if metricsState == nil {
		return
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()

	import_ms := (elapsed * 1000.0)
	metricsState.MStimes[metricsState.ImportAVGCounter] = import_ms
	if metricsState.ImportAVGCounter == AVG_COUNT-1 {
		avg := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			avg += metricsState.MStimes[i]
		}
		metricsState.MSavg = avg / float64(AVG_COUNT)
	}
	metricsState.ImportAVGCounter++
	metricsState.ImportAVGCounter %= AVG_COUNT
}

func MetricsFrameCommitted() {
	if metricsState != nil {
		metricsState.FramesCommitted.Add(1)
	}
}

func MetricsFrameAcquired() {
	if metricsState != nil {
		metricsState.FramesAcquired.Add(1)
	}
}

func MetricsImportFailed() {
	if metricsState != nil {
		metricsState.ImportsFailed.Add(1)
	}
}

func MetricsImportMSAverage() float64 {
	if metricsState == nil {
		return 0
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.MSavg
}

// MetricsSnapshot reports the cumulative frame counters.
func MetricsSnapshot() (committed, acquired, failed int64) {
	if metricsState == nil {
		return 0, 0, 0
	}
	return metricsState.FramesCommitted.Load(),
		metricsState.FramesAcquired.Load(),
		metricsState.ImportsFailed.Load()
}
