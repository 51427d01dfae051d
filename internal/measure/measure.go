// Package measure times CLI operations and reports heap growth.
package measure

import (
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Sample is what Track observed about one operation.
type Sample struct {
	Operation  string
	Elapsed    time.Duration
	AllocBytes uint64 // bytes allocated while the operation ran
}

// Track runs fn and logs its wall time and allocation volume, whether or not
// fn fails. fn's error is returned unchanged.
func Track(logger logrus.FieldLogger, op string, fn func() error) (Sample, error) {
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	err := fn()

	elapsed := time.Since(start)
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	sample := Sample{
		Operation:  op,
		Elapsed:    elapsed,
		AllocBytes: after.TotalAlloc - before.TotalAlloc,
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"operation":   op,
			"alloc_bytes": sample.AllocBytes,
			"failed":      err != nil,
		}).Infof("Operation completed in %.6f seconds", elapsed.Seconds())
	}

	return sample, err
}
