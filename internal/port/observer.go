package port

import "time"

// Observer records pipeline telemetry.
type Observer interface {
	RecordStage(stage string, d time.Duration, err error)
	RecordFile(status string, sizeBytes int64)
}
