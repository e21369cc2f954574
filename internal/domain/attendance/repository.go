package attendance

import (
	"context"
	"time"
)

// Source is the attendance side of the time-tracking warehouse API.
type Source interface {
	// FetchOfficeAttendanceData returns raw daily attendance records within
	// [start, end]. A non-empty emails filter bounds the volume retrieved;
	// access resolution must complete before this call is scoped.
	FetchOfficeAttendanceData(ctx context.Context, start, end time.Time, emails []string) ([]Record, error)
}
