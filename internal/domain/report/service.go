package report

import "context"

type ReportService interface {
	// DailySummary rolls up the manager's team checkins for one UTC
	// calendar date. Only managers may call it; the role is checked before
	// any aggregation work.
	DailySummary(ctx context.Context, req DailySummaryRequest) (DailySummaryResponse, error)
}
