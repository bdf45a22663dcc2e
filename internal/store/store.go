package store

import (
	"context"
	"time"

	"github.com/sells-group/recipe-cli/internal/model"
)

// ReportFilter specifies criteria for listing stored reports.
type ReportFilter struct {
	Query  string `json:"query,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// StoredReport is a persisted analysis report with its row metadata.
type StoredReport struct {
	ID        string       `json:"id"`
	Report    model.Report `json:"report"`
	CreatedAt time.Time    `json:"created_at"`
}

// Store defines persistence for analysis reports.
type Store interface {
	SaveReport(ctx context.Context, report *model.Report) (*StoredReport, error)
	GetReport(ctx context.Context, id string) (*StoredReport, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]StoredReport, error)
	Migrate(ctx context.Context) error
	Close() error
}
