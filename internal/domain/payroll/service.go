package payroll

import "context"

type PayrollService interface {
	// GetPeriods returns offsets -previous..0 with summaries, plus one upcoming placeholder
	GetPeriods(ctx context.Context, req PeriodsRequest) ([]PeriodOverview, error)

	// GetPeriodPayroll computes the full report for the period at offset (0 = current)
	GetPeriodPayroll(ctx context.Context, offset int) (PayrollReport, error)

	// ExportPeriodPayroll renders the report as an XLSX workbook
	ExportPeriodPayroll(ctx context.Context, offset int) (ExportFile, error)
}
