package payroll

import (
	"strconv"

	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/validator"
)

// MaxPreviousPeriods bounds dashboard enumeration (one year).
const MaxPreviousPeriods = 26

type PeriodsRequest struct {
	Previous int
}

func (r *PeriodsRequest) Validate() error {
	if r.Previous < 0 || r.Previous > MaxPreviousPeriods {
		return validator.ValidationErrors{{Field: "previous", Message: "must be between 0 and " + strconv.Itoa(MaxPreviousPeriods)}}
	}
	return nil
}

// PeriodOverview is one dashboard row. Upcoming periods carry no summary.
type PeriodOverview struct {
	Period  PayPeriod       `json:"period"`
	Summary *PayrollSummary `json:"summary,omitempty"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
