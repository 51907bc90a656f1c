package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	employeesSheet = "Employees"
	summarySheet   = "Summary"
	xlsxType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var employeeColumns = []interface{}{
	"Employee ID", "Name", "Role", "Net Hours", "Regular Hours", "Overtime Hours", "Hourly Rate",
	"Regular Pay", "Overtime Pay", "Broker Fee Bonus", "Cross-Sell Bonus", "Life Insurance Bonus",
	"Review Bonus", "High-Value Bonus", "Total Bonus", "Total Pay", "Sales", "Sale Amount",
	"Broker Fees", "Data Incomplete",
}

func (s *PayrollServiceImpl) ExportPeriodPayroll(ctx context.Context, offset int) (payroll.ExportFile, error) {
	report, err := s.GetPeriodPayroll(ctx, offset)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	content, err := RenderWorkbook(report)
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("%w: %v", payroll.ErrExportFailed, err)
	}

	return payroll.ExportFile{
		Filename:    fmt.Sprintf("payroll_%s_%s.xlsx", report.Period.Start.Format("20060102"), report.Period.End.Format("20060102")),
		ContentType: xlsxType,
		Content:     content,
	}, nil
}

// RenderWorkbook writes one row per employee and a totals sheet.
func RenderWorkbook(report payroll.PayrollReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(employeesSheet, "A1", &employeeColumns); err != nil {
		return nil, err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(employeeColumns), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(employeesSheet, "A1", lastHeader, header); err != nil {
		return nil, err
	}

	for i, e := range report.Employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			e.EmployeeID, e.EmployeeName, e.Role,
			num(e.NetHours), num(e.RegularHours), num(e.OvertimeHours), num(e.HourlyRate),
			num(e.RegularPay), num(e.OvertimePay),
			num(e.Bonuses.BrokerFee), num(e.Bonuses.CrossSell), num(e.Bonuses.LifeInsurance),
			num(e.Bonuses.Review), num(e.Bonuses.HighValue), num(e.Bonuses.Total),
			num(e.TotalPay), e.SaleCount, num(e.SaleAmount), num(e.BrokerFees), e.DataIncomplete,
		}
		if err := f.SetSheetRow(employeesSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	sm := report.Summary
	summaryRows := [][]interface{}{
		{"Period", report.Period.Label()},
		{"Status", string(report.Period.Status)},
		{"Employees", sm.EmployeeCount},
		{"Net Hours", num(sm.NetHours)},
		{"Regular Hours", num(sm.RegularHours)},
		{"Overtime Hours", num(sm.OvertimeHours)},
		{"Regular Pay", num(sm.RegularPay)},
		{"Overtime Pay", num(sm.OvertimePay)},
		{"Total Bonus", num(sm.Bonuses.Total)},
		{"Total Pay", num(sm.TotalPay)},
		{"Sales", sm.SaleCount},
		{"Sale Amount", num(sm.SaleAmount)},
		{"Broker Fees", num(sm.BrokerFees)},
		{"Incomplete Records", sm.IncompleteCount},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summaryRows)), header); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// num keeps cent precision in the sheet; the decimal stays authoritative in JSON.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
