package workings

import "goodjob/models"

// WagePolicy holds the calendar assumptions of the annualized wage model:
// a year of WeeksPerYear weeks from which PublicHolidays and
// AnnualLeaveDays are subtracted, each day charged at the real daily hours.
type WagePolicy struct {
	WeeksPerYear    float64
	PublicHolidays  float64
	AnnualLeaveDays float64
}

// DefaultWagePolicy is 52 weeks, 12 public holidays and 7 days of leave.
var DefaultWagePolicy = WagePolicy{WeeksPerYear: 52, PublicHolidays: 12, AnnualLeaveDays: 7}

func (p WagePolicy) daysOff() float64 {
	return p.PublicHolidays + p.AnnualLeaveDays
}

// yearlyHours is the number of paid working hours per year, or false when
// the inputs leave no positive working time.
func (p WagePolicy) yearlyHours(dayReal, week float64) (float64, bool) {
	hours := p.WeeksPerYear*week - p.daysOff()*dayReal
	if hours <= 0 {
		return 0, false
	}
	return hours, true
}

// EstimatedHourlyWage derives an hourly wage from salary. dayReal and week
// are the real daily and weekly work hours, nil when not submitted; zero
// counts as not submitted. The second result is false when the wage cannot
// be computed.
func (p WagePolicy) EstimatedHourlyWage(salary models.Salary, dayReal, week *float64) (float64, bool) {
	amount := float64(salary.Amount)
	switch salary.Type {
	case models.SalaryHour:
		return amount, true
	case models.SalaryDay:
		if !positive(dayReal) {
			return 0, false
		}
		return amount / *dayReal, true
	case models.SalaryMonth, models.SalaryYear:
		if !positive(dayReal) || !positive(week) {
			return 0, false
		}
		hours, ok := p.yearlyHours(*dayReal, *week)
		if !ok {
			return 0, false
		}
		if salary.Type == models.SalaryMonth {
			amount *= 12
		}
		return amount / hours, true
	}
	return 0, false
}

// EstimatedMonthlyWage back-derives a monthly wage from salary with the
// same calendar model. Hourly and daily salaries need both work times.
func (p WagePolicy) EstimatedMonthlyWage(salary models.Salary, dayReal, week *float64) (float64, bool) {
	amount := float64(salary.Amount)
	switch salary.Type {
	case models.SalaryMonth:
		return amount, true
	case models.SalaryYear:
		return amount / 12, true
	case models.SalaryHour:
		if !positive(dayReal) || !positive(week) {
			return 0, false
		}
		hours, ok := p.yearlyHours(*dayReal, *week)
		if !ok {
			return 0, false
		}
		return amount * hours / 12, true
	case models.SalaryDay:
		if !positive(dayReal) || !positive(week) {
			return 0, false
		}
		days := p.WeeksPerYear*(*week)/(*dayReal) - p.daysOff()
		if days <= 0 {
			return 0, false
		}
		return amount * days / 12, true
	}
	return 0, false
}

// positive treats a zero work time like a missing one.
func positive(v *float64) bool {
	return v != nil && *v > 0
}

// reliable reports whether a derived wage is small enough to store.
func reliable(v float64) bool {
	return v <= MaxSalaryAmount
}
