package workings

import (
	"math"
	"slices"
	"strconv"
	"time"

	"goodjob/apperr"
	"goodjob/models"
)

// Allowed enum values.
var (
	employmentTypes = []string{"full-time", "part-time", "intern", "temporary", "contract", "dispatched-labor"}
	genders         = []string{"male", "female", "other"}
	yesNoUnknown    = []string{"yes", "no", "don't know"}
	salaryTypes     = []string{models.SalaryHour, models.SalaryDay, models.SalaryMonth, models.SalaryYear}
	frequencies     = []string{"0", "1", "2", "3"}
	statuses        = []string{StatusPublished, StatusHidden}
)

const (
	StatusPublished = "published"
	StatusHidden    = "hidden"

	// MaxSalaryAmount also bounds derived wages; larger estimates are dropped.
	MaxSalaryAmount = 100000000
)

// Common is the parsed form of the fields every working must carry.
type Common struct {
	CompanyID           string
	CompanyQuery        string
	JobTitle            string
	Sector              string
	Gender              string
	IsCurrentlyEmployed string
	// EndingYear and EndingMonth are set only when IsCurrentlyEmployed is "no".
	EndingYear     int
	EndingMonth    int
	EmploymentType string
	Status         string
	ExtraInfo      []models.ExtraInfo
}

// WorkingTime is the parsed working-time group.
type WorkingTime struct {
	WeekWorkTime          float64
	OvertimeFrequency     int
	DayPromisedWorkTime   float64
	DayRealWorkTime       float64
	HasOvertimeSalary     string
	IsOvertimeSalaryLegal string
	HasCompensatoryDayoff string
}

// SalaryGroup is the parsed salary group.
type SalaryGroup struct {
	Salary           models.Salary
	ExperienceInYear int
}

// ParseCommon checks the common fields in a fixed order and returns the
// first violation as a validation error. now must already be in the
// reference timezone.
func ParseCommon(f Form, now time.Time) (Common, error) {
	c := Common{
		CompanyID:    f.CompanyID,
		CompanyQuery: f.CompanyQuery,
	}

	if f.CompanyID == "" && f.CompanyQuery == "" {
		return c, apperr.Validation("company or company_id is required")
	}

	if f.IsCurrentlyEmployed == "" {
		return c, apperr.Validation("is_currently_employed is required")
	}
	if !oneOf(f.IsCurrentlyEmployed, "yes", "no") {
		return c, apperr.Validation("is_currently_employed must be yes or no")
	}
	c.IsCurrentlyEmployed = f.IsCurrentlyEmployed

	if f.IsCurrentlyEmployed == "yes" {
		if f.JobEndingTimeYear != "" || f.JobEndingTimeMonth != "" {
			return c, apperr.Validation("job_ending_time_year and job_ending_time_month are not allowed while currently employed")
		}
	} else {
		year, month, err := parseEndingTime(f, now)
		if err != nil {
			return c, err
		}
		c.EndingYear, c.EndingMonth = year, month
	}

	if f.JobTitle == "" {
		return c, apperr.Validation("job_title is required")
	}
	c.JobTitle = f.JobTitle
	c.Sector = f.Sector

	if f.EmploymentType == "" {
		return c, apperr.Validation("employment_type is required")
	}
	if !oneOf(f.EmploymentType, employmentTypes...) {
		return c, apperr.Validationf("employment_type must be one of %v", employmentTypes)
	}
	c.EmploymentType = f.EmploymentType

	if f.Gender != "" && !oneOf(f.Gender, genders...) {
		return c, apperr.Validationf("gender must be one of %v", genders)
	}
	c.Gender = f.Gender

	if f.ExtraInfo != nil {
		info, err := parseExtraInfo(f.ExtraInfo)
		if err != nil {
			return c, err
		}
		c.ExtraInfo = info
	}

	c.Status = StatusPublished
	if f.Status != "" {
		if !oneOf(f.Status, statuses...) {
			return c, apperr.Validationf("status must be one of %v", statuses)
		}
		c.Status = f.Status
	}

	return c, nil
}

func parseEndingTime(f Form, now time.Time) (int, int, error) {
	if f.JobEndingTimeYear == "" {
		return 0, 0, apperr.Validation("job_ending_time_year is required when not currently employed")
	}
	if f.JobEndingTimeMonth == "" {
		return 0, 0, apperr.Validation("job_ending_time_month is required when not currently employed")
	}
	year, err := strconv.Atoi(f.JobEndingTimeYear)
	if err != nil {
		return 0, 0, apperr.Validation("job_ending_time_year must be an integer")
	}
	month, err := strconv.Atoi(f.JobEndingTimeMonth)
	if err != nil {
		return 0, 0, apperr.Validation("job_ending_time_month must be an integer")
	}
	if year <= now.Year()-10 || year > now.Year() {
		return 0, 0, apperr.Validationf("job_ending_time_year must be within the last 10 years (%d-%d)", now.Year()-9, now.Year())
	}
	if month < 1 || month > 12 {
		return 0, 0, apperr.Validation("job_ending_time_month must be between 1 and 12")
	}
	if year == now.Year() && month > int(now.Month()) {
		return 0, 0, apperr.Validation("job ending time must not be in the future")
	}
	return year, month, nil
}

func parseExtraInfo(v any) ([]models.ExtraInfo, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, apperr.Validation("extra_info must be an array")
	}
	info := make([]models.ExtraInfo, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, apperr.Validation("extra_info items must be objects with key and value")
		}
		key, kok := obj["key"].(string)
		value, vok := obj["value"].(string)
		if !kok || !vok {
			return nil, apperr.Validation("extra_info key and value must be strings")
		}
		info = append(info, models.ExtraInfo{Key: key, Value: value})
	}
	return info, nil
}

// ParseWorkingTime parses the working-time group. It returns nil, nil when
// no working-time key was submitted.
func ParseWorkingTime(f Form) (*WorkingTime, error) {
	if !f.HasWorkingTime() {
		return nil, nil
	}
	wt := &WorkingTime{}
	var err error

	if wt.WeekWorkTime, err = requiredFloat("week_work_time", f.WeekWorkTime, 0, 168); err != nil {
		return nil, err
	}

	if f.OvertimeFrequency == "" {
		return nil, apperr.Validation("overtime_frequency is required")
	}
	if !oneOf(f.OvertimeFrequency, frequencies...) {
		return nil, apperr.Validation("overtime_frequency must be one of 0, 1, 2, 3")
	}
	wt.OvertimeFrequency, _ = strconv.Atoi(f.OvertimeFrequency)

	if wt.DayPromisedWorkTime, err = requiredFloat("day_promised_work_time", f.DayPromisedWorkTime, 0, 24); err != nil {
		return nil, err
	}
	if wt.DayRealWorkTime, err = requiredFloat("day_real_work_time", f.DayRealWorkTime, 0, 24); err != nil {
		return nil, err
	}

	if f.HasOvertimeSalary != "" && !oneOf(f.HasOvertimeSalary, yesNoUnknown...) {
		return nil, apperr.Validationf("has_overtime_salary must be one of %v", yesNoUnknown)
	}
	wt.HasOvertimeSalary = f.HasOvertimeSalary

	if f.IsOvertimeSalaryLegal != "" {
		if f.HasOvertimeSalary != "yes" {
			return nil, apperr.Validation("is_overtime_salary_legal is only allowed when has_overtime_salary is yes")
		}
		if !oneOf(f.IsOvertimeSalaryLegal, yesNoUnknown...) {
			return nil, apperr.Validationf("is_overtime_salary_legal must be one of %v", yesNoUnknown)
		}
	}
	wt.IsOvertimeSalaryLegal = f.IsOvertimeSalaryLegal

	if f.HasCompensatoryDayoff != "" && !oneOf(f.HasCompensatoryDayoff, yesNoUnknown...) {
		return nil, apperr.Validationf("has_compensatory_dayoff must be one of %v", yesNoUnknown)
	}
	wt.HasCompensatoryDayoff = f.HasCompensatoryDayoff

	return wt, nil
}

// ParseSalary parses the salary group. It returns nil, nil when no salary
// key was submitted.
func ParseSalary(f Form) (*SalaryGroup, error) {
	if !f.HasSalary() {
		return nil, nil
	}
	sg := &SalaryGroup{}

	if f.SalaryType == "" {
		return nil, apperr.Validation("salary_type is required")
	}
	if !oneOf(f.SalaryType, salaryTypes...) {
		return nil, apperr.Validationf("salary_type must be one of %v", salaryTypes)
	}
	sg.Salary.Type = f.SalaryType

	amount, err := requiredInt("salary_amount", f.SalaryAmount, 0, MaxSalaryAmount)
	if err != nil {
		return nil, err
	}
	sg.Salary.Amount = amount

	if sg.ExperienceInYear, err = requiredInt("experience_in_year", f.ExperienceInYear, 0, 50); err != nil {
		return nil, err
	}
	return sg, nil
}

func requiredFloat(name, raw string, min, max float64) (float64, error) {
	if raw == "" {
		return 0, apperr.Validationf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Validationf("%s must be a number", name)
	}
	if v < min || v > max {
		return 0, apperr.Validationf("%s must be between %g and %g", name, min, max)
	}
	return v, nil
}

func requiredInt(name, raw string, min, max int) (int, error) {
	if raw == "" {
		return 0, apperr.Validationf("%s is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validationf("%s must be an integer", name)
	}
	if v < min || v > max {
		return 0, apperr.Validationf("%s must be between %d and %d", name, min, max)
	}
	return v, nil
}

func oneOf(v string, allowed ...string) bool {
	return slices.Contains(allowed, v)
}
