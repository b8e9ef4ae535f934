package workings

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodjob/apperr"
)

var refNow = time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC)

func validCommon() Form {
	return Form{
		CompanyQuery:        "GoodJob",
		JobTitle:            "engineer",
		IsCurrentlyEmployed: "yes",
		EmploymentType:      "full-time",
	}
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperr.StatusOf(err), err.Error())
}

func TestParseCommon(t *testing.T) {
	c, err := ParseCommon(validCommon(), refNow)
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, c.Status)
	assert.Equal(t, "engineer", c.JobTitle)
	assert.Zero(t, c.EndingYear)
}

func TestParseCommonEndingTime(t *testing.T) {
	f := validCommon()
	f.IsCurrentlyEmployed = "no"
	f.JobEndingTimeYear = "2026"
	f.JobEndingTimeMonth = "5"

	c, err := ParseCommon(f, refNow)
	require.NoError(t, err)
	assert.Equal(t, 2026, c.EndingYear)
	assert.Equal(t, 5, c.EndingMonth)

	f.JobEndingTimeYear = "2017"
	c, err = ParseCommon(f, refNow)
	require.NoError(t, err)
	assert.Equal(t, 2017, c.EndingYear)
}

func TestParseCommonRejects(t *testing.T) {
	cases := map[string]func(*Form){
		"no company":                 func(f *Form) { f.CompanyQuery = "" },
		"no employment flag":         func(f *Form) { f.IsCurrentlyEmployed = "" },
		"bad employment flag":        func(f *Form) { f.IsCurrentlyEmployed = "maybe" },
		"ending time while employed": func(f *Form) { f.JobEndingTimeYear = "2020" },
		"missing ending year": func(f *Form) {
			f.IsCurrentlyEmployed = "no"
			f.JobEndingTimeMonth = "1"
		},
		"missing ending month": func(f *Form) {
			f.IsCurrentlyEmployed = "no"
			f.JobEndingTimeYear = "2020"
		},
		"non integer year": func(f *Form) {
			f.IsCurrentlyEmployed, f.JobEndingTimeYear, f.JobEndingTimeMonth = "no", "2020.5", "1"
		},
		"year ten years back": func(f *Form) {
			f.IsCurrentlyEmployed, f.JobEndingTimeYear, f.JobEndingTimeMonth = "no", "2016", "1"
		},
		"ending year in the future": func(f *Form) {
			f.IsCurrentlyEmployed, f.JobEndingTimeYear, f.JobEndingTimeMonth = "no", "2027", "1"
		},
		"ending month in the future": func(f *Form) {
			f.IsCurrentlyEmployed, f.JobEndingTimeYear, f.JobEndingTimeMonth = "no", "2026", "6"
		},
		"month out of range": func(f *Form) {
			f.IsCurrentlyEmployed, f.JobEndingTimeYear, f.JobEndingTimeMonth = "no", "2025", "13"
		},
		"no job title":         func(f *Form) { f.JobTitle = "" },
		"no employment type":   func(f *Form) { f.EmploymentType = "" },
		"bad employment type":  func(f *Form) { f.EmploymentType = "freelance" },
		"bad gender":           func(f *Form) { f.Gender = "unknown" },
		"bad status":           func(f *Form) { f.Status = "draft" },
		"extra info not array": func(f *Form) { f.ExtraInfo = "text" },
		"extra info bad item":  func(f *Form) { f.ExtraInfo = []any{map[string]any{"key": "k"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := validCommon()
			mutate(&f)
			_, err := ParseCommon(f, refNow)
			requireValidation(t, err)
		})
	}
}

func TestParseCommonFirstViolationWins(t *testing.T) {
	_, err := ParseCommon(Form{}, refNow)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message, "company")
}

func validWorkingTime() Form {
	return Form{
		WeekWorkTime:        "40",
		OvertimeFrequency:   "1",
		DayPromisedWorkTime: "8",
		DayRealWorkTime:     "9.5",
	}
}

func TestParseWorkingTime(t *testing.T) {
	wt, err := ParseWorkingTime(Form{})
	require.NoError(t, err)
	assert.Nil(t, wt)

	f := validWorkingTime()
	f.HasOvertimeSalary = "yes"
	f.IsOvertimeSalaryLegal = "don't know"
	wt, err = ParseWorkingTime(f)
	require.NoError(t, err)
	assert.Equal(t, 40.0, wt.WeekWorkTime)
	assert.Equal(t, 1, wt.OvertimeFrequency)
	assert.Equal(t, 9.5, wt.DayRealWorkTime)
	assert.Equal(t, "don't know", wt.IsOvertimeSalaryLegal)
}

func TestParseWorkingTimeRejects(t *testing.T) {
	cases := map[string]func(*Form){
		"partial group":           func(f *Form) { *f = Form{HasCompensatoryDayoff: "yes"} },
		"week too long":           func(f *Form) { f.WeekWorkTime = "169" },
		"week negative":           func(f *Form) { f.WeekWorkTime = "-1" },
		"week not a number":       func(f *Form) { f.WeekWorkTime = "forty" },
		"week NaN":                func(f *Form) { f.WeekWorkTime = "NaN" },
		"frequency out of enum":   func(f *Form) { f.OvertimeFrequency = "4" },
		"promised day too long":   func(f *Form) { f.DayPromisedWorkTime = "25" },
		"real day missing":        func(f *Form) { f.DayRealWorkTime = "" },
		"bad overtime salary":     func(f *Form) { f.HasOvertimeSalary = "sometimes" },
		"legal without overtime":  func(f *Form) { f.IsOvertimeSalaryLegal = "yes" },
		"legal with no overtime":  func(f *Form) { f.HasOvertimeSalary, f.IsOvertimeSalaryLegal = "no", "yes" },
		"bad compensatory dayoff": func(f *Form) { f.HasCompensatoryDayoff = "never" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := validWorkingTime()
			mutate(&f)
			_, err := ParseWorkingTime(f)
			requireValidation(t, err)
		})
	}
}

func TestParseSalary(t *testing.T) {
	sg, err := ParseSalary(Form{})
	require.NoError(t, err)
	assert.Nil(t, sg)

	sg, err = ParseSalary(Form{SalaryType: "month", SalaryAmount: "45000", ExperienceInYear: "3"})
	require.NoError(t, err)
	assert.Equal(t, "month", sg.Salary.Type)
	assert.Equal(t, 45000, sg.Salary.Amount)
	assert.Equal(t, 3, sg.ExperienceInYear)
}

func TestParseSalaryRejects(t *testing.T) {
	cases := map[string]Form{
		"missing type":        {SalaryAmount: "100", ExperienceInYear: "1"},
		"bad type":            {SalaryType: "week", SalaryAmount: "100", ExperienceInYear: "1"},
		"missing amount":      {SalaryType: "hour", ExperienceInYear: "1"},
		"fractional amount":   {SalaryType: "hour", SalaryAmount: "100.5", ExperienceInYear: "1"},
		"amount too large":    {SalaryType: "year", SalaryAmount: "100000001", ExperienceInYear: "1"},
		"negative amount":     {SalaryType: "hour", SalaryAmount: "-1", ExperienceInYear: "1"},
		"missing experience":  {SalaryType: "hour", SalaryAmount: "100"},
		"experience too long": {SalaryType: "hour", SalaryAmount: "100", ExperienceInYear: "51"},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSalary(f)
			requireValidation(t, err)
		})
	}
}
