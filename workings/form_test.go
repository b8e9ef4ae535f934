package workings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeepsNonEmptyStrings(t *testing.T) {
	f := Extract(map[string]any{
		"company":            "GoodJob",
		"job_title":          "engineer",
		"salary_amount":      30000,
		"week_work_time":     "",
		"gender":             nil,
		"author":             map[string]any{"id": "forged"},
		"unknown_field":      "dropped",
		"extra_info":         []any{map[string]any{"key": "k", "value": "v"}},
		"salary_type":        "month",
		"status":             true,
		"day_real_work_time": "8",
	})

	assert.Equal(t, "GoodJob", f.CompanyQuery)
	assert.Equal(t, "engineer", f.JobTitle)
	assert.Empty(t, f.SalaryAmount, "numbers must arrive as strings")
	assert.Empty(t, f.WeekWorkTime)
	assert.Empty(t, f.Gender)
	assert.Empty(t, f.Status)
	assert.Equal(t, "month", f.SalaryType)
	assert.Equal(t, "8", f.DayRealWorkTime)
	assert.NotNil(t, f.ExtraInfo)
}

func TestGroupPresence(t *testing.T) {
	assert.False(t, Form{}.HasWorkingTime())
	assert.False(t, Form{}.HasSalary())

	assert.True(t, Form{HasCompensatoryDayoff: "yes"}.HasWorkingTime())
	assert.True(t, Form{ExperienceInYear: "1"}.HasSalary())
	assert.False(t, Form{ExperienceInYear: "1"}.HasWorkingTime())
}
