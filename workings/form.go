package workings

// Form is the typed projection of a submission payload. Every field is
// the raw string as sent by the client, empty when absent; numeric values
// arrive as strings and are parsed by the validators.
type Form struct {
	CompanyID           string
	CompanyQuery        string
	JobTitle            string
	Sector              string
	Gender              string
	IsCurrentlyEmployed string
	JobEndingTimeYear   string
	JobEndingTimeMonth  string
	EmploymentType      string
	Status              string

	WeekWorkTime          string
	OvertimeFrequency     string
	DayPromisedWorkTime   string
	DayRealWorkTime       string
	HasOvertimeSalary     string
	IsOvertimeSalaryLegal string
	HasCompensatoryDayoff string

	SalaryType       string
	SalaryAmount     string
	ExperienceInYear string

	RecommendationString string

	// ExtraInfo is kept untyped; its shape is checked by ParseCommon.
	ExtraInfo any
}

// stringFields binds each accepted payload key to its Form field.
var stringFields = []struct {
	key string
	dst func(*Form) *string
}{
	{"company_id", func(f *Form) *string { return &f.CompanyID }},
	{"company", func(f *Form) *string { return &f.CompanyQuery }},
	{"job_title", func(f *Form) *string { return &f.JobTitle }},
	{"sector", func(f *Form) *string { return &f.Sector }},
	{"gender", func(f *Form) *string { return &f.Gender }},
	{"is_currently_employed", func(f *Form) *string { return &f.IsCurrentlyEmployed }},
	{"job_ending_time_year", func(f *Form) *string { return &f.JobEndingTimeYear }},
	{"job_ending_time_month", func(f *Form) *string { return &f.JobEndingTimeMonth }},
	{"employment_type", func(f *Form) *string { return &f.EmploymentType }},
	{"status", func(f *Form) *string { return &f.Status }},
	{"week_work_time", func(f *Form) *string { return &f.WeekWorkTime }},
	{"overtime_frequency", func(f *Form) *string { return &f.OvertimeFrequency }},
	{"day_promised_work_time", func(f *Form) *string { return &f.DayPromisedWorkTime }},
	{"day_real_work_time", func(f *Form) *string { return &f.DayRealWorkTime }},
	{"has_overtime_salary", func(f *Form) *string { return &f.HasOvertimeSalary }},
	{"is_overtime_salary_legal", func(f *Form) *string { return &f.IsOvertimeSalaryLegal }},
	{"has_compensatory_dayoff", func(f *Form) *string { return &f.HasCompensatoryDayoff }},
	{"salary_type", func(f *Form) *string { return &f.SalaryType }},
	{"salary_amount", func(f *Form) *string { return &f.SalaryAmount }},
	{"experience_in_year", func(f *Form) *string { return &f.ExperienceInYear }},
	{"recommendation_string", func(f *Form) *string { return &f.RecommendationString }},
}

// Extract copies the accepted keys of raw into a Form. A key is taken only
// when its value is a non-empty string; everything else is dropped.
func Extract(raw map[string]any) Form {
	var f Form
	for _, field := range stringFields {
		if s, ok := raw[field.key].(string); ok && s != "" {
			*field.dst(&f) = s
		}
	}
	if v, ok := raw["extra_info"]; ok && v != nil {
		f.ExtraInfo = v
	}
	return f
}

// HasWorkingTime reports whether any working-time key was submitted.
func (f Form) HasWorkingTime() bool {
	return f.WeekWorkTime != "" ||
		f.OvertimeFrequency != "" ||
		f.DayPromisedWorkTime != "" ||
		f.DayRealWorkTime != "" ||
		f.HasOvertimeSalary != "" ||
		f.IsOvertimeSalaryLegal != "" ||
		f.HasCompensatoryDayoff != ""
}

// HasSalary reports whether any salary key was submitted.
func (f Form) HasSalary() bool {
	return f.SalaryType != "" || f.SalaryAmount != "" || f.ExperienceInYear != ""
}
