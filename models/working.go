package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Salary units.
const (
	SalaryHour  = "hour"
	SalaryDay   = "day"
	SalaryMonth = "month"
	SalaryYear  = "year"
)

// Working is one salary/working-time submission as persisted in the
// workings collection. Optional groups are pointers so absent values are
// omitted rather than stored as zero.
type Working struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Author  *Author            `bson:"author,omitempty" json:"author,omitempty"`
	Company Company            `bson:"company" json:"company"`

	JobTitle            string `bson:"job_title" json:"job_title"`
	Sector              string `bson:"sector,omitempty" json:"sector,omitempty"`
	Gender              string `bson:"gender,omitempty" json:"gender,omitempty"`
	IsCurrentlyEmployed string `bson:"is_currently_employed" json:"is_currently_employed"`
	JobEndingTimeYear   *int   `bson:"job_ending_time_year,omitempty" json:"job_ending_time_year,omitempty"`
	JobEndingTimeMonth  *int   `bson:"job_ending_time_month,omitempty" json:"job_ending_time_month,omitempty"`
	EmploymentType      string `bson:"employment_type" json:"employment_type"`
	Status              string `bson:"status" json:"status"`

	WeekWorkTime          *float64 `bson:"week_work_time,omitempty" json:"week_work_time,omitempty"`
	OvertimeFrequency     *int     `bson:"overtime_frequency,omitempty" json:"overtime_frequency,omitempty"`
	DayPromisedWorkTime   *float64 `bson:"day_promised_work_time,omitempty" json:"day_promised_work_time,omitempty"`
	DayRealWorkTime       *float64 `bson:"day_real_work_time,omitempty" json:"day_real_work_time,omitempty"`
	HasOvertimeSalary     string   `bson:"has_overtime_salary,omitempty" json:"has_overtime_salary,omitempty"`
	IsOvertimeSalaryLegal string   `bson:"is_overtime_salary_legal,omitempty" json:"is_overtime_salary_legal,omitempty"`
	HasCompensatoryDayoff string   `bson:"has_compensatory_dayoff,omitempty" json:"has_compensatory_dayoff,omitempty"`

	Salary           *Salary `bson:"salary,omitempty" json:"salary,omitempty"`
	ExperienceInYear *int    `bson:"experience_in_year,omitempty" json:"experience_in_year,omitempty"`

	EstimatedHourlyWage  *float64 `bson:"estimated_hourly_wage,omitempty" json:"estimated_hourly_wage,omitempty"`
	EstimatedMonthlyWage *float64 `bson:"estimated_monthly_wage,omitempty" json:"estimated_monthly_wage,omitempty"`
	DataTime             DataTime `bson:"data_time" json:"data_time"`

	ExtraInfo []ExtraInfo `bson:"extra_info,omitempty" json:"extra_info,omitempty"`

	// RecommendedBy holds a UserRef when the token resolved, the raw token
	// string otherwise. Never echoed back to clients.
	RecommendedBy any `bson:"recommended_by,omitempty" json:"recommended_by,omitempty"`

	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	Archive     Archive   `bson:"archive" json:"archive"`
	ReportCount int       `bson:"report_count" json:"report_count"`
}

type Salary struct {
	Type   string `bson:"type" json:"type"`
	Amount int    `bson:"amount" json:"amount"`
}

// DataTime is the reference period a working describes.
type DataTime struct {
	Year  int `bson:"year" json:"year"`
	Month int `bson:"month" json:"month"`
}

type ExtraInfo struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}

// Archive marks a working hidden from public aggregates without deleting it.
type Archive struct {
	IsArchived bool   `bson:"is_archived" json:"is_archived"`
	Reason     string `bson:"reason" json:"reason"`
}

// Public returns a copy safe to send to clients.
func (w Working) Public() Working {
	w.RecommendedBy = nil
	return w
}
