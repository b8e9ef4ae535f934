package workings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"goodjob/apperr"
	"goodjob/logger"
	"goodjob/models"
	"goodjob/mq"
)

// Store persists workings.
type Store interface {
	Insert(ctx context.Context, w *models.Working) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Working, error)
	SetArchive(ctx context.Context, id primitive.ObjectID, archive models.Archive) (*models.Working, error)
	IncrementReportCount(ctx context.Context, id primitive.ObjectID) error
}

// CompanyResolver maps a company id or free-text query to a Company.
type CompanyResolver interface {
	Resolve(ctx context.Context, id, query string) (models.Company, error)
}

// QuotaChecker consumes one unit of a user's upload quota.
type QuotaChecker interface {
	CheckAndUpdate(ctx context.Context, user models.UserRef) (int, error)
}

// Referrals resolves recommendation tokens and credits referrers.
type Referrals interface {
	Resolve(ctx context.Context, token string) (any, error)
	Increment(ctx context.Context, user models.UserRef) error
}

// Emitter publishes working events.
type Emitter interface {
	Emit(ctx context.Context, ev mq.Event) bool
}

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	Policy   WagePolicy
	Location *time.Location
	Now      func() time.Time
}

// Service runs the submission pipeline.
type Service struct {
	store     Store
	companies CompanyResolver
	quota     QuotaChecker
	referrals Referrals
	events    Emitter

	policy WagePolicy
	loc    *time.Location
	now    func() time.Time
}

// NewService wires the pipeline. events may be nil.
func NewService(store Store, companies CompanyResolver, quota QuotaChecker, referrals Referrals, events Emitter, opts Options) *Service {
	s := &Service{
		store:     store,
		companies: companies,
		quota:     quota,
		referrals: referrals,
		events:    events,
		policy:    opts.Policy,
		loc:       opts.Location,
		now:       opts.Now,
	}
	if s.policy == (WagePolicy{}) {
		s.policy = DefaultWagePolicy
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Result is the response of a successful submission.
type Result struct {
	Working      models.Working `json:"working"`
	QueriesCount int            `json:"queries_count"`
}

// Submit validates, normalizes and stores one working for author. Nothing
// is written before the quota check; a failure at any step leaves no
// working behind.
func (s *Service) Submit(ctx context.Context, author models.Author, raw map[string]any) (*Result, error) {
	form := Extract(raw)
	now := s.now().In(s.loc)

	common, err := ParseCommon(form, now)
	if err != nil {
		return nil, err
	}
	wt, err := ParseWorkingTime(form)
	if err != nil {
		return nil, err
	}
	sg, err := ParseSalary(form)
	if err != nil {
		return nil, err
	}
	if wt == nil && sg == nil {
		return nil, apperr.Validation("working time or salary information is required")
	}

	w := s.build(author, common, wt, sg, now)

	w.Company, err = s.companies.Resolve(ctx, common.CompanyID, common.CompanyQuery)
	if err != nil {
		return nil, err
	}

	if form.RecommendationString != "" {
		w.RecommendedBy, err = s.referrals.Resolve(ctx, form.RecommendationString)
		if err != nil {
			logger.Warn("recommendation lookup failed, keeping raw token", zap.Error(err))
			w.RecommendedBy = form.RecommendationString
		}
	}

	count, err := s.quota.CheckAndUpdate(ctx, author.Ref())
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	if err := s.store.Insert(ctx, w); err != nil {
		return nil, apperr.Internal(fmt.Errorf("insert working: %w", err))
	}

	if referrer, ok := w.RecommendedBy.(models.UserRef); ok {
		if err := s.referrals.Increment(ctx, referrer); err != nil {
			logger.Warn("recommendation count not updated",
				zap.String("working_id", w.ID.Hex()),
				zap.String("referrer_id", referrer.ID),
				zap.Error(err),
			)
		}
	}

	s.emit(ctx, mq.Event{
		Name:      mq.WorkingCreated,
		WorkingID: w.ID.Hex(),
		CompanyID: w.Company.ID,
		UserID:    author.ID,
	})

	return &Result{Working: w.Public(), QueriesCount: count}, nil
}

// build assembles the record from the parsed groups and derives data_time
// and the wage estimates.
func (s *Service) build(author models.Author, c Common, wt *WorkingTime, sg *SalaryGroup, now time.Time) *models.Working {
	w := &models.Working{
		Author:              &author,
		Company:             models.Company{ID: c.CompanyID},
		JobTitle:            strings.ToUpper(c.JobTitle),
		Sector:              c.Sector,
		Gender:              c.Gender,
		IsCurrentlyEmployed: c.IsCurrentlyEmployed,
		EmploymentType:      c.EmploymentType,
		Status:              c.Status,
		ExtraInfo:           c.ExtraInfo,
		CreatedAt:           now,
		Archive:             models.Archive{IsArchived: false, Reason: ""},
	}

	if c.IsCurrentlyEmployed == "no" {
		year, month := c.EndingYear, c.EndingMonth
		w.JobEndingTimeYear = &year
		w.JobEndingTimeMonth = &month
		w.DataTime = models.DataTime{Year: year, Month: month}
	} else {
		w.DataTime = models.DataTime{Year: now.Year(), Month: int(now.Month())}
	}

	if wt != nil {
		w.WeekWorkTime = &wt.WeekWorkTime
		w.OvertimeFrequency = &wt.OvertimeFrequency
		w.DayPromisedWorkTime = &wt.DayPromisedWorkTime
		w.DayRealWorkTime = &wt.DayRealWorkTime
		w.HasOvertimeSalary = wt.HasOvertimeSalary
		w.IsOvertimeSalaryLegal = wt.IsOvertimeSalaryLegal
		w.HasCompensatoryDayoff = wt.HasCompensatoryDayoff
	}

	if sg != nil {
		salary := sg.Salary
		experience := sg.ExperienceInYear
		w.Salary = &salary
		w.ExperienceInYear = &experience
	}

	// Wages are derived only for records carrying both groups.
	if wt != nil && sg != nil {
		dayReal, week := w.DayRealWorkTime, w.WeekWorkTime
		if v, ok := s.policy.EstimatedHourlyWage(*w.Salary, dayReal, week); ok && reliable(v) {
			w.EstimatedHourlyWage = &v
		}
		if v, ok := s.policy.EstimatedMonthlyWage(*w.Salary, dayReal, week); ok && reliable(v) {
			w.EstimatedMonthlyWage = &v
		}
	}
	return w
}

// Get returns a published view of one working: no author, no referrer.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Working, error) {
	w, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := w.Public()
	pub.Author = nil
	return &pub, nil
}

// Archive sets the moderation flag of a working.
func (s *Service) Archive(ctx context.Context, id primitive.ObjectID, archive models.Archive) (*models.Working, error) {
	if archive.IsArchived && strings.TrimSpace(archive.Reason) == "" {
		return nil, apperr.Validation("reason is required when archiving")
	}
	w, err := s.store.SetArchive(ctx, id, archive)
	if err != nil {
		return nil, err
	}
	if archive.IsArchived {
		s.emit(ctx, mq.Event{Name: mq.WorkingArchived, WorkingID: id.Hex(), CompanyID: w.Company.ID})
	}
	pub := w.Public()
	return &pub, nil
}

func (s *Service) emit(ctx context.Context, ev mq.Event) {
	if s.events != nil {
		s.events.Emit(ctx, ev)
	}
}
