package reports

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"goodjob/apperr"
	"goodjob/logger"
	"goodjob/models"
	"goodjob/mq"
	"goodjob/utils"
)

const (
	StatusPending = "pending"

	CategoryOther  = "other"
	maxReasonRunes = 500
)

var categories = []string{"inaccurate", "not-a-real-job", "spam", "test", CategoryOther}

// Store persists reports. Insert must fail with a duplicate-key error when
// the reporter already flagged the working.
type Store interface {
	Insert(ctx context.Context, r *models.Report) error
	ListByWorking(ctx context.Context, workingID primitive.ObjectID, page utils.Page) ([]models.Report, error)
}

// Workings is the part of the workings store reports depend on.
type Workings interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Working, error)
	IncrementReportCount(ctx context.Context, id primitive.ObjectID) error
}

// Emitter publishes report events.
type Emitter interface {
	Emit(ctx context.Context, ev mq.Event) bool
}

// Input is the client payload of a report.
type Input struct {
	ReasonCategory string `json:"reason_category"`
	Reason         string `json:"reason"`
}

type Service struct {
	store    Store
	workings Workings
	events   Emitter
	now      func() time.Time
}

// NewService builds a report service. events may be nil.
func NewService(store Store, workings Workings, events Emitter) *Service {
	return &Service{store: store, workings: workings, events: events, now: time.Now}
}

func (in Input) validate() (Input, error) {
	in.ReasonCategory = strings.TrimSpace(in.ReasonCategory)
	in.Reason = strings.TrimSpace(in.Reason)

	if in.ReasonCategory == "" {
		return in, apperr.Validation("reason_category is required")
	}
	if !slices.Contains(categories, in.ReasonCategory) {
		return in, apperr.Validationf("reason_category must be one of %v", categories)
	}
	if in.ReasonCategory == CategoryOther && in.Reason == "" {
		return in, apperr.Validation("reason is required for category other")
	}
	if utf8.RuneCountInString(in.Reason) > maxReasonRunes {
		return in, apperr.Validationf("reason must be at most %d characters", maxReasonRunes)
	}
	return in, nil
}

// Create files a report by reporter against a working. A second report by
// the same reporter is a conflict.
func (s *Service) Create(ctx context.Context, workingID primitive.ObjectID, reporter models.UserRef, in Input) (*models.Report, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.workings.FindByID(ctx, workingID); err != nil {
		return nil, err
	}

	r := &models.Report{
		WorkingID:      workingID,
		ReportedBy:     reporter,
		ReasonCategory: in.ReasonCategory,
		Reason:         in.Reason,
		Status:         StatusPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, err
	}
	// the report is filed; a missed count is only logged
	if err := s.workings.IncrementReportCount(ctx, workingID); err != nil {
		logger.Warn("report count not updated",
			zap.String("working_id", workingID.Hex()),
			zap.String("report_id", r.ID.Hex()),
			zap.Error(err),
		)
	}

	if s.events != nil {
		s.events.Emit(ctx, mq.Event{Name: mq.WorkingReported, WorkingID: workingID.Hex(), UserID: reporter.ID})
	}
	return r, nil
}

// List returns one page of the reports of a working, newest first.
func (s *Service) List(ctx context.Context, workingID primitive.ObjectID, page utils.Page) ([]models.Report, error) {
	if _, err := s.workings.FindByID(ctx, workingID); err != nil {
		return nil, err
	}
	reports, err := s.store.ListByWorking(ctx, workingID, page)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}
