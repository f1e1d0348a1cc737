package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"restaurant-recap/internal/lock"
	"restaurant-recap/internal/logger"
	"restaurant-recap/internal/model"
	"restaurant-recap/internal/parser"
	"restaurant-recap/internal/repository"
	ws "restaurant-recap/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// Notifier pushes report events to connected clients
type Notifier interface {
	Publish(event string, data interface{})
}

// Actor is the authenticated caller of a write operation
type Actor struct {
	ID   string
	Role string
}

// DTOs
type ImportRequest struct {
	RestaurantCode string
	ReportDate     time.Time
	Files          parser.Files
	Replace        bool
	Actor          Actor
}

type ImportResult struct {
	ReportID       string `json:"report_id"`
	RestaurantCode string `json:"restaurant_code"`
	ReportDate     string `json:"report_date"`
	Replaced       bool   `json:"replaced"`
}

type ReportListQuery struct {
	RestaurantCode string
	From           *time.Time
	To             *time.Time
	Page           int
	Limit          int
}

type ReportSummary struct {
	ID               string              `json:"id"`
	ClientCode       string              `json:"client_code"`
	RestaurantCode   string              `json:"restaurant_code"`
	ReportDate       string              `json:"report_date"`
	CreatedAt        time.Time           `json:"created_at"`
	NetRevenue       decimal.NullDecimal `json:"net_revenue"`
	GrossRevenue     decimal.NullDecimal `json:"gross_revenue"`
	TransactionCount *int64              `json:"transaction_count"`
}

// Websocket payload
type ReportEvent struct {
	ReportID       string `json:"report_id"`
	RestaurantCode string `json:"restaurant_code"`
	ReportDate     string `json:"report_date,omitempty"`
}

// ReportService keeps at most one report per restaurant and day.
type ReportService interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
	Replace(ctx context.Context, req ImportRequest) (*ImportResult, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.DailyReport, error)
	List(ctx context.Context, query ReportListQuery) ([]ReportSummary, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	locker     lock.Locker
	notifier   Notifier
	location   *time.Location
	now        func() time.Time
}

func NewReportService(
	reportRepo repository.ReportRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	locker lock.Locker,
	notifier Notifier,
	location *time.Location,
) ReportService {
	return newReportService(reportRepo, auditRepo, txManager, locker, notifier, location)
}

func newReportService(
	reportRepo repository.ReportRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	locker lock.Locker,
	notifier Notifier,
	location *time.Location,
) *reportService {
	if locker == nil {
		locker = lock.NoopLocker{}
	}
	if location == nil {
		location = time.UTC
	}
	return &reportService{
		reportRepo: reportRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		locker:     locker,
		notifier:   notifier,
		location:   location,
		now:        time.Now,
	}
}

// Import stores a new report. With req.Replace it behaves as Replace.
func (s *reportService) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if req.Replace {
		return s.Replace(ctx, req)
	}
	return s.store(ctx, req, false)
}

// Replace swaps the existing report of the key for a new one. Delete and
// insert share one transaction: on failure the previous report is kept.
func (s *reportService) Replace(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	return s.store(ctx, req, true)
}

func (s *reportService) store(ctx context.Context, req ImportRequest, replace bool) (*ImportResult, error) {
	date := dateOnly(req.ReportDate)
	if date.After(s.today()) {
		return nil, fmt.Errorf("%w: %s", ErrFutureDateRejected, date.Format(dateLayout))
	}
	if missing := req.Files.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteFileSet, strings.Join(missing, ", "))
	}
	code := parser.NormalizeRestaurantCode(req.RestaurantCode)
	if code == "" {
		return nil, fmt.Errorf("%w: restaurant code is required", ErrValidation)
	}

	report, err := parser.Parse(code, date, req.Files)
	if err != nil {
		return nil, mapError(err)
	}

	release, err := s.locker.Lock(ctx, report.Key())
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			return nil, ErrImportInProgress
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer release()

	var previousID string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.reportRepo.FindByKey(txCtx, code, date)
		switch {
		case err == nil && !replace:
			return ErrAlreadyImported
		case err == nil:
			previousID = existing.ID.String()
			if _, err := s.reportRepo.Delete(txCtx, existing.ID); err != nil {
				return fmt.Errorf("failed to delete previous report: %w", err)
			}
		case errors.Is(err, repository.ErrNotFound) && replace:
			return ErrNotFound
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("failed to look up report: %w", err)
		}

		if err := s.reportRepo.Create(txCtx, report); err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}

		action := model.ActionImportReport
		if replace {
			action = model.ActionReplaceReport
		}
		details := map[string]interface{}{
			"restaurant_code": code,
			"report_date":     date.Format(dateLayout),
			"files":           fileNames(req.Files),
			"has_kpi":         report.KPI != nil,
		}
		if previousID != "" {
			details["previous_report_id"] = previousID
		}
		return s.audit(txCtx, req.Actor, action, report, details)
	})
	if err != nil {
		return nil, mapError(err)
	}

	event := ws.EventReportImported
	if replace {
		event = ws.EventReportReplaced
	}
	s.publish(event, ReportEvent{
		ReportID:       report.ID.String(),
		RestaurantCode: code,
		ReportDate:     date.Format(dateLayout),
	})

	logger.WithContext(ctx).WithFields(logrus.Fields{
		"report_id": report.ID.String(),
		"key":       report.Key(),
		"replaced":  replace,
	}).Info("Daily report imported")

	return &ImportResult{
		ReportID:       report.ID.String(),
		RestaurantCode: code,
		ReportDate:     date.Format(dateLayout),
		Replaced:       replace,
	}, nil
}

// Delete is idempotent: deleting a missing report succeeds.
func (s *reportService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	var deleted bool
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.reportRepo.Delete(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		if !deleted {
			return nil
		}
		return s.audit(txCtx, actor, model.ActionDeleteReport, &model.DailyReport{ID: id}, nil)
	})
	if err != nil {
		return mapError(err)
	}

	if deleted {
		s.publish(ws.EventReportDeleted, ReportEvent{ReportID: id.String()})
		logger.WithContext(ctx).WithField("report_id", id.String()).Info("Daily report deleted")
	}
	return nil
}

func (s *reportService) Get(ctx context.Context, id uuid.UUID) (*model.DailyReport, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context, query ReportListQuery) ([]ReportSummary, error) {
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return nil, fmt.Errorf("%w: start_date is after end_date", ErrValidation)
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	reports, err := s.reportRepo.List(ctx, repository.ReportFilter{
		RestaurantCode: parser.NormalizeRestaurantCode(query.RestaurantCode),
		From:           query.From,
		To:             query.To,
		Limit:          query.Limit,
		Offset:         (query.Page - 1) * query.Limit,
	})
	if err != nil {
		return nil, mapError(err)
	}

	res := make([]ReportSummary, 0, len(reports))
	for _, r := range reports {
		res = append(res, ReportSummary{
			ID:               r.ID.String(),
			ClientCode:       r.ClientCode,
			RestaurantCode:   r.RestaurantCode,
			ReportDate:       r.ReportDate.Format(dateLayout),
			CreatedAt:        r.CreatedAt,
			NetRevenue:       r.NetRevenue,
			GrossRevenue:     r.GrossRevenue,
			TransactionCount: r.TransactionCount,
		})
	}
	return res, nil
}

func (s *reportService) audit(ctx context.Context, actor Actor, action string, report *model.DailyReport, details map[string]interface{}) error {
	payload := []byte("{}")
	if details != nil {
		var err error
		if payload, err = json.Marshal(details); err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
	}

	entry := &model.AuditLog{
		Actor:     actor.ID,
		ActorRole: actor.Role,
		Action:    action,
		EntityID:  report.ID.String(),
		Details:   string(payload),
	}
	if report.RestaurantCode != "" {
		entry.EntityName = report.Key()
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *reportService) publish(event string, data interface{}) {
	if s.notifier != nil {
		s.notifier.Publish(event, data)
	}
}

// today is the current calendar day in the restaurants' time zone.
func (s *reportService) today() time.Time {
	return dateOnly(s.now().In(s.location))
}

// dateOnly drops the clock and zone of t, keeping its calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func fileNames(files parser.Files) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
