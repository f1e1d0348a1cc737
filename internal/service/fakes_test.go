package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"restaurant-recap/internal/model"
	"restaurant-recap/internal/repository"

	"github.com/google/uuid"
)

// fakeReportRepo is an in-memory store enforcing the (restaurant, date) key.
type fakeReportRepo struct {
	mu        sync.Mutex
	reports   map[uuid.UUID]model.DailyReport
	createErr error
	findErr   error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]model.DailyReport)}
}

func (r *fakeReportRepo) List(_ context.Context, filter repository.ReportFilter) ([]model.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.DailyReport
	for _, rep := range r.reports {
		if filter.RestaurantCode != "" && rep.RestaurantCode != filter.RestaurantCode {
			continue
		}
		if filter.From != nil && rep.ReportDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rep.ReportDate.After(*filter.To) {
			continue
		}
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.After(out[j].ReportDate) })
	return out, nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id uuid.UUID) (*model.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rep, nil
}

func (r *fakeReportRepo) GetMonthly(_ context.Context, year int, month time.Month, code string) ([]model.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.DailyReport
	for _, rep := range r.reports {
		if rep.ReportDate.Year() != year || rep.ReportDate.Month() != month {
			continue
		}
		if code != "" && rep.RestaurantCode != code {
			continue
		}
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.Before(out[j].ReportDate) })
	return out, nil
}

func (r *fakeReportRepo) FindByKey(_ context.Context, code string, date time.Time) (*model.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, rep := range r.reports {
		if rep.RestaurantCode == code && rep.ReportDate.Equal(date) {
			return &rep, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeReportRepo) Create(_ context.Context, report *model.DailyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, rep := range r.reports {
		if rep.RestaurantCode == report.RestaurantCode && rep.ReportDate.Equal(report.ReportDate) {
			return repository.ErrDuplicate
		}
	}
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	r.reports[report.ID] = *report
	return nil
}

func (r *fakeReportRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[id]; !ok {
		return false, nil
	}
	delete(r.reports, id)
	return true, nil
}

func (r *fakeReportRepo) add(report model.DailyReport) model.DailyReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = uuid.New()
	if report.ClientCode == "" {
		report.ClientCode = model.DefaultClientCode
	}
	r.reports[report.ID] = report
	return report
}

func (r *fakeReportRepo) snapshot() map[uuid.UUID]model.DailyReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[uuid.UUID]model.DailyReport, len(r.reports))
	for k, v := range r.reports {
		cp[k] = v
	}
	return cp
}

func (r *fakeReportRepo) restore(reports map[uuid.UUID]model.DailyReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = reports
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (a *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	a.entries = append(a.entries, *entry)
	return nil
}

func (a *fakeAuditRepo) List(_ context.Context, limit, offset int) ([]model.AuditLog, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := int64(len(a.entries))
	if offset >= len(a.entries) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(a.entries) {
		end = len(a.entries)
	}
	return append([]model.AuditLog(nil), a.entries[offset:end]...), total, nil
}

// fakeTx rolls the in-memory stores back when fn fails.
type fakeTx struct {
	reports *fakeReportRepo
	audit   *fakeAuditRepo
}

func (t *fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	saved := t.reports.snapshot()
	t.audit.mu.Lock()
	auditLen := len(t.audit.entries)
	t.audit.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.reports.restore(saved)
		t.audit.mu.Lock()
		t.audit.entries = t.audit.entries[:auditLen]
		t.audit.mu.Unlock()
		return err
	}
	return nil
}

type publishedEvent struct {
	name string
	data interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *fakeNotifier) Publish(event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{name: event, data: data})
}

func (n *fakeNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, 0, len(n.events))
	for _, e := range n.events {
		names = append(names, e.name)
	}
	return names
}

type fakeLocker struct {
	err  error
	keys []string
}

func (l *fakeLocker) Lock(_ context.Context, key string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	return func() {}, nil
}
