// Package memory is an in-process ReportRepository used when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"archiveweb/internal/model"
	"archiveweb/internal/repository"
)

type ReportMemory struct {
	mu      sync.RWMutex
	reports map[string]model.Report
}

func NewReportMemory() *ReportMemory {
	return &ReportMemory{reports: make(map[string]model.Report)}
}

var _ repository.ReportRepository = (*ReportMemory)(nil)

func (m *ReportMemory) Create(_ context.Context, r *model.Report) (*model.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[r.Key]; ok {
		return nil, repository.ErrKeyExists
	}
	m.reports[r.Key] = *r
	out := *r
	return &out, nil
}

func (m *ReportMemory) FindByKey(_ context.Context, key string) (*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (m *ReportMemory) ListByDocument(_ context.Context, documentID int64, pq repository.PageQuery) (*repository.PageResult[model.Report], error) {
	m.mu.RLock()
	items := make([]model.Report, 0)
	for _, r := range m.reports {
		if r.DocumentID == documentID {
			items = append(items, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].Key > items[j].Key
	})

	total := len(items)
	start := min(max(pq.Offset, 0), total)
	end := total
	if pq.Limit > 0 {
		end = min(start+pq.Limit, total)
	}
	return &repository.PageResult[model.Report]{Items: items[start:end], Total: total}, nil
}
