package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiveweb/internal/model"
	"archiveweb/internal/repository"
)

func TestReportMemory(t *testing.T) {
	ctx := context.Background()
	m := NewReportMemory()
	base := time.UnixMilli(1700000000000)

	for i, key := range []string{"report_1_1", "report_1_2", "report_1_3"} {
		_, err := m.Create(ctx, &model.Report{Key: key, DocumentID: 1, CreatedAt: base.Add(time.Duration(i) * time.Millisecond)})
		require.NoError(t, err)
	}
	_, err := m.Create(ctx, &model.Report{Key: "report_2_1", DocumentID: 2, CreatedAt: base})
	require.NoError(t, err)

	_, err = m.Create(ctx, &model.Report{Key: "report_1_1", DocumentID: 1})
	assert.ErrorIs(t, err, repository.ErrKeyExists)

	got, err := m.FindByKey(ctx, "report_2_1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.DocumentID)

	_, err = m.FindByKey(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	page, err := m.ListByDocument(ctx, 1, repository.PageQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "report_1_3", page.Items[0].Key)

	page, err = m.ListByDocument(ctx, 1, repository.PageQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "report_1_1", page.Items[0].Key)

	page, err = m.ListByDocument(ctx, 1, repository.PageQuery{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = m.ListByDocument(ctx, 1, repository.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}
