package services

import (
	"errors"
	"testing"
	"time"

	"scadaval/domain/core"
	"scadaval/domain/deviation"
	"scadaval/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTable struct{ name string }

func (s stubTable) Source() string    { return s.name }
func (s stubTable) Columns() []string { return []string{"A", "B"} }
func (s stubTable) RowCount() int     { return 0 }
func (s stubTable) NumericColumn(string) ([]deviation.Value, error) {
	return nil, nil
}

func TestDataService_PutGet(t *testing.T) {
	svc := NewDataService(time.Minute, internal.Discard())

	id := svc.Put(stubTable{name: "a.xlsx"})
	entry, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "a.xlsx", entry.Table.Source())

	_, err = svc.Get(core.NewDatasetID())
	assert.True(t, errors.Is(err, core.ErrDatasetNotFound))
}

func TestDataService_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewDataService(10*time.Minute, internal.Discard())
	svc.now = func() time.Time { return now }

	old := svc.Put(stubTable{name: "old.xlsx"})
	now = now.Add(5 * time.Minute)
	fresh := svc.Put(stubTable{name: "fresh.xlsx"})

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, fresh, list[0].ID, "newest first")

	now = now.Add(6 * time.Minute)
	_, err := svc.Get(old)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.Len(t, svc.List(), 1)

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 1, svc.Purge())
	assert.Empty(t, svc.List())
}

func TestDataService_NoTTL(t *testing.T) {
	now := time.Now()
	svc := NewDataService(0, internal.Discard())
	svc.now = func() time.Time { return now }

	id := svc.Put(stubTable{name: "kept.csv"})
	now = now.Add(1000 * time.Hour)

	_, err := svc.Get(id)
	assert.NoError(t, err)
	assert.Zero(t, svc.Purge())
}
