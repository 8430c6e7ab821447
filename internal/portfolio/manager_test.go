package portfolio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "portfolio.json")
	m, err := NewManager(NewFileRepository(path))
	require.NoError(t, err)
	return m, path
}

func TestManager_AddAveragesCost(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Add("AAPL", d("10"), d("100"))
	require.NoError(t, err)
	h, err := m.Add("AAPL", d("30"), d("120"))
	require.NoError(t, err)

	assert.True(t, h.Shares.Equal(d("40")))
	assert.True(t, h.CostBasis.Equal(d("115")), "got %s", h.CostBasis)
	assert.Len(t, m.Snapshot().Holdings, 1)
}

func TestManager_RejectsNonPositive(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Add("AAPL", d("0"), d("100"))
	assert.Error(t, err)
	_, err = m.Add("AAPL", d("1"), d("-5"))
	assert.Error(t, err)
	assert.Empty(t, m.Symbols())
}

func TestManager_RemoveAndSymbols(t *testing.T) {
	m, _ := newTestManager(t)
	for _, s := range []string{"MSFT", "AAPL", "NVDA"} {
		_, err := m.Add(s, d("1"), d("10"))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, m.Symbols())

	require.NoError(t, m.Remove("MSFT"))
	assert.Equal(t, []string{"AAPL", "NVDA"}, m.Symbols())
	assert.ErrorIs(t, m.Remove("MSFT"), ErrNotFound)
}

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	m, path := newTestManager(t)
	_, err := m.Add("TSLA", d("2.5"), d("200.10"))
	require.NoError(t, err)

	reloaded, err := NewManager(NewFileRepository(path))
	require.NoError(t, err)
	snap := reloaded.Snapshot()
	require.Len(t, snap.Holdings, 1)
	assert.Equal(t, "TSLA", snap.Holdings[0].Symbol)
	assert.True(t, snap.Holdings[0].Shares.Equal(d("2.5")))
	assert.True(t, snap.Holdings[0].CostBasis.Equal(d("200.1")))
	assert.False(t, snap.UpdatedAt.IsZero())
}

func TestManager_Valuate(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Add("AAPL", d("10"), d("100"))
	require.NoError(t, err)
	_, err = m.Add("MSFT", d("4"), d("50"))
	require.NoError(t, err)

	v := m.Valuate(map[string]float64{"AAPL": 110})
	require.Len(t, v.Holdings, 2)

	aapl := v.Holdings[0]
	assert.True(t, aapl.MarketValue.Equal(d("1100")))
	assert.True(t, aapl.UnrealizedPnL.Equal(d("100")))
	assert.True(t, aapl.PnLPercent.Equal(d("10")))

	msft := v.Holdings[1]
	assert.True(t, msft.UnrealizedPnL.IsZero(), "unpriced holdings are valued at cost")

	assert.True(t, v.TotalValue.Equal(d("1300")))
	assert.True(t, v.TotalCost.Equal(d("1200")))
	assert.True(t, v.TotalPnL.Equal(d("100")))
}

func TestFileRepository_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	p, err := NewFileRepository(filepath.Join(dir, "missing.json")).Load()
	require.NoError(t, err)
	assert.Empty(t, p.Holdings)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = NewFileRepository(bad).Load()
	assert.Error(t, err)
}

type failingRepo struct {
	state   *model.Portfolio
	saveErr error
}

func (r *failingRepo) Load() (*model.Portfolio, error) { return r.state, nil }
func (r *failingRepo) Save(*model.Portfolio) error { return r.saveErr }

func TestManager_FailedSaveLeavesStateUnchanged(t *testing.T) {
	repo := &failingRepo{state: &model.Portfolio{}}
	m, err := NewManager(repo)
	require.NoError(t, err)

	_, err = m.Add("MSFT", d("2"), d("300"))
	require.NoError(t, err)

	repo.saveErr = errors.New("disk full")

	_, err = m.Add("AAPL", d("1"), d("10"))
	assert.EqualError(t, err, "disk full")
	_, err = m.Add("MSFT", d("2"), d("100"))
	assert.EqualError(t, err, "disk full")
	assert.EqualError(t, m.Remove("MSFT"), "disk full")

	assert.Equal(t, []string{"MSFT"}, m.Symbols())
	h := m.Snapshot().Holdings[0]
	assert.True(t, h.Shares.Equal(d("2")))
	assert.True(t, h.CostBasis.Equal(d("300")))
}
