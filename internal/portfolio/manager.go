package portfolio

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"StockPulse/internal/model"
)

// ErrNotFound is returned when a symbol is not held.
var ErrNotFound = errors.New("holding not found")

var hundred = decimal.NewFromInt(100)

// Manager handles portfolio operations with concurrency safety.
type Manager struct {
	mu    sync.Mutex
	state *model.Portfolio
	repo  Repository
	now   func() time.Time
}

// NewManager creates a Manager, loading the current state from repo.
func NewManager(repo Repository) (*Manager, error) {
	state, err := repo.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, repo: repo, now: time.Now}, nil
}

// Snapshot returns a copy of the current portfolio.
func (m *Manager) Snapshot() model.Portfolio {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *m.state
	p.Holdings = append([]model.Holding(nil), m.state.Holdings...)
	return p
}

// Symbols returns held symbols in alphabetical order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbols := make([]string, 0, len(m.state.Holdings))
	for _, h := range m.state.Holdings {
		symbols = append(symbols, h.Symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Add buys shares at price. An existing holding keeps a share-weighted average cost.
func (m *Manager) Add(symbol string, shares, price decimal.Decimal) (model.Holding, error) {
	if !shares.IsPositive() {
		return model.Holding{}, fmt.Errorf("shares must be positive, got %s", shares)
	}
	if !price.IsPositive() {
		return model.Holding{}, fmt.Errorf("price must be positive, got %s", price)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	holdings := append([]model.Holding(nil), m.state.Holdings...)
	h := model.Holding{Symbol: symbol, Shares: shares, CostBasis: price, AddedAt: m.now()}
	merged := false
	for i, cur := range holdings {
		if cur.Symbol != symbol {
			continue
		}
		total := cur.Shares.Add(shares)
		cost := cur.Shares.Mul(cur.CostBasis).Add(shares.Mul(price))
		cur.CostBasis = cost.Div(total)
		cur.Shares = total
		holdings[i] = cur
		h, merged = cur, true
		break
	}
	if !merged {
		holdings = append(holdings, h)
	}

	if err := m.commit(holdings); err != nil {
		return model.Holding{}, err
	}
	return h, nil
}

// Remove drops a holding entirely.
func (m *Manager) Remove(symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, h := range m.state.Holdings {
		if h.Symbol != symbol {
			continue
		}
		holdings := make([]model.Holding, 0, len(m.state.Holdings)-1)
		holdings = append(holdings, m.state.Holdings[:i]...)
		holdings = append(holdings, m.state.Holdings[i+1:]...)
		return m.commit(holdings)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, symbol)
}

// Valuate prices every holding. Holdings without a price are valued at cost.
func (m *Manager) Valuate(prices map[string]float64) model.Valuation {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := model.Valuation{TotalValue: decimal.Zero, TotalCost: decimal.Zero, TotalPnL: decimal.Zero}
	for _, h := range m.state.Holdings {
		price := h.CostBasis
		if p, ok := prices[h.Symbol]; ok && p > 0 {
			price = decimal.NewFromFloat(p)
		}
		cost := h.Shares.Mul(h.CostBasis)
		value := h.Shares.Mul(price)
		pnl := value.Sub(cost)
		pct := decimal.Zero
		if !cost.IsZero() {
			pct = pnl.Div(cost).Mul(hundred).Round(2)
		}
		v.Holdings = append(v.Holdings, model.HoldingValue{
			Holding:       h,
			Price:         price,
			MarketValue:   value,
			UnrealizedPnL: pnl,
			PnLPercent:    pct,
		})
		v.TotalValue = v.TotalValue.Add(value)
		v.TotalCost = v.TotalCost.Add(cost)
		v.TotalPnL = v.TotalPnL.Add(pnl)
	}
	return v
}

// commit persists holdings and only then makes them current.
func (m *Manager) commit(holdings []model.Holding) error {
	next := &model.Portfolio{Holdings: holdings, UpdatedAt: m.now()}
	if err := m.repo.Save(next); err != nil {
		return err
	}
	m.state = next
	return nil
}
