package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StockPulse/internal/model"
)

// Repository loads and saves the portfolio.
type Repository interface {
	Load() (*model.Portfolio, error)
	Save(p *model.Portfolio) error
}

// FileRepository keeps the portfolio in a JSON file.
type FileRepository struct {
	Path string
}

// NewFileRepository creates a repository backed by path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

// Load reads the portfolio. Returns an empty portfolio if the file doesn't exist.
func (r *FileRepository) Load() (*model.Portfolio, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Portfolio{}, nil
		}
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	var p model.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}
	return &p, nil
}

// Save writes the portfolio through a temp file so a crash never leaves it half written.
func (r *FileRepository) Save(p *model.Portfolio) error {
	p.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create portfolio dir: %w", err)
		}
	}
	tmp := r.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.Path)
}
