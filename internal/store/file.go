package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
)

// FileOrders persists orders as a single JSON array file. Every insert
// rewrites the whole file, so a process-level mutex serializes writers;
// the deployment model assumes a single process owns the file. Ids are
// generated uuids, never derived from the array length.
type FileOrders struct {
	mu   sync.Mutex
	path string
}

// NewFileOrders returns a store backed by the file at path. The file is
// created on first insert.
func NewFileOrders(path string) *FileOrders {
	return &FileOrders{path: path}
}

func (s *FileOrders) InsertOrder(_ context.Context, o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.read()
	if err != nil {
		return models.Order{}, err
	}

	o.ID = uuid.New().String()
	orders = append(orders, o)

	if err := s.write(orders); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *FileOrders) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *FileOrders) read() ([]models.Order, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read orders file: %w", err)
	}
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode orders file: %w", err)
	}
	return orders, nil
}

func (s *FileOrders) write(orders []models.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write orders file: %w", err)
	}
	return nil
}
