package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/mabego/galeria/internal/models"
)

// ItemModel is an in-memory gallery with a single item. Calls records every method invoked.
type ItemModel struct {
	mu    sync.Mutex
	Calls []string
}

// newMockItem creates an instance of the Item struct with mock data.
func newMockItem() *models.Item {
	return &models.Item{
		ID:          1,
		Title:       "Atardecer en la sierra",
		Description: "Óleo sobre lienzo",
		ImageURL:    "https://cdn.example.com/atardecer.jpg",
		Category:    "paisaje",
		Created:     time.Now(),
	}
}

func (m *ItemModel) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// Called reports whether a method with the given name was invoked.
func (m *ItemModel) Called(call string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if c == call {
			return true
		}
	}
	return false
}

func (m *ItemModel) List(context.Context) ([]*models.Item, error) {
	m.record("List")
	return []*models.Item{newMockItem()}, nil
}

func (m *ItemModel) Get(_ context.Context, id int) (*models.Item, error) {
	m.record("Get")
	switch id {
	case 1:
		return newMockItem(), nil
	default:
		return nil, models.ErrNoRecord
	}
}

func (m *ItemModel) Create(_ context.Context, in models.ItemInput) (*models.Item, error) {
	m.record("Create")
	return &models.Item{ID: 2, Title: in.Title, Description: in.Description, ImageURL: in.ImageURL, Category: in.Category}, nil
}

func (m *ItemModel) Update(_ context.Context, id int, in models.ItemInput) (*models.Item, error) {
	m.record("Update")
	switch id {
	case 1:
		return &models.Item{ID: 1, Title: in.Title, Description: in.Description, ImageURL: in.ImageURL, Category: in.Category}, nil
	default:
		return nil, models.ErrNoRecord
	}
}

func (m *ItemModel) Delete(_ context.Context, id int) error {
	m.record("Delete")
	switch id {
	case 1:
		return nil
	default:
		return models.ErrNoRecord
	}
}
