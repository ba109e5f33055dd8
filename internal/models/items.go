package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mabego/galeria/internal/endpoints"
)

type ItemModelInterface interface {
	List(ctx context.Context) ([]*Item, error)
	Get(ctx context.Context, id int) (*Item, error)
	Create(ctx context.Context, in ItemInput) (*Item, error)
	Update(ctx context.Context, id int, in ItemInput) (*Item, error)
	Delete(ctx context.Context, id int) error
}

type Item struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Created     time.Time `json:"created_at"`
}

// ItemInput is the writable part of an Item.
type ItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

// APIError is returned for any non-2xx response other than 404.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gallery api: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// ItemModel wraps the remote gallery API addressed by the endpoint table.
type ItemModel struct {
	Client    *http.Client
	Endpoints endpoints.Gallery
}

func (m *ItemModel) List(ctx context.Context) ([]*Item, error) {
	var items []*Item

	err := m.do(ctx, http.MethodGet, m.Endpoints.GetItems(), nil, &items)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (m *ItemModel) Get(ctx context.Context, id int) (*Item, error) {
	item := &Item{}

	err := m.do(ctx, http.MethodGet, m.Endpoints.GetItem(id), nil, item)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (m *ItemModel) Create(ctx context.Context, in ItemInput) (*Item, error) {
	item := &Item{}

	err := m.do(ctx, http.MethodPost, m.Endpoints.CreateItem(), in, item)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (m *ItemModel) Update(ctx context.Context, id int, in ItemInput) (*Item, error) {
	item := &Item{}

	err := m.do(ctx, http.MethodPut, m.Endpoints.UpdateItem(id), in, item)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (m *ItemModel) Delete(ctx context.Context, id int) error {
	return m.do(ctx, http.MethodDelete, m.Endpoints.DeleteItem(id), nil, nil)
}

// do sends a JSON request and decodes a JSON response into dst when dst is non-nil.
func (m *ItemModel) do(ctx context.Context, method, url string, body, dst any) error {
	var reqBody io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("gallery api: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoRecord
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	if dst == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
