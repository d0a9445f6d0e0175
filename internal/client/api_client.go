package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gig-marketplace/internal/models"
)

// APIClient — HTTP клиент к серверу площадки. Используется headless
// клиентскими компонентами (форма создания объявления, источник категорий).
type APIClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewAPIClient создаёт клиента с указанным базовым URL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken устанавливает access токен для последующих запросов.
func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login авторизует пользователя и запоминает access токен.
func (c *APIClient) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", payload, &out); err != nil {
		return err
	}

	c.SetToken(out.AccessToken)
	return nil
}

// ListCategories возвращает каталог категорий с подкатегориями.
func (c *APIClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/catalog/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CreateGigParams описывает параметры создания объявления.
type CreateGigParams struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SubcategoryID uuid.UUID `json:"subcategory_id"`
}

// CreateGig создаёт объявление и возвращает его идентификатор.
func (c *APIClient) CreateGig(ctx context.Context, params CreateGigParams) (uuid.UUID, error) {
	var out struct {
		GigID uuid.UUID `json:"gig_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/gigs", params, &out); err != nil {
		return uuid.Nil, err
	}
	return out.GigID, nil
}

// doJSON выполняет запрос с JSON телом и декодирует JSON ответ.
func (c *APIClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: не удалось сериализовать запрос: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: не удалось создать запрос: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: запрос %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("client: %s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("client: %s %s: статус %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: не удалось декодировать ответ %s %s: %w", method, path, err)
	}
	return nil
}
