package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ignatzorin/gig-marketplace/internal/auth"
	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/pkg/apperror"
	"github.com/ignatzorin/gig-marketplace/internal/repository"
)

// mockCatalogStore реализует CatalogStore для тестов.
type mockCatalogStore struct {
	categories  []models.Category
	seedCalls   int
	lastEntries []repository.SeedCategory
	inserted    int64
	seedErr     error
}

func (m *mockCatalogStore) GetCategoriesWithSubcategories(ctx context.Context) ([]models.Category, error) {
	return m.categories, nil
}

func (m *mockCatalogStore) SeedCatalog(ctx context.Context, entries []repository.SeedCategory) (int64, error) {
	m.seedCalls++
	m.lastEntries = entries
	return m.inserted, m.seedErr
}

// mockCatalogNotifier считает вызовы CatalogUpdated.
type mockCatalogNotifier struct {
	calls int
}

func (m *mockCatalogNotifier) CatalogUpdated(ctx context.Context) {
	m.calls++
}

func TestCatalogService_SeedCatalog_Unauthorized(t *testing.T) {
	store := &mockCatalogStore{}
	service := NewCatalogService(store, nil, nil)

	_, err := service.SeedCatalog(context.Background(), auth.Anonymous())
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("ожидалась ошибка авторизации, получили %v", err)
	}

	if store.seedCalls != 0 {
		t.Fatalf("сидирование не должно было запускаться")
	}
}

func TestCatalogService_SeedCatalog_InsertsFixedSet(t *testing.T) {
	store := &mockCatalogStore{inserted: 42}
	notifier := &mockCatalogNotifier{}
	service := NewCatalogService(store, notifier, nil)

	inserted, err := service.SeedCatalog(context.Background(), auth.Verified("user|seed"))
	if err != nil {
		t.Fatalf("сидирование вернуло ошибку: %v", err)
	}

	if inserted != 42 {
		t.Fatalf("ожидалось 42 вставки, получили %d", inserted)
	}

	if len(store.lastEntries) != 10 {
		t.Fatalf("ожидалось 10 категорий в фиксированном наборе, получили %d", len(store.lastEntries))
	}

	for _, entry := range store.lastEntries {
		if entry.Name == "" || len(entry.Subcategories) == 0 {
			t.Fatalf("категория %q должна иметь имя и подкатегории", entry.Name)
		}
	}

	if notifier.calls != 1 {
		t.Fatalf("подписчики должны быть оповещены один раз, получили %d", notifier.calls)
	}
}

func TestCatalogService_SeedCatalog_RepeatIsIdempotent(t *testing.T) {
	store := &mockCatalogStore{inserted: 0}
	notifier := &mockCatalogNotifier{}
	service := NewCatalogService(store, notifier, nil)

	inserted, err := service.SeedCatalog(context.Background(), auth.Verified("user|seed"))
	if err != nil {
		t.Fatalf("повторное сидирование вернуло ошибку: %v", err)
	}

	if inserted != 0 {
		t.Fatalf("повторный запуск не должен ничего вставлять, получили %d", inserted)
	}

	// Без вставок не должно быть и рассылки
	if notifier.calls != 0 {
		t.Fatalf("подписчики не должны оповещаться без изменений")
	}
}
