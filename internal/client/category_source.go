package client

import (
	"context"
	"sync"

	"github.com/ignatzorin/gig-marketplace/internal/models"
)

// SourceState описывает состояние загрузки источника категорий.
type SourceState int

const (
	// SourceLoading — данные ещё не получены.
	SourceLoading SourceState = iota
	// SourceLoaded — данные получены и доступны.
	SourceLoaded
	// SourceFailed — последняя загрузка завершилась ошибкой.
	SourceFailed
)

// CategoryLister отдаёт каталог категорий. Реализуется APIClient.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CategorySource кэширует каталог категорий и отслеживает состояние
// загрузки отдельно от UI: компоненты читают State и решают, что показать.
type CategorySource struct {
	lister CategoryLister

	mu         sync.RWMutex
	state      SourceState
	categories []models.Category
	err        error
}

// NewCategorySource создаёт источник в состоянии SourceLoading.
func NewCategorySource(lister CategoryLister) *CategorySource {
	return &CategorySource{lister: lister, state: SourceLoading}
}

// Refresh перечитывает каталог. Ошибка переводит источник в SourceFailed,
// сохранив последние успешно загруженные данные.
func (s *CategorySource) Refresh(ctx context.Context) error {
	categories, err := s.lister.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = SourceFailed
		s.err = err
		return err
	}

	s.state = SourceLoaded
	s.categories = categories
	s.err = nil
	return nil
}

// State возвращает текущее состояние источника.
func (s *CategorySource) State() SourceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Categories возвращает загруженные категории.
func (s *CategorySource) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// Err возвращает ошибку последней загрузки.
func (s *CategorySource) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
