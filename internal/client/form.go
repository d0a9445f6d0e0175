package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/validation"
)

// FormState описывает состояние формы создания объявления.
type FormState int

const (
	// FormLoadingCategories — каталог категорий ещё загружается.
	FormLoadingCategories FormState = iota
	// FormReady — форма готова к вводу.
	FormReady
	// FormSubmitting — отправка выполняется.
	FormSubmitting
	// FormSucceeded — объявление создано.
	FormSucceeded
)

// Ошибки формы.
var (
	ErrCategoriesNotLoaded  = errors.New("категории ещё не загружены")
	ErrUnknownCategory      = errors.New("категория не найдена в каталоге")
	ErrUnknownSubcategory   = errors.New("подкатегория не относится к выбранной категории")
	ErrSubcategoryRequired  = errors.New("подкатегория обязательна")
	ErrFormAlreadySucceeded = errors.New("объявление уже создано")
)

// CreateGigForm — headless состояние формы создания объявления.
// Валидация заголовка выполняется при каждом изменении, выбор категории
// подменяет список подкатегорий и сбрасывает выбранную подкатегорию.
type CreateGigForm struct {
	username string
	source   *CategorySource
	mutator  *Mutator[CreateGigParams, uuid.UUID]

	mu            sync.RWMutex
	state         FormState
	title         string
	titleErr      error
	description   string
	categoryID    uuid.UUID
	subcategoryID uuid.UUID
	options       []models.Subcategory
	submitErr     error
	gigID         uuid.UUID
}

// NewCreateGigForm создаёт форму для продавца с указанным username.
func NewCreateGigForm(username string, source *CategorySource, mutator *Mutator[CreateGigParams, uuid.UUID]) *CreateGigForm {
	form := &CreateGigForm{
		username: username,
		source:   source,
		mutator:  mutator,
		state:    FormLoadingCategories,
		titleErr: validation.ValidateGigTitle(""),
	}
	form.syncSourceState()
	return form
}

// syncSourceState переводит форму в FormReady, когда каталог загружен.
func (f *CreateGigForm) syncSourceState() {
	if f.source.State() == SourceLoaded && f.state == FormLoadingCategories {
		f.state = FormReady
	}
}

// LoadCategories загружает каталог и переводит форму в FormReady.
func (f *CreateGigForm) LoadCategories(ctx context.Context) error {
	if err := f.source.Refresh(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncSourceState()
	return nil
}

// State возвращает текущее состояние формы.
func (f *CreateGigForm) State() FormState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// SetTitle сохраняет заголовок и сразу проверяет его.
func (f *CreateGigForm) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
	f.titleErr = validation.ValidateGigTitle(title)
}

// TitleError возвращает ошибку валидации заголовка, если она есть.
func (f *CreateGigForm) TitleError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.titleErr
}

// SetDescription сохраняет описание. Описание необязательно.
func (f *CreateGigForm) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.description = description
}

// SelectCategory выбирает категорию: список подкатегорий заменяется на
// подкатегории выбранной категории, прежний выбор подкатегории сбрасывается.
func (f *CreateGigForm) SelectCategory(categoryID uuid.UUID) error {
	if f.source.State() != SourceLoaded {
		return ErrCategoriesNotLoaded
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, category := range f.source.Categories() {
		if category.ID == categoryID {
			f.categoryID = categoryID
			f.options = category.Subcategories
			f.subcategoryID = uuid.Nil
			return nil
		}
	}

	return ErrUnknownCategory
}

// SelectSubcategory выбирает подкатегорию из текущего списка опций.
func (f *CreateGigForm) SelectSubcategory(subcategoryID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, option := range f.options {
		if option.ID == subcategoryID {
			f.subcategoryID = subcategoryID
			return nil
		}
	}

	return ErrUnknownSubcategory
}

// SubcategoryOptions возвращает подкатегории выбранной категории.
func (f *CreateGigForm) SubcategoryOptions() []models.Subcategory {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.options
}

// CanSubmit сообщает, допускает ли текущее состояние отправку.
func (f *CreateGigForm) CanSubmit() bool {
	if f.mutator.Pending() {
		return false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state == FormReady && f.titleErr == nil && f.subcategoryID != uuid.Nil
}

// Submit отправляет форму. Невалидный заголовок или пустая подкатегория
// блокируют отправку без обращения к серверу.
func (f *CreateGigForm) Submit(ctx context.Context) error {
	f.mu.Lock()

	switch f.state {
	case FormLoadingCategories:
		f.mu.Unlock()
		return ErrCategoriesNotLoaded
	case FormSucceeded:
		f.mu.Unlock()
		return ErrFormAlreadySucceeded
	case FormSubmitting:
		f.mu.Unlock()
		return ErrMutationPending
	}

	if f.titleErr != nil {
		err := f.titleErr
		f.mu.Unlock()
		return err
	}
	if f.subcategoryID == uuid.Nil {
		f.mu.Unlock()
		return ErrSubcategoryRequired
	}

	params := CreateGigParams{
		Title:         f.title,
		Description:   f.description,
		SubcategoryID: f.subcategoryID,
	}
	f.state = FormSubmitting
	f.submitErr = nil
	f.mu.Unlock()

	gigID, err := f.mutator.Call(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = FormReady
		f.submitErr = err
		return err
	}

	f.state = FormSucceeded
	f.gigID = gigID
	return nil
}

// SubmitError возвращает ошибку последней отправки.
func (f *CreateGigForm) SubmitError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitErr
}

// GigID возвращает идентификатор созданного объявления.
func (f *CreateGigForm) GigID() uuid.UUID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.gigID
}

// RedirectPath возвращает путь страницы редактирования созданного
// объявления. До успешной отправки путь пустой.
func (f *CreateGigForm) RedirectPath() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.state != FormSucceeded {
		return ""
	}
	return fmt.Sprintf("/seller/%s/manage-gigs/edit/%s", f.username, f.gigID)
}
