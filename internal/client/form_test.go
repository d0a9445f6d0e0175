package client

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/gig-marketplace/internal/models"
)

// staticLister отдаёт фиксированный каталог без сети.
type staticLister struct {
	categories []models.Category
	err        error
}

func (s *staticLister) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, s.err
}

func testCatalog() ([]models.Category, uuid.UUID, uuid.UUID, uuid.UUID) {
	design := models.Category{ID: uuid.New(), Name: "Design"}
	design.Subcategories = []models.Subcategory{
		{ID: uuid.New(), CategoryID: design.ID, Name: "Logo Design"},
		{ID: uuid.New(), CategoryID: design.ID, Name: "UI/UX"},
	}

	writing := models.Category{ID: uuid.New(), Name: "Writing"}
	writing.Subcategories = []models.Subcategory{
		{ID: uuid.New(), CategoryID: writing.ID, Name: "Copywriting"},
	}

	return []models.Category{design, writing}, design.ID, design.Subcategories[0].ID, writing.ID
}

func newReadyForm(t *testing.T) (*CreateGigForm, uuid.UUID, uuid.UUID, uuid.UUID, *int) {
	t.Helper()

	categories, designID, logoID, writingID := testCatalog()
	source := NewCategorySource(&staticLister{categories: categories})

	calls := 0
	mutator := NewMutator(func(ctx context.Context, in CreateGigParams) (uuid.UUID, error) {
		calls++
		return uuid.New(), nil
	})

	form := NewCreateGigForm("ivan", source, mutator)
	if err := form.LoadCategories(context.Background()); err != nil {
		t.Fatalf("загрузка категорий вернула ошибку: %v", err)
	}
	if form.State() != FormReady {
		t.Fatalf("после загрузки форма должна быть готова, состояние %d", form.State())
	}

	return form, designID, logoID, writingID, &calls
}

func TestCreateGigForm_TitleValidationOnChange(t *testing.T) {
	form, _, _, _, _ := newReadyForm(t)

	form.SetTitle("коротко")
	if form.TitleError() == nil {
		t.Fatalf("заголовок короче 20 символов должен отклоняться")
	}

	form.SetTitle(strings.Repeat("о", 101))
	if form.TitleError() == nil {
		t.Fatalf("заголовок длиннее 100 символов должен отклоняться")
	}

	// Граница в 100 символов считается в рунах, не в байтах
	form.SetTitle(strings.Repeat("о", 100))
	if err := form.TitleError(); err != nil {
		t.Fatalf("заголовок из 100 рун должен проходить: %v", err)
	}

	form.SetTitle(strings.Repeat("о", 20))
	if err := form.TitleError(); err != nil {
		t.Fatalf("заголовок из 20 рун должен проходить: %v", err)
	}
}

func TestCreateGigForm_CategoryChangeClearsSubcategory(t *testing.T) {
	form, designID, logoID, writingID, _ := newReadyForm(t)

	if err := form.SelectCategory(designID); err != nil {
		t.Fatalf("выбор категории вернул ошибку: %v", err)
	}
	if len(form.SubcategoryOptions()) != 2 {
		t.Fatalf("ожидалось 2 подкатегории, получили %d", len(form.SubcategoryOptions()))
	}

	if err := form.SelectSubcategory(logoID); err != nil {
		t.Fatalf("выбор подкатегории вернул ошибку: %v", err)
	}

	// Смена категории заменяет опции и сбрасывает выбранную подкатегорию
	if err := form.SelectCategory(writingID); err != nil {
		t.Fatalf("смена категории вернула ошибку: %v", err)
	}
	if len(form.SubcategoryOptions()) != 1 {
		t.Fatalf("ожидалась 1 подкатегория, получили %d", len(form.SubcategoryOptions()))
	}

	if err := form.SelectSubcategory(logoID); !errors.Is(err, ErrUnknownSubcategory) {
		t.Fatalf("подкатегория прежней категории должна отклоняться, получили %v", err)
	}
}

func TestCreateGigForm_SubmitRequiresValidInput(t *testing.T) {
	form, designID, logoID, _, calls := newReadyForm(t)

	// Невалидный заголовок блокирует отправку без обращения к серверу
	form.SetTitle("коротко")
	if err := form.Submit(context.Background()); err == nil {
		t.Fatalf("отправка с невалидным заголовком должна отклоняться")
	}
	if *calls != 0 {
		t.Fatalf("мутация не должна была вызываться")
	}

	form.SetTitle("Сделаю дизайн логотипа для вашего бренда")
	if err := form.Submit(context.Background()); !errors.Is(err, ErrSubcategoryRequired) {
		t.Fatalf("отправка без подкатегории должна отклоняться, получили %v", err)
	}

	if err := form.SelectCategory(designID); err != nil {
		t.Fatalf("выбор категории вернул ошибку: %v", err)
	}
	if err := form.SelectSubcategory(logoID); err != nil {
		t.Fatalf("выбор подкатегории вернул ошибку: %v", err)
	}

	if !form.CanSubmit() {
		t.Fatalf("форма с валидными данными должна допускать отправку")
	}

	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("отправка вернула ошибку: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("ожидался один вызов мутации, получили %d", *calls)
	}

	if form.State() != FormSucceeded {
		t.Fatalf("после успеха форма должна быть в FormSucceeded")
	}

	wantPath := "/seller/ivan/manage-gigs/edit/" + form.GigID().String()
	if form.RedirectPath() != wantPath {
		t.Fatalf("неверный путь редиректа: %q != %q", form.RedirectPath(), wantPath)
	}

	// Повторная отправка после успеха отклоняется
	if err := form.Submit(context.Background()); !errors.Is(err, ErrFormAlreadySucceeded) {
		t.Fatalf("повторная отправка должна отклоняться, получили %v", err)
	}
}

func TestCreateGigForm_SubmitErrorReturnsToReady(t *testing.T) {
	categories, designID, _, _ := testCatalog()
	source := NewCategorySource(&staticLister{categories: categories})

	wantErr := errors.New("продавец не найден")
	mutator := NewMutator(func(ctx context.Context, in CreateGigParams) (uuid.UUID, error) {
		return uuid.Nil, wantErr
	})

	form := NewCreateGigForm("ivan", source, mutator)
	if err := form.LoadCategories(context.Background()); err != nil {
		t.Fatalf("загрузка категорий вернула ошибку: %v", err)
	}

	form.SetTitle("Сделаю дизайн логотипа для вашего бренда")
	if err := form.SelectCategory(designID); err != nil {
		t.Fatalf("выбор категории вернул ошибку: %v", err)
	}
	if err := form.SelectSubcategory(form.SubcategoryOptions()[0].ID); err != nil {
		t.Fatalf("выбор подкатегории вернул ошибку: %v", err)
	}

	if err := form.Submit(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("ожидалась ошибка мутации, получили %v", err)
	}

	if form.State() != FormReady {
		t.Fatalf("после ошибки форма должна вернуться в FormReady")
	}
	if !errors.Is(form.SubmitError(), wantErr) {
		t.Fatalf("ошибка отправки должна сохраняться")
	}
	if form.RedirectPath() != "" {
		t.Fatalf("путь редиректа должен быть пустым до успеха")
	}
}

func TestCategorySource_FailedKeepsLastData(t *testing.T) {
	categories, _, _, _ := testCatalog()
	lister := &staticLister{categories: categories}
	source := NewCategorySource(lister)

	if source.State() != SourceLoading {
		t.Fatalf("новый источник должен быть в SourceLoading")
	}

	if err := source.Refresh(context.Background()); err != nil {
		t.Fatalf("загрузка вернула ошибку: %v", err)
	}
	if source.State() != SourceLoaded {
		t.Fatalf("после загрузки источник должен быть в SourceLoaded")
	}

	lister.err = errors.New("сеть недоступна")
	if err := source.Refresh(context.Background()); err == nil {
		t.Fatalf("ожидалась ошибка загрузки")
	}

	if source.State() != SourceFailed {
		t.Fatalf("после ошибки источник должен быть в SourceFailed")
	}
	if len(source.Categories()) != 2 {
		t.Fatalf("последние успешные данные должны сохраняться")
	}
}
