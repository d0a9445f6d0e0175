package validation

import (
	"strings"
	"testing"
)

func TestValidateGigTitle(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"пустой", "", true},
		{"короче 20 символов", "короткий заголовок", true},
		{"ровно 20 символов", strings.Repeat("а", 20), false},
		{"ровно 100 символов", strings.Repeat("а", 100), false},
		{"длиннее 100 символов", strings.Repeat("а", 101), true},
		{"обычный заголовок", "Разработаю backend сервис на Go", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGigTitle(tc.title)
			if tc.wantErr && err == nil {
				t.Fatalf("ожидалась ошибка для %q", tc.title)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("не ожидалась ошибка для %q: %v", tc.title, err)
			}
		})
	}
}

func TestValidateLength_CountsRunes(t *testing.T) {
	// Кириллица: 25 рун, 50 байт
	value := strings.Repeat("ю", 25)
	if err := ValidateLength("поле", value, 20, 100); err != nil {
		t.Fatalf("длина должна считаться в рунах: %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("seller@example.com"); err != nil {
		t.Fatalf("валидный email отклонён: %v", err)
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Fatalf("невалидный email должен отклоняться")
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("ivan_petrov"); err != nil {
		t.Fatalf("валидное имя отклонено: %v", err)
	}
	if err := ValidateUsername("1ivan"); err == nil {
		t.Fatalf("имя с цифры должно отклоняться")
	}
	if err := ValidateUsername("иван"); err == nil {
		t.Fatalf("кириллица в имени должна отклоняться")
	}
}
