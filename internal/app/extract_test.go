package app_test

import (
	"testing"

	"github.com/reviewpulse/reviewpulse/internal/app"
)

func TestParseCommentText_NoLabel(t *testing.T) {
	for _, text := range []string{
		"",
		"plain review text, nothing embedded",
		"mentions Опис without a colon",
		"colon Статус: is a different label", // simple variant only knows the description label
	} {
		got := app.ParseCommentText(text)
		if got.Content != text {
			t.Fatalf("content changed for %q: %q", text, got.Content)
		}
		if got.Description != nil {
			t.Fatalf("unexpected description for %q: %q", text, *got.Description)
		}
		if got.OriginalText != text {
			t.Fatalf("original text changed for %q", text)
		}
	}
}

func TestParseCommentText_TrailingDescription(t *testing.T) {
	text := "Zara schuldet mir bereits mehr als 500€ Diese Betrüger!!!!! Опис: Проблеми з отриманням рахунків після повернення товару."
	got := app.ParseCommentText(text)

	if got.Content != "Zara schuldet mir bereits mehr als 500€ Diese Betrüger!!!!!" {
		t.Fatalf("content: %q", got.Content)
	}
	if got.Description == nil || *got.Description != "Проблеми з отриманням рахунків після повернення товару." {
		t.Fatalf("description: %v", got.Description)
	}
	if got.OriginalText != text {
		t.Fatalf("original text changed")
	}
}

func TestParseCommentText_CaseInsensitive(t *testing.T) {
	got := app.ParseCommentText("bad app опис: довго вантажиться")
	if got.Description == nil || *got.Description != "довго вантажиться" {
		t.Fatalf("description: %v", got.Description)
	}
	if got.Content != "bad app" {
		t.Fatalf("content: %q", got.Content)
	}
}

func TestParseCommentText_EmptyValue(t *testing.T) {
	text := "looks truncated Опис: "
	got := app.ParseCommentText(text)
	if got.Description != nil {
		t.Fatalf("empty value should not match, got %q", *got.Description)
	}
	if got.Content != text {
		t.Fatalf("content: %q", got.Content)
	}
}

func TestParseCommentTextAdvanced_StackedLabels(t *testing.T) {
	text := "App crashes on login Опис: помилка авторизації Категорія: технічна Пріоритет: високий Статус: відкрито"
	got := app.ParseCommentTextAdvanced(text)

	if got.Content != "App crashes on login" {
		t.Fatalf("content: %q", got.Content)
	}
	want := map[string]string{
		"description": "помилка авторизації",
		"category":    "технічна",
		"priority":    "високий",
		"status":      "відкрито",
	}
	for k, v := range want {
		if got.AdditionalFields[k] != v {
			t.Fatalf("%s: got %q want %q", k, got.AdditionalFields[k], v)
		}
	}
	if got.OriginalText != text {
		t.Fatalf("original text changed")
	}
}

func TestParseCommentTextAdvanced_SingleField(t *testing.T) {
	got := app.ParseCommentTextAdvanced("все погано Опис: не працює оплата")
	if got.Content != "все погано" {
		t.Fatalf("content: %q", got.Content)
	}
	if got.AdditionalFields["description"] != "не працює оплата" {
		t.Fatalf("fields: %+v", got.AdditionalFields)
	}
	if len(got.AdditionalFields) != 1 {
		t.Fatalf("expected one field, got %+v", got.AdditionalFields)
	}
}

func TestParseCommentTextAdvanced_NoLabels(t *testing.T) {
	text := "nothing to see here"
	got := app.ParseCommentTextAdvanced(text)
	if got.Content != text || len(got.AdditionalFields) != 0 {
		t.Fatalf("unexpected extraction: %+v", got)
	}
}

func TestParseCommentTextAdvanced_BoundaryWordStaysInContent(t *testing.T) {
	// "Проблема:" is not in the vocabulary; it terminates the description
	// value but remains part of the content.
	text := "intro Опис: щось зламалось Проблема: невідома"
	got := app.ParseCommentTextAdvanced(text)
	if got.AdditionalFields["description"] != "щось зламалось" {
		t.Fatalf("description: %q", got.AdditionalFields["description"])
	}
	if got.Content != "intro Проблема: невідома" {
		t.Fatalf("content: %q", got.Content)
	}
}
