package i18n

import (
	"testing"

	"github.com/tatianab/wealth-quest/internal/models"
	"github.com/tatianab/wealth-quest/internal/money"
)

func TestTranslateFallbacks(t *testing.T) {
	tr := Default()

	if got := tr.T("pt", "logs.bought", map[string]any{"asset": "X"}); got != "Comprou X" {
		t.Errorf("Expected Portuguese text, got %q", got)
	}
	// learned has no Portuguese entry
	if got := tr.T("pt", "logs.learned", map[string]any{"skill": "S", "level": 2}); got != "Learned S (Lv 2)" {
		t.Errorf("Expected English fallback, got %q", got)
	}
	if got := tr.T("xx", "logs.welcome", nil); got != "Welcome to Wealth Quest!" {
		t.Errorf("Expected English for unknown language, got %q", got)
	}
	if got := tr.T("en", "logs.nope", nil); got != "logs.nope" {
		t.Errorf("Expected raw key, got %q", got)
	}
}

func TestEntity(t *testing.T) {
	tr := Default()
	if got := tr.Entity("pt", "jobs", "intern", "title"); got != "Estagiário" {
		t.Errorf("Expected Estagiário, got %q", got)
	}
	if got := tr.Entity("en", "assets", "index_fund", ""); got != "Global Index Fund" {
		t.Errorf("Expected Global Index Fund, got %q", got)
	}
	if got := tr.Entity("en", "loans", "mystery_loan", ""); got != "MYSTERY_LOAN" {
		t.Errorf("Expected upper-cased id, got %q", got)
	}
}

func TestAddMergesTables(t *testing.T) {
	tr := New()
	if err := tr.Add("en", []byte("a:\n  b: one\n")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Add("en", []byte("a:\n  c: two\n")); err != nil {
		t.Fatal(err)
	}
	if tr.T("en", "a.b", nil) != "one" || tr.T("en", "a.c", nil) != "two" {
		t.Errorf("tables were not merged")
	}
	if err := tr.Add("de", []byte("::: not yaml")); err == nil {
		t.Errorf("Expected parse error")
	}
	if langs := Default().Languages(); len(langs) != 2 || langs[0] != "en" || langs[1] != "pt" {
		t.Errorf("unexpected languages %v", langs)
	}
}

func TestLabeler(t *testing.T) {
	usd := models.Currency{Code: "USD", Symbol: "$", Rate: 1, Locale: "en-US"}
	l, err := NewLabeler(Default(), "en", money.NewFormatter(), usd)
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Money(1500); got != "$1,500" {
		t.Errorf("Expected $1,500, got %q", got)
	}
	if got := l.Name("loans", "personal_loan", "", "Personal Loan Offer"); got != "Personal Loan" {
		t.Errorf("Expected table name, got %q", got)
	}
	if got := l.Name("loans", "custom", "", "Custom Loan"); got != "Custom Loan" {
		t.Errorf("Expected fallback name, got %q", got)
	}

	_, err = NewLabeler(Default(), "en", money.NewFormatter(), models.Currency{Code: "ZZZ", Locale: "en-US"})
	if err == nil {
		t.Errorf("Expected error for unknown currency")
	}
}
