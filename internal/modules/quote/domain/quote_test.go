package domain_test

import (
	"errors"
	"testing"

	"thrivehub/internal/modules/quote/domain"
	"thrivehub/internal/platform/calendar"
	apperrors "thrivehub/internal/platform/errors"
)

func TestNewSetRejectsEmpty(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewSet(); !errors.Is(err, apperrors.ErrEmptyQuoteSet) {
		t.Fatalf("expected empty set error, got %v", err)
	}
	if _, err := domain.NewSet("  ", ""); !errors.Is(err, apperrors.ErrEmptyQuoteSet) {
		t.Fatalf("blank quotes must not count, got %v", err)
	}
}

func TestNewSetTrimsAndKeepsOrder(t *testing.T) {
	t.Parallel()
	set, err := domain.NewSet(" first ", "", "second")
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	if set.Len() != 2 || set.At(0) != "first" || set.At(1) != "second" {
		t.Fatalf("unexpected set: %v", set.All())
	}
	if !set.Contains("second") || set.Contains("third") {
		t.Fatalf("contains mismatch")
	}
	all := set.All()
	all[0] = "mutated"
	if set.At(0) != "first" {
		t.Fatalf("All must return a copy")
	}
}

func TestCacheCurrent(t *testing.T) {
	t.Parallel()
	day := calendar.MustParse("2024-06-01")
	if (domain.Cache{}).Current(day) {
		t.Fatalf("empty cache is never current")
	}
	c := domain.Cache{Date: day, Quote: "q"}
	if !c.Current(day) {
		t.Fatalf("cache for today should be current")
	}
	if c.Current(calendar.MustParse("2024-06-02")) {
		t.Fatalf("cache for yesterday should be stale")
	}
}
