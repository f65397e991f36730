package service

import (
	"context"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Koshary House", "koshary-house"},
		{"  Grilled -- Chicken!! ", "grilled-chicken"},
		{"Café 21", "café-21"},
		{"***", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"falafel": true, "falafel-2": true}
	got, err := uniqueSlug(context.Background(), "falafel", func(_ context.Context, s string) (bool, error) {
		return taken[s], nil
	})
	if err != nil {
		t.Fatalf("uniqueSlug() error = %v", err)
	}
	if got != "falafel-3" {
		t.Errorf("uniqueSlug() = %q, want falafel-3", got)
	}
}
