package core

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{"exact match", "GROCERIES", CategoryGroceries, false},
		{"lower case", "groceries", CategoryGroceries, false},
		{"mixed case", "GrOcErIeS", CategoryGroceries, false},
		{"surrounding whitespace", "  rent  ", CategoryRent, false},
		{"unknown", "LOTTERY", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCategory(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCategory) {
					t.Fatalf("expected ErrInvalidCategory, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCategoriesIsClosedSet(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("category set is empty")
	}
	for _, c := range cats {
		if !c.Valid() {
			t.Errorf("listed category %s reported invalid", c)
		}
	}

	// Mutating the returned slice must not affect the set.
	cats[0] = Category("BOGUS")
	if !Categories()[0].Valid() {
		t.Error("Categories returned the internal slice")
	}
}
