package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-06", "2000-12-31"}
	invalid := []string{"2025-13-01", "2025-02-30", "01-06-2025", "", "abc"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2025-01-15T10:30:00Z", "2025-01-15T10:30:00-05:00", "2025-01-15T10:30:00.123456Z"}
	invalid := []string{"2025-01-15 10:30:00", "2025-01-15", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsNonNegative(t *testing.T) {
	if !IsNonNegative(decimal.Zero) {
		t.Error("IsNonNegative(0) = false, want true")
	}
	if IsNonNegative(decimal.NewFromInt(-1)) {
		t.Error("IsNonNegative(-1) = true, want false")
	}
}

type sampleRequest struct {
	Name   string `json:"name" validate:"required"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Kind   string `json:"kind,omitempty" validate:"omitempty,oneof=life auto"`
}

func TestStruct(t *testing.T) {
	if errs := Struct(sampleRequest{Name: "a", Rating: 5}); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	errs := Struct(sampleRequest{Rating: 6, Kind: "boat"})
	got := errs.ToMap()
	want := map[string]string{
		"name":   "is required",
		"rating": "must be at most 5",
		"kind":   "must be one of: life auto",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("Struct error for %q = %q, want %q", field, got[field], msg)
		}
	}
	if errs.Error() == "" {
		t.Error("ValidationErrors.Error() is empty")
	}
}
