// SPDX-License-Identifier: Apache-2.0
package repository

import "testing"

func TestValidate(t *testing.T) {
	existing := []string{"nightly", "weekly"}

	tests := []struct {
		name      string
		draft     Draft
		valid     bool
		nameError bool
		typeError bool
	}{
		{
			name:  "complete draft",
			draft: Draft{Name: "offsite", Type: TypeS3},
			valid: true,
		},
		{
			name:      "missing name",
			draft:     Draft{Type: TypeFS},
			nameError: true,
		},
		{
			name:      "duplicate name",
			draft:     Draft{Name: "nightly", Type: TypeFS},
			nameError: true,
		},
		{
			name:      "bad characters",
			draft:     Draft{Name: "night ly", Type: TypeFS},
			nameError: true,
		},
		{
			name:      "missing type",
			draft:     Draft{Name: "offsite"},
			typeError: true,
		},
		{
			name:      "everything wrong",
			draft:     Draft{},
			nameError: true,
			typeError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.draft, existing)

			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (errors: %v)", res.Valid, tt.valid, res.Errors)
			}
			if got := res.FieldError("name") != ""; got != tt.nameError {
				t.Errorf("name error = %v, want %v", got, tt.nameError)
			}
			if got := res.FieldError("type") != ""; got != tt.typeError {
				t.Errorf("type error = %v, want %v", got, tt.typeError)
			}
		})
	}
}

func TestFieldError_SilentWhenValid(t *testing.T) {
	// A valid result never reports field errors, even with stale messages.
	r := Result{Valid: true, Errors: map[string]string{"name": "leftover"}}
	if msg := r.FieldError("name"); msg != "" {
		t.Errorf("valid result reported %q", msg)
	}
}
