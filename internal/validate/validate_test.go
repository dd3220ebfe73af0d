package validate

import (
	"testing"

	"github.com/dmitrijs2005/authgate/internal/common"
)

var testRules = RuleSet{
	{Field: "name", Message: "Name is required", Check: NotEmpty},
	{Field: "email", Message: "Please enter a valid email", Check: Email},
	{Field: "password", Message: "Please enter a password with 10 or more characters", Check: MinLen(10)},
}

func TestApply_AllValid(t *testing.T) {
	t.Parallel()

	violations := testRules.Apply(map[string]string{
		"name":     "Ann",
		"email":    "ann@example.com",
		"password": "longenoughpw",
	})
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
}

func TestApply_CollectsAllViolationsInRuleOrder(t *testing.T) {
	t.Parallel()

	violations := testRules.Apply(map[string]string{
		"name":     "x",
		"email":    "not-an-email",
		"password": "short",
	})

	want := []common.FieldError{
		{Field: "email", Message: "Please enter a valid email"},
		{Field: "password", Message: "Please enter a password with 10 or more characters"},
	}

	if len(violations) != len(want) {
		t.Fatalf("expected %d violations, got %+v", len(want), violations)
	}
	for i := range want {
		if violations[i] != want[i] {
			t.Fatalf("violation %d: got %+v want %+v", i, violations[i], want[i])
		}
	}
}

func TestApply_MissingFieldsCheckedAsEmpty(t *testing.T) {
	t.Parallel()

	violations := testRules.Apply(map[string]string{})
	if len(violations) != 3 {
		t.Fatalf("expected 3 violations for empty payload, got %+v", violations)
	}
	if violations[0].Field != "name" {
		t.Fatalf("expected declaration order, got %+v", violations)
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"ann@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.org", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"ann@", false},
		{"ann@nodomain", false},
		{"ann@.com", false},
		{"ann@example.", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := Email(tc.value); got != tc.valid {
			t.Fatalf("Email(%q) = %v, want %v", tc.value, got, tc.valid)
		}
	}
}

func TestNotEmpty(t *testing.T) {
	t.Parallel()

	if NotEmpty("") || NotEmpty("   ") {
		t.Fatalf("whitespace-only values must not pass NotEmpty")
	}
	if !NotEmpty("x") {
		t.Fatalf("non-empty value must pass NotEmpty")
	}
}

func TestMinLen(t *testing.T) {
	t.Parallel()

	check := MinLen(10)
	if check("123456789") {
		t.Fatalf("9 bytes must fail MinLen(10)")
	}
	if !check("1234567890") {
		t.Fatalf("10 bytes must pass MinLen(10)")
	}
}
