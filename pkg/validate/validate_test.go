package validate

import "testing"

type signupInput struct {
	Name     string  `json:"name" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Mobile   string  `json:"mobile" validate:"nullable,digits_between=7,15"`
	Role     string  `json:"role" validate:"nullable,in=admin,customer"`
	Price    float64 `json:"price" validate:"nullable,gte=0,lte=10000"`
	Quantity int     `json:"quantity" validate:"nullable,integer,min=1"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(&signupInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Mobile:   "9876543210",
		Role:     "admin",
		Price:    49.5,
		Quantity: 2,
	})
	if HasErrors(errs) {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStructRequired(t *testing.T) {
	errs := Struct(&signupInput{})
	if errs["name"] == "" {
		t.Error("missing name should fail required")
	}
	if errs["email"] == "" {
		t.Error("missing email should fail required")
	}
	// nullable fields stay silent when empty
	if _, ok := errs["mobile"]; ok {
		t.Error("empty nullable mobile should not error")
	}
	if _, ok := errs["role"]; ok {
		t.Error("empty nullable role should not error")
	}
}

func TestStructRules(t *testing.T) {
	cases := []struct {
		name  string
		in    signupInput
		field string
	}{
		{"short name", signupInput{Name: "ab", Email: "a@b.co"}, "name"},
		{"bad email", signupInput{Name: "abc", Email: "not-an-email"}, "email"},
		{"mobile with letters", signupInput{Name: "abc", Email: "a@b.co", Mobile: "98x6543210"}, "mobile"},
		{"mobile too short", signupInput{Name: "abc", Email: "a@b.co", Mobile: "12345"}, "mobile"},
		{"role outside set", signupInput{Name: "abc", Email: "a@b.co", Role: "root"}, "role"},
		{"price above lte", signupInput{Name: "abc", Email: "a@b.co", Price: 10001}, "price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Struct(&tc.in)
			if errs[tc.field] == "" {
				t.Errorf("expected error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestStructFirstFailingRuleWins(t *testing.T) {
	in := signupInput{Name: "", Email: "bad"}
	errs := Struct(&in)
	if errs["name"] != "The name field is required." {
		t.Errorf("unexpected message: %q", errs["name"])
	}
}

func TestInRuleKeepsCommaParams(t *testing.T) {
	type s struct {
		Status string `json:"status" validate:"required,in=pending,confirmed,delivered,cancelled"`
	}
	if errs := Struct(&s{Status: "delivered"}); HasErrors(errs) {
		t.Errorf("delivered should be allowed, got %v", errs)
	}
	if errs := Struct(&s{Status: "shipped"}); errs["status"] == "" {
		t.Error("shipped should be rejected")
	}
}
