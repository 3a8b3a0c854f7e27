package model

import "testing"

func TestParseDecision(t *testing.T) {
	tests := []struct {
		input  string
		want   Category
		wantOK bool
	}{
		{"y", CategoryAccepted, true},
		{"Y", CategoryAccepted, true},
		{" n \n", CategoryRejected, true},
		{"O", CategoryOther, true},
		{"x", "", false},
		{"yes", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseDecision(tc.input)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ParseDecision(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("No_Description")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != CategoryNoDescription {
		t.Errorf("got %q, want %q", c, CategoryNoDescription)
	}
	if _, err := ParseCategory("maybe"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestHasDescription(t *testing.T) {
	desc := "Build things."
	if (Job{}).HasDescription() {
		t.Error("job without description reported HasDescription")
	}
	if !(Job{Description: &desc}).HasDescription() {
		t.Error("job with description reported !HasDescription")
	}
}
