package model

import "testing"

func TestParseSpotlightStatus(t *testing.T) {
	cases := []struct {
		in   string
		want SpotlightStatus
		ok   bool
	}{
		{"draft", SpotlightStatusDraft, true},
		{"published", SpotlightStatusPublished, true},
		{"featured", SpotlightStatusFeatured, true},
		{" Featured ", SpotlightStatusFeatured, true},
		{"", "", false},
		{"archived", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseSpotlightStatus(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseSpotlightStatus(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCreateSpotlightRequest_Validate(t *testing.T) {
	r := CreateSpotlightRequest{Title: "New drop", Body: "Look of the week"}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != SpotlightStatusDraft {
		t.Errorf("status should default to draft, got %q", r.Status)
	}

	r = CreateSpotlightRequest{Title: "  "}
	if err := r.Validate(); err == nil {
		t.Error("expected error for blank title")
	}

	r = CreateSpotlightRequest{Title: "ok", Status: "archived"}
	if err := r.Validate(); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestUpdateSpotlightRequest_Validate(t *testing.T) {
	var r UpdateSpotlightRequest
	if err := r.Validate(); err == nil {
		t.Error("expected error when no fields are set")
	}

	title := ""
	r = UpdateSpotlightRequest{Title: &title}
	if err := r.Validate(); err == nil {
		t.Error("expected error for empty title")
	}

	status := SpotlightStatus(" Published ")
	r = UpdateSpotlightRequest{Status: &status}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != SpotlightStatusPublished {
		t.Errorf("status should be normalized in place, got %q", status)
	}
}
