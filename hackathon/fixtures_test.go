package hackathon

import (
	"errors"
	"testing"
)

func TestHackathonBySlug(t *testing.T) {
	h, err := HackathonBySlug("health-hack")
	if err != nil {
		t.Fatalf("HackathonBySlug: %v", err)
	}
	if h.ID != "h2" {
		t.Fatalf("ID = %q, want h2", h.ID)
	}
	if _, err := HackathonBySlug("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestHackathonsSortedByStart(t *testing.T) {
	hs := Hackathons()
	for i := 1; i < len(hs); i++ {
		if hs[i].Starts.Before(hs[i-1].Starts) {
			t.Fatalf("%s starts before %s", hs[i].Slug, hs[i-1].Slug)
		}
	}
	hs[0].Name = "mutated"
	if Hackathons()[0].Name == "mutated" {
		t.Fatal("Hackathons exposed fixture storage")
	}
}

func TestFilterHackathons(t *testing.T) {
	tests := []struct {
		status Status
		query  string
		want   []string
	}{
		{"", "", []string{"open-ledger", "climate-build", "health-hack", "ai-for-good"}},
		{StatusUpcoming, "", []string{"health-hack", "ai-for-good"}},
		{"", "DATA", []string{"open-ledger", "climate-build"}},
		{StatusLive, "paper", nil},
		{"", "clinics", []string{"health-hack"}},
	}
	for _, tt := range tests {
		got := FilterHackathons(tt.status, tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("FilterHackathons(%q, %q) returned %d, want %d", tt.status, tt.query, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].Slug != tt.want[i] {
				t.Errorf("FilterHackathons(%q, %q)[%d] = %s, want %s", tt.status, tt.query, i, got[i].Slug, tt.want[i])
			}
		}
	}
}

func TestChallengesForAndPrize(t *testing.T) {
	cs := ChallengesFor("h1")
	if len(cs) != 2 {
		t.Fatalf("challenges = %d, want 2", len(cs))
	}
	if got := TotalPrize(cs); got != 5000 {
		t.Fatalf("TotalPrize = %d, want 5000", got)
	}
	if ChallengesFor("missing") != nil {
		t.Fatal("unknown hackathon should have no challenges")
	}
}

func TestUserStorage(t *testing.T) {
	cu, err := SignIn("u2")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	raw, err := cu.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back := DecodeUser(raw)
	if !back.SignedIn || back.ID != "u2" || back.Role != RoleOrganizer {
		t.Fatalf("DecodeUser = %+v", back)
	}

	for _, raw := range []string{"", "{", `{"id":"ghost"}`} {
		if DecodeUser(raw).SignedIn {
			t.Errorf("DecodeUser(%q) should be signed out", raw)
		}
	}
	if raw, _ := (CurrentUser{}).Encode(); raw != "" {
		t.Fatalf("signed-out Encode = %q, want empty", raw)
	}
	if _, err := SignIn("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SignIn err = %v", err)
	}
}
