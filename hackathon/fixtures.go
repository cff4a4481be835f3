// Package hackathon is the "Hackathon OS" demo: fixed fixture data, lookups over it,
// and a mock board whose actions live only in process memory.
package hackathon

import (
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("hackathon: not found")
	ErrForbidden = errors.New("hackathon: forbidden")
)

// Status is the lifecycle stage of a hackathon.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusEnded    Status = "ended"
)

// Role decides which board actions a user may take.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
	RoleAdmin       Role = "admin"
)

// Hackathon is one event.
type Hackathon struct {
	ID      string
	Slug    string
	Name    string
	Tagline string
	Status  Status
	Starts  time.Time
	Ends    time.Time
	Tags    []string
}

// ChallengeStatus is the review state of a submitted challenge.
type ChallengeStatus string

const (
	ChallengePending  ChallengeStatus = "pending"
	ChallengeApproved ChallengeStatus = "approved"
	ChallengeRejected ChallengeStatus = "rejected"
)

// Challenge is a sponsor-proposed problem attached to a hackathon.
type Challenge struct {
	ID          string
	HackathonID string
	Title       string
	Sponsor     string
	Prize       int // USD
	Status      ChallengeStatus
}

// User is a demo account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var hackathons = []Hackathon{
	{ID: "h1", Slug: "climate-build", Name: "Climate Build", Tagline: "48 hours on grid software", Status: StatusLive, Starts: day("2026-10-10"), Ends: day("2026-10-16"), Tags: []string{"energy", "data"}},
	{ID: "h2", Slug: "health-hack", Name: "Health Hack", Tagline: "Tools for clinics that run on paper", Status: StatusUpcoming, Starts: day("2026-11-20"), Ends: day("2026-11-22"), Tags: []string{"health"}},
	{ID: "h3", Slug: "open-ledger", Name: "Open Ledger", Tagline: "Public finance you can actually read", Status: StatusEnded, Starts: day("2026-05-02"), Ends: day("2026-05-04"), Tags: []string{"civic", "data"}},
	{ID: "h4", Slug: "ai-for-good", Name: "AI for Good", Tagline: "Models for the rest of us", Status: StatusUpcoming, Starts: day("2027-01-15"), Ends: day("2027-01-17"), Tags: []string{"ai"}},
}

var challenges = []Challenge{
	{ID: "c1", HackathonID: "h1", Title: "Forecast rooftop solar output", Sponsor: "Sunfield", Prize: 5000, Status: ChallengeApproved},
	{ID: "c2", HackathonID: "h1", Title: "Demand response for apartments", Sponsor: "GridCo", Prize: 3000, Status: ChallengePending},
	{ID: "c3", HackathonID: "h2", Title: "Offline patient intake", Sponsor: "CareNet", Prize: 4000, Status: ChallengePending},
	{ID: "c4", HackathonID: "h3", Title: "Budget diff viewer", Sponsor: "Civic Labs", Prize: 2000, Status: ChallengeApproved},
	{ID: "c5", HackathonID: "h4", Title: "Small-model triage", Sponsor: "Northwind", Prize: 6000, Status: ChallengeRejected},
}

var users = []User{
	{ID: "u1", Name: "Ada Park", Email: "ada@example.com", Role: RoleAdmin},
	{ID: "u2", Name: "Sam Ortiz", Email: "sam@example.com", Role: RoleOrganizer},
	{ID: "u3", Name: "Lee Moreau", Email: "lee@example.com", Role: RoleParticipant},
	{ID: "u4", Name: "Rin Tanaka", Email: "rin@example.com", Role: RoleParticipant},
}

// Hackathons returns every hackathon, soonest start first.
func Hackathons() []Hackathon {
	out := slices.Clone(hackathons)
	slices.SortStableFunc(out, func(a, b Hackathon) int {
		return a.Starts.Compare(b.Starts)
	})
	return out
}

// Users returns every demo account.
func Users() []User {
	return slices.Clone(users)
}

// HackathonBySlug finds a hackathon by its URL slug.
func HackathonBySlug(slug string) (Hackathon, error) {
	for _, h := range hackathons {
		if h.Slug == slug {
			return h, nil
		}
	}
	return Hackathon{}, ErrNotFound
}

// UserByID finds a demo account.
func UserByID(id string) (User, error) {
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// ChallengesFor returns the fixture challenges of a hackathon in fixture order.
func ChallengesFor(hackathonID string) []Challenge {
	var out []Challenge
	for _, c := range challenges {
		if c.HackathonID == hackathonID {
			out = append(out, c)
		}
	}
	return out
}

// FilterHackathons narrows Hackathons by status (empty matches all) and a
// case-insensitive query over name, tagline and tags.
func FilterHackathons(status Status, query string) []Hackathon {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Hackathon
	for _, h := range Hackathons() {
		if status != "" && h.Status != status {
			continue
		}
		if q != "" && !hackathonMatches(h, q) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func hackathonMatches(h Hackathon, q string) bool {
	if strings.Contains(strings.ToLower(h.Name), q) || strings.Contains(strings.ToLower(h.Tagline), q) {
		return true
	}
	for _, t := range h.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// TotalPrize sums the prizes of approved challenges.
func TotalPrize(cs []Challenge) int {
	total := 0
	for _, c := range cs {
		if c.Status == ChallengeApproved {
			total += c.Prize
		}
	}
	return total
}
