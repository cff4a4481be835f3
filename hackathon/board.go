package hackathon

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Activity records one mock action for the board's feed.
type Activity struct {
	ID     string
	UserID string
	Action string
	Target string
	At     time.Time
}

// Board holds the mutable side of the demo. Nothing on it is persisted: a restart
// returns to the fixtures.
type Board struct {
	mu            sync.Mutex
	status        map[string]ChallengeStatus
	registrations map[string]map[string]bool // hackathon -> user
	feed          []Activity
	now           func() time.Time
}

// NewBoard starts a board from the fixtures.
func NewBoard() *Board {
	b := &Board{now: time.Now}
	b.Reset()
	return b
}

// Reset discards every mock action.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = make(map[string]ChallengeStatus, len(challenges))
	for _, c := range challenges {
		b.status[c.ID] = c.Status
	}
	b.registrations = make(map[string]map[string]bool)
	b.feed = nil
}

// Challenges returns the challenges of a hackathon with their board status.
func (b *Board) Challenges(hackathonID string) []Challenge {
	cs := ChallengesFor(hackathonID)
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range cs {
		cs[i].Status = b.status[cs[i].ID]
	}
	return cs
}

// Approve marks a challenge approved.
func (b *Board) Approve(u CurrentUser, challengeID string) error {
	return b.review(u, challengeID, ChallengeApproved)
}

// Reject marks a challenge rejected.
func (b *Board) Reject(u CurrentUser, challengeID string) error {
	return b.review(u, challengeID, ChallengeRejected)
}

func (b *Board) review(u CurrentUser, challengeID string, to ChallengeStatus) error {
	if !u.CanReview() {
		return ErrForbidden
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.status[challengeID]; !ok {
		return ErrNotFound
	}
	b.status[challengeID] = to
	b.record(u, string(to), challengeID)
	return nil
}

// Register signs the user up for a hackathon. Registering twice is a no-op.
func (b *Board) Register(u CurrentUser, hackathonID string) error {
	return b.setRegistration(u, hackathonID, true)
}

// Cancel withdraws a registration.
func (b *Board) Cancel(u CurrentUser, hackathonID string) error {
	return b.setRegistration(u, hackathonID, false)
}

func (b *Board) setRegistration(u CurrentUser, hackathonID string, on bool) error {
	if !u.CanRegister() {
		return ErrForbidden
	}
	if !knownHackathon(hackathonID) {
		return ErrNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	regs := b.registrations[hackathonID]
	if regs == nil {
		regs = make(map[string]bool)
		b.registrations[hackathonID] = regs
	}
	if regs[u.ID] == on {
		return nil
	}
	if on {
		regs[u.ID] = true
		b.record(u, "registered", hackathonID)
	} else {
		delete(regs, u.ID)
		b.record(u, "cancelled", hackathonID)
	}
	return nil
}

// Registered reports whether the user is signed up for a hackathon.
func (b *Board) Registered(u CurrentUser, hackathonID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registrations[hackathonID][u.ID]
}

// Registrations counts sign-ups for a hackathon.
func (b *Board) Registrations(hackathonID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.registrations[hackathonID])
}

// Feed returns the most recent activity first.
func (b *Board) Feed(limit int) []Activity {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.feed)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Activity, 0, n)
	for i := len(b.feed) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, b.feed[i])
	}
	return out
}

// FeedCap is the number of activities the board keeps; older ones are dropped.
const FeedCap = 100

// record appends to the feed, keeping at most FeedCap entries. Callers hold b.mu.
func (b *Board) record(u CurrentUser, action, target string) {
	b.feed = append(b.feed, Activity{
		ID:     uuid.NewString(),
		UserID: u.ID,
		Action: action,
		Target: target,
		At:     b.now(),
	})
	if over := len(b.feed) - FeedCap; over > 0 {
		b.feed = append(b.feed[:0], b.feed[over:]...)
	}
}

func knownHackathon(id string) bool {
	for _, h := range hackathons {
		if h.ID == id {
			return true
		}
	}
	return false
}
