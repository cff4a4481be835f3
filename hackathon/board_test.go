package hackathon

import (
	"errors"
	"testing"
)

func signIn(t *testing.T, id string) CurrentUser {
	t.Helper()
	u, err := SignIn(id)
	if err != nil {
		t.Fatalf("SignIn(%s): %v", id, err)
	}
	return u
}

func TestBoardReviewRequiresRole(t *testing.T) {
	b := NewBoard()
	participant := signIn(t, "u3")
	organizer := signIn(t, "u2")

	if err := b.Approve(participant, "c2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("participant Approve err = %v, want ErrForbidden", err)
	}
	if err := b.Approve(CurrentUser{}, "c2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("signed-out Approve err = %v, want ErrForbidden", err)
	}
	if err := b.Approve(organizer, "c2"); err != nil {
		t.Fatalf("organizer Approve: %v", err)
	}
	if err := b.Reject(organizer, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Reject unknown err = %v", err)
	}

	cs := b.Challenges("h1")
	if cs[1].Status != ChallengeApproved {
		t.Fatalf("c2 status = %s, want approved", cs[1].Status)
	}
	if ChallengesFor("h1")[1].Status != ChallengePending {
		t.Fatal("board action leaked into fixtures")
	}
}

func TestBoardRegistration(t *testing.T) {
	b := NewBoard()
	lee := signIn(t, "u3")

	if err := b.Register(lee, "h2"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := b.Register(lee, "h2"); err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if !b.Registered(lee, "h2") || b.Registrations("h2") != 1 {
		t.Fatalf("registered=%v count=%d", b.Registered(lee, "h2"), b.Registrations("h2"))
	}
	if err := b.Cancel(lee, "h2"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Registered(lee, "h2") {
		t.Fatal("still registered after Cancel")
	}
	if err := b.Register(lee, "h9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Register unknown err = %v", err)
	}
	if err := b.Register(CurrentUser{}, "h2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("signed-out Register err = %v", err)
	}

	feed := b.Feed(0)
	if len(feed) != 2 || feed[0].Action != "cancelled" || feed[1].Action != "registered" {
		t.Fatalf("feed = %+v", feed)
	}
	if len(b.Feed(1)) != 1 {
		t.Fatal("Feed(1) should return one entry")
	}

	b.Reset()
	if b.Registrations("h2") != 0 || len(b.Feed(0)) != 0 {
		t.Fatal("Reset kept mock state")
	}
}

func TestBoardFeedIsCapped(t *testing.T) {
	b := NewBoard()
	lee := signIn(t, "u3")
	for i := 0; i < FeedCap; i++ {
		if err := b.Register(lee, "h2"); err != nil {
			t.Fatal(err)
		}
		if err := b.Cancel(lee, "h2"); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Register(lee, "h2"); err != nil {
		t.Fatal(err)
	}

	feed := b.Feed(0)
	if len(feed) != FeedCap {
		t.Fatalf("feed holds %d entries, want %d", len(feed), FeedCap)
	}
	if feed[0].Action != "registered" || feed[1].Action != "cancelled" {
		t.Fatalf("newest entries = %s, %s", feed[0].Action, feed[1].Action)
	}
	b.mu.Lock()
	n := len(b.feed)
	b.mu.Unlock()
	if n != FeedCap {
		t.Fatalf("board retains %d entries, want %d", n, FeedCap)
	}
}
