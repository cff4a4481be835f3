package hackathon

import (
	"encoding/json"
	"fmt"
)

// StorageKey is where the signed-in demo user is kept in the client session.
const StorageKey = "hackathon_os_user"

// CurrentUser is the signed-in demo user. The zero value is signed out. It is passed
// to handlers and views explicitly rather than read from ambient state.
type CurrentUser struct {
	User
	SignedIn bool
}

// SignIn returns the current user for a demo account.
func SignIn(id string) (CurrentUser, error) {
	u, err := UserByID(id)
	if err != nil {
		return CurrentUser{}, err
	}
	return CurrentUser{User: u, SignedIn: true}, nil
}

// CanReview reports whether the user may approve or reject challenges.
func (c CurrentUser) CanReview() bool {
	return c.SignedIn && (c.Role == RoleOrganizer || c.Role == RoleAdmin)
}

// CanRegister reports whether the user may register for hackathons.
func (c CurrentUser) CanRegister() bool {
	return c.SignedIn
}

// Encode serialises the user for StorageKey.
func (c CurrentUser) Encode() (string, error) {
	if !c.SignedIn {
		return "", nil
	}
	b, err := json.Marshal(c.User)
	if err != nil {
		return "", fmt.Errorf("hackathon: encode user: %w", err)
	}
	return string(b), nil
}

// DecodeUser restores a user stored under StorageKey. Empty or unreadable values, and
// accounts that no longer exist, decode to signed out.
func DecodeUser(raw string) CurrentUser {
	if raw == "" {
		return CurrentUser{}
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return CurrentUser{}
	}
	known, err := UserByID(u.ID)
	if err != nil {
		return CurrentUser{}
	}
	return CurrentUser{User: known, SignedIn: true}
}
