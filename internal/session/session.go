// Package session keeps the authenticated operator's token and profile
// on the device. There is exactly one session per device; clearing it
// logs the operator out everywhere the state file is shared.
package session

import "github.com/kafune/rede-guti/internal/devstore"

const (
	tokenKey = "guti_token"
	userKey  = "guti_user"
)

// Profile is the subset of the account the client keeps between runs.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	DevzappLink string `json:"devzappLink,omitempty"`
	Role        string `json:"role"`
}

type Session struct {
	dev *devstore.Store
}

func New(dev *devstore.Store) *Session {
	return &Session{dev: dev}
}

// Token returns the stored bearer token, empty when logged out.
func (s *Session) Token() string {
	var token string
	s.dev.Get(tokenKey, &token)
	return token
}

// User returns the stored profile; ok is false when no session exists.
func (s *Session) User() (Profile, bool) {
	var p Profile
	if !s.dev.Get(userKey, &p) || p.ID == "" {
		return Profile{}, false
	}
	return p, true
}

// SetLogin stores both halves of the session atomically enough for a
// single-device client: token first, then profile.
func (s *Session) SetLogin(token string, user Profile) error {
	if err := s.dev.Set(tokenKey, token); err != nil {
		return err
	}
	return s.dev.Set(userKey, user)
}

// UserID returns the logged-in account's ID, empty when logged out.
func (s *Session) UserID() string {
	p, ok := s.User()
	if !ok {
		return ""
	}
	return p.ID
}

// Clear drops the session. Used on explicit logout and whenever the
// server answers 401, so a revoked token never causes a retry loop.
func (s *Session) Clear() error {
	if err := s.dev.Delete(tokenKey); err != nil {
		return err
	}
	return s.dev.Delete(userKey)
}
