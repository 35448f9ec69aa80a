// Package session resolves the identity that owns every record the
// application touches. Records are always read and written under the
// owner id of the current session; there is no cross-owner access path.
package session

import "errors"

// Session identifies the authenticated doctor for the lifetime of a run.
type Session struct {
	OwnerID     string
	DisplayName string
	Email       string
}

// Provider yields the current session. Implementations may consult an
// environment, a token file or a remote identity service.
type Provider interface {
	Current() (Session, error)
}

// ErrNoSession is returned when no identity can be resolved.
var ErrNoSession = errors.New("no active session")

// Static is a Provider pinned to a single identity, used by the CLI where
// the owner is supplied on the command line.
type Static struct {
	Session Session
}

func (s Static) Current() (Session, error) {
	if s.Session.OwnerID == "" {
		return Session{}, ErrNoSession
	}
	return s.Session, nil
}
