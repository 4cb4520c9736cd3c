package session

import (
	"github.com/dmitrijs2005/adearn/internal/client/i18n"
	"github.com/dmitrijs2005/adearn/internal/client/models"
)

type State int

const (
	Initializing State = iota
	Unauthenticated
	AuthenticatedNoProfile
	AuthenticatedWithProfile
	AuthenticatedProfileError
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedNoProfile:
		return "authenticated_no_profile"
	case AuthenticatedWithProfile:
		return "authenticated_with_profile"
	case AuthenticatedProfileError:
		return "authenticated_profile_error"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the controller state. Mutating it has no effect on
// the controller.
type Snapshot struct {
	Session   *models.Session
	Profile   *models.Profile
	Loading   bool
	LastError string
	Locale    i18n.Locale
	Direction i18n.Direction
	State     State
	// Terminated is set by Logout; the view must be rebuilt.
	Terminated bool
	// Version increases with every published change.
	Version uint64
}
