// Package session owns who the user is and what their profile says.
//
// A Controller mirrors the gateway's session, loads the matching profile
// (self-healing a missing row once), tracks the display locale and hands
// immutable Snapshots to subscribers after every change. It never returns
// lifecycle failures to callers; they surface as Snapshot.LastError and
// Snapshot.State.
//
// # States
//
//	Initializing -> Unauthenticated
//	Initializing -> AuthenticatedNoProfile -> AuthenticatedWithProfile
//	                                       -> AuthenticatedProfileError
//
// Losing the session moves any state to Unauthenticated and drops the
// profile.
//
// # Concurrency
//
// All methods are safe for concurrent use. Overlapping RefreshProfile calls
// for the same subject share one network sequence, unless MarkStale was
// called after that sequence began. Results that arrive after the subject
// changed, after Logout or after Close are discarded, as are results
// overtaken by a fetch started after MarkStale. A caller that cancels its
// context stops waiting but the outcome is still applied.
package session
