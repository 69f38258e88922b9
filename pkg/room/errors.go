package room

import "errors"

// ErrNoSuchConnection marks a late or misdirected negotiation message:
// the (participant, channel) pair has no live peer connection.
// Logged and dropped, never fatal.
var ErrNoSuchConnection = errors.New("no such connection")
