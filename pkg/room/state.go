package room

// State is an immutable snapshot of the session published to observers
// after every change.
type State struct {
	Room         string
	Participants []string

	Presentation PresentationState
	Recording    bool

	// LineExtension is the dial-in extension of the room, empty until
	// the relay assigns one.
	LineExtension string
}

type PresentationState struct {
	State         PresState
	PresenterId   string
	PresenterIsMe bool
	Disabled      Disabled
}
