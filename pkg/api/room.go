package api

// Channel names a media channel of a participant.
// Composite is the mixed room stream everyone sends and receives,
// Presentation is the exclusive screen/window share.
type Channel string

const (
	Composite    Channel = "composite"
	Presentation Channel = "presentation"
)

func ValidChannel(c Channel) bool { return c == Composite || c == Presentation }

// Candidate is the wire shape of an ICE candidate.
type Candidate struct {
	Candidate     string  `json:"candidate"`
	SDPMid        *string `json:"sdpMid,omitempty"`
	SDPMLineIndex *uint16 `json:"sdpMLineIndex,omitempty"`
}

// Relay to client.
type (
	// CompositeInfoRequest tells the client to start sending its composite
	// stream. It piggybacks the current room roster, a possibly already
	// running presentation, and the telephony line extension when one exists.
	CompositeInfoRequest struct {
		Names                []string `json:"data,omitempty"`
		ExistingScreensharer bool     `json:"existingScreensharer,omitempty"`
		PresenterId          string   `json:"presenterId,omitempty"`
		Screensharer         string   `json:"screensharer,omitempty"`
		LineExtension        string   `json:"lineExtension,omitempty"`
	}
	PresenterReadyRequest struct {
		UserId    string `json:"userId"`
		Presenter string `json:"presenter"`
	}
	CancelPresentationRequest struct {
		UserId string `json:"userId"`
	}
	NewParticipantRequest struct {
		UserId string `json:"userId"`
		Name   string `json:"name"`
	}
	ParticipantLeftRequest struct {
		UserId         string   `json:"userId"`
		Name           string   `json:"name"`
		IsScreensharer bool     `json:"isScreensharer,omitempty"`
		Names          []string `json:"data,omitempty"`
	}
	VideoAnswerRequest struct {
		UserId    string  `json:"userId"`
		Type      Channel `json:"type"`
		SdpAnswer string  `json:"sdpAnswer"`
	}
	IceCandidateRequest struct {
		UserId    string    `json:"userId"`
		Type      Channel   `json:"type"`
		Candidate Candidate `json:"candidate"`
	}
	LineAvailableRequest struct {
		Extension string `json:"extension"`
	}
	CallInformationRequest struct {
		Message string `json:"message"`
	}
	// RecordStateRequest carries the identity of the user who toggled the
	// room recording, so clients can suppress their own echo.
	RecordStateRequest struct {
		UserId   string `json:"userId"`
		UserName string `json:"userName"`
		Room     string `json:"roomName"`
	}
)

// Client to relay.
type (
	JoinRoomRequest struct {
		Room     string `json:"roomName"`
		UserId   string `json:"userId"`
		UserName string `json:"userName"`
	}
	// ReceiveVideoFromRequest is the offer relay for both directions:
	// UserId is the owner of the peer slot (self for send, the remote
	// sender for receive).
	ReceiveVideoFromRequest struct {
		UserId   string  `json:"userId"`
		Type     Channel `json:"type"`
		SdpOffer string  `json:"sdpOffer"`
	}
	OnIceCandidateRequest struct {
		UserId    string    `json:"userId"`
		Type      Channel   `json:"type"`
		Candidate Candidate `json:"candidate"`
	}
	NewPresenterRequest struct {
		UserId      string `json:"userId"`
		Room        string `json:"room"`
		MediaSource string `json:"mediaSource"`
	}
	InviteRequest struct {
		Callee string `json:"callee"`
	}
	RecordRequest struct {
		Room     string `json:"roomName"`
		UserId   string `json:"userId"`
		UserName string `json:"userName"`
	}
)
