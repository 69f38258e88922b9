// Package api defines the signaling protocol between the room client and the media relay.
//
// Each message (request and response) is a JSON-encoded "packet" of the following structure:
//
//	id - (optional) a globally unique packet id;
//	 t - (required) one of the predefined unique packet types;
//	 p - (optional) packet payload with arbitrary data.
//
// Packets differentiate by their predefined types with which it is possible
// to unwrap the payload into distinct request/response data structures.
// The id field is used for tracking packets through a chain of different
// network points (browser, relay, telephony bridge).
package api

import (
	"fmt"

	"github.com/goccy/go-json"
)

type PT uint8

// In is an inbound packet. The payload stays raw for a 2-pass unmarshal.
type In struct {
	Id      string          `json:"id,omitempty"`
	T       PT              `json:"t"`
	Payload json.RawMessage `json:"p,omitempty"`
}

// Out is an outbound packet.
type Out struct {
	Id      string `json:"id,omitempty"`
	T       PT     `json:"t"`
	Payload any    `json:"p,omitempty"`
}

// Packet codes:
//
//	1xx - relay to client
//	2xx - client to relay
const (
	CompositeInfo        PT = 100
	PresentationInfo     PT = 101
	PresenterReady       PT = 102
	CancelPresentation   PT = 103
	NewParticipant       PT = 104
	ParticipantLeft      PT = 105
	VideoAnswer          PT = 106
	ExistingPresentation PT = 107
	ExistingName         PT = 108
	IceCandidate         PT = 109
	LineAvailable        PT = 110
	CallInformation      PT = 111
	RecordStarted        PT = 112
	RecordStopped        PT = 113

	JoinRoom         PT = 200
	ReceiveVideoFrom PT = 201
	OnIceCandidate   PT = 202
	NewPresenter     PT = 203
	StopPresenting   PT = 204
	LeaveRoom        PT = 205
	Renew            PT = 206
	Invite           PT = 207
	Record           PT = 208
	StopRecord       PT = 209
)

func (p PT) String() string {
	switch p {
	case CompositeInfo:
		return "CompositeInfo"
	case PresentationInfo:
		return "PresentationInfo"
	case PresenterReady:
		return "PresenterReady"
	case CancelPresentation:
		return "CancelPresentation"
	case NewParticipant:
		return "NewParticipant"
	case ParticipantLeft:
		return "ParticipantLeft"
	case VideoAnswer:
		return "VideoAnswer"
	case ExistingPresentation:
		return "ExistingPresentation"
	case ExistingName:
		return "ExistingName"
	case IceCandidate:
		return "IceCandidate"
	case LineAvailable:
		return "LineAvailable"
	case CallInformation:
		return "CallInformation"
	case RecordStarted:
		return "RecordStarted"
	case RecordStopped:
		return "RecordStopped"
	case JoinRoom:
		return "JoinRoom"
	case ReceiveVideoFrom:
		return "ReceiveVideoFrom"
	case OnIceCandidate:
		return "OnIceCandidate"
	case NewPresenter:
		return "NewPresenter"
	case StopPresenting:
		return "StopPresenting"
	case LeaveRoom:
		return "LeaveRoom"
	case Renew:
		return "Renew"
	case Invite:
		return "Invite"
	case Record:
		return "Record"
	case StopRecord:
		return "StopRecord"
	default:
		return "Unknown"
	}
}

var ErrMalformed = fmt.Errorf("malformed")

// Unwrap decodes a raw packet payload into T, nil when the payload is malformed.
func Unwrap[T any](data []byte) *T {
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil
	}
	return out
}
