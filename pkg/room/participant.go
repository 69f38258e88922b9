package room

import (
	"github.com/openmeet/roomclient/pkg/api"
	"github.com/openmeet/roomclient/pkg/rtc"
)

// MediaPeer is one live directional connection of a participant.
// *rtc.Peer implements it; tests substitute fakes.
type MediaPeer interface {
	ApplyAnswer(sdp string) error
	AddCandidate(c api.Candidate) error
	State() rtc.NegotiationState
	Close()
}

// PeerFactory creates peers and returns the generated local offer.
type PeerFactory interface {
	NewPeer(o rtc.PeerOptions) (MediaPeer, string, error)
}

// Participant is a member of the room with up to one peer connection
// per media channel. Mutated only from the session loop.
type Participant struct {
	Id   string
	Name string

	peers map[api.Channel]MediaPeer
}

func newParticipant(id, name string) *Participant {
	return &Participant{Id: id, Name: name, peers: make(map[api.Channel]MediaPeer, 2)}
}

// Peer returns the live connection for the channel, nil when there is none.
func (p *Participant) Peer(ch api.Channel) MediaPeer { return p.peers[ch] }

// attach claims the channel slot, closing any previous connection first.
func (p *Participant) attach(ch api.Channel, peer MediaPeer) {
	p.closePeer(ch)
	p.peers[ch] = peer
}

// closePeer releases the channel slot. No-op when the slot is empty.
func (p *Participant) closePeer(ch api.Channel) {
	if peer, ok := p.peers[ch]; ok {
		peer.Close()
		delete(p.peers, ch)
	}
}

// closeAll releases every connection the participant holds.
func (p *Participant) closeAll() {
	for ch := range p.peers {
		p.closePeer(ch)
	}
}
