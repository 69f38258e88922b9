package rtc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/openmeet/roomclient/pkg/api"
	"github.com/openmeet/roomclient/pkg/logger"
	"github.com/pion/webrtc/v4"
)

type Direction uint8

const (
	SendOnly Direction = iota
	RecvOnly
)

func (d Direction) String() string {
	if d == SendOnly {
		return "sendonly"
	}
	return "recvonly"
}

// NegotiationState tracks a peer through the offer/answer handshake.
type NegotiationState uint8

const (
	Created NegotiationState = iota
	OfferGenerated
	Answered
	Stable
	Failed
	Closed
)

func (s NegotiationState) String() string {
	switch s {
	case Created:
		return "created"
	case OfferGenerated:
		return "offerGenerated"
	case Answered:
		return "answered"
	case Stable:
		return "stable"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	}
	return "unknown"
}

var (
	ErrCaptureUnavailable = errors.New("local capture unavailable")
	ErrNegotiationFailed  = errors.New("negotiation failed")
)

// PeerOptions parameterize a single peer connection for one
// (participant, channel) pair. Callbacks fire from pion goroutines;
// the caller is responsible for rescheduling them onto its own loop.
type PeerOptions struct {
	Dir     Direction
	Channel api.Channel
	Media   MediaOptions

	OnCandidate func(c api.Candidate)
	OnConnected func()
	OnFailure   func(err error)
}

// Peer is a single directional connection for one media channel.
type Peer struct {
	log  *logger.Logger
	conn *webrtc.PeerConnection

	dir     Direction
	channel api.Channel

	mu     sync.Mutex
	state  NegotiationState
	closed bool
	stops  []func()
	// synthetic capture is stopped as soon as negotiation completes
	syntheticStop func()
}

// NewPeer builds a peer connection, attaches local media or receive
// transceivers per the direction, and returns the generated local offer.
func (f *ApiFactory) NewPeer(o PeerOptions) (*Peer, string, error) {
	conn, err := f.api.NewPeerConnection(f.conf)
	if err != nil {
		return nil, "", err
	}
	p := &Peer{
		log:     f.log.Extend(f.log.With().Str("ch", string(o.Channel)).Str("dir", o.Dir.String())),
		conn:    conn,
		dir:     o.Dir,
		channel: o.Channel,
		state:   Created,
	}

	switch o.Dir {
	case SendOnly:
		if err := p.addSendTracks(f.source, o.Media); err != nil {
			_ = conn.Close()
			return nil, "", err
		}
	case RecvOnly:
		if err := p.addRecvTransceivers(); err != nil {
			_ = conn.Close()
			return nil, "", err
		}
	}

	conn.OnICECandidate(func(ice *webrtc.ICECandidate) {
		// nil marks the end of gathering
		if ice == nil {
			p.log.Debug().Msg("ICE gathering complete")
			return
		}
		c := ice.ToJSON()
		p.log.Debug().Str("candidate", c.Candidate).Msg("ICE")
		if o.OnCandidate != nil {
			o.OnCandidate(api.Candidate{
				Candidate:     c.Candidate,
				SDPMid:        c.SDPMid,
				SDPMLineIndex: c.SDPMLineIndex,
			})
		}
	})
	conn.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		p.log.Debug().Str(".state", state.String()).Msg("ICE")
		switch state {
		case webrtc.ICEConnectionStateConnected:
			p.setStable()
			if o.OnConnected != nil {
				o.OnConnected()
			}
		case webrtc.ICEConnectionStateFailed:
			p.setState(Failed)
			if o.OnFailure != nil {
				o.OnFailure(fmt.Errorf("%w: connection: %v, ice: %v, gathering: %v, signalling: %v",
					ErrNegotiationFailed, conn.ConnectionState(), conn.ICEConnectionState(),
					conn.ICEGatheringState(), conn.SignalingState()))
			}
		case webrtc.ICEConnectionStateClosed, webrtc.ICEConnectionStateDisconnected:
			p.Close()
		}
	})

	offer, err := conn.CreateOffer(nil)
	if err != nil {
		p.Close()
		return nil, "", fmt.Errorf("%w: %v", ErrNegotiationFailed, err)
	}
	if err = conn.SetLocalDescription(offer); err != nil {
		p.Close()
		return nil, "", fmt.Errorf("%w: %v", ErrNegotiationFailed, err)
	}
	p.setState(OfferGenerated)
	p.log.Debug().Msg("Created offer")
	return p, offer.SDP, nil
}

func (p *Peer) addSendTracks(source TrackSource, media MediaOptions) error {
	tracks, err := source.Tracks(media)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	// a zero-track offer is invalid, fall back to a silent audio-only track
	if len(tracks) == 0 {
		t, err := SilentAudio()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
		}
		p.syntheticStop = t.Stop
		tracks = []Track{t}
	}
	for _, t := range tracks {
		sender, err := p.conn.AddTrack(t.Local)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
		}
		if t.Stop != nil {
			p.stops = append(p.stops, t.Stop)
		}
		go drainRTCP(sender)
		p.log.Debug().Msgf("Added [%s] track", t.Local.Kind())
	}
	return nil
}

func (p *Peer) addRecvTransceivers() error {
	recv := webrtc.RTPTransceiverInit{Direction: webrtc.RTPTransceiverDirectionRecvonly}
	if _, err := p.conn.AddTransceiverFromKind(webrtc.RTPCodecTypeVideo, recv); err != nil {
		return err
	}
	if _, err := p.conn.AddTransceiverFromKind(webrtc.RTPCodecTypeAudio, recv); err != nil {
		return err
	}
	return nil
}

// drainRTCP reads incoming RTCP packets so interceptors keep working.
func drainRTCP(sender *webrtc.RTPSender) {
	rtcpBuf := make([]byte, 1500)
	for {
		if _, _, err := sender.Read(rtcpBuf); err != nil {
			return
		}
	}
}

func (p *Peer) Direction() Direction { return p.dir }
func (p *Peer) Channel() api.Channel { return p.channel }

func (p *Peer) State() NegotiationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Peer) setState(s NegotiationState) {
	p.mu.Lock()
	if !p.closed {
		p.state = s
	}
	p.mu.Unlock()
}

func (p *Peer) setStable() {
	p.setState(Stable)
	p.mu.Lock()
	stop := p.syntheticStop
	p.syntheticStop = nil
	p.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// ApplyAnswer completes the handshake with the remote answer.
func (p *Peer) ApplyAnswer(sdp string) error {
	answer := webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: sdp}
	if err := p.conn.SetRemoteDescription(answer); err != nil {
		p.log.Error().Err(err).Msg("set remote description failed")
		return fmt.Errorf("%w: %v", ErrNegotiationFailed, err)
	}
	p.setState(Answered)
	p.log.Debug().Msg("Set remote description")
	return nil
}

// AddCandidate feeds a remote ICE candidate into the connection.
func (p *Peer) AddCandidate(c api.Candidate) error {
	init := webrtc.ICECandidateInit{
		Candidate:     c.Candidate,
		SDPMid:        c.SDPMid,
		SDPMLineIndex: c.SDPMLineIndex,
	}
	if err := p.conn.AddICECandidate(init); err != nil {
		return err
	}
	p.log.Debug().Str("candidate", c.Candidate).Msg("Ice")
	return nil
}

// Close releases all transport and media resources. Idempotent.
func (p *Peer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.state = Closed
	stops := p.stops
	if p.syntheticStop != nil {
		stops = append(stops, p.syntheticStop)
		p.syntheticStop = nil
	}
	p.stops = nil
	p.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	if p.conn.ConnectionState() < webrtc.PeerConnectionStateDisconnected {
		// ignore this due to DTLS fatal: conn is closed
		_ = p.conn.Close()
	}
	p.log.Debug().Msg("WebRTC stop")
}
