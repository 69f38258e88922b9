// Package room implements the client-side session of a multi-party
// video room: the participant registry, the per-channel peer
// connection lifecycle, the exclusive presentation slot, and the
// shared recording flag, all driven by relay signaling.
package room

import (
	"errors"
	"fmt"
	"sync"

	"github.com/openmeet/roomclient/pkg/api"
	"github.com/openmeet/roomclient/pkg/caps"
	"github.com/openmeet/roomclient/pkg/com"
	"github.com/openmeet/roomclient/pkg/config"
	"github.com/openmeet/roomclient/pkg/logger"
	"github.com/openmeet/roomclient/pkg/metrics"
	"github.com/openmeet/roomclient/pkg/rtc"
)

// Transport sends outbound signaling packets to the relay.
type Transport interface {
	Send(t api.PT, payload any) error
}

// Session is the room state machine. All state is owned by a single
// goroutine running Run; public methods and transport/peer callbacks
// post closures onto its queue instead of touching state directly.
type Session struct {
	conf config.Room
	log  *logger.Logger

	out    Transport
	peers  PeerFactory
	caps   caps.Strategy
	notify Notifier
	m      *metrics.Metrics

	reg  *Registry
	cons *Constraints
	pres *Presentation
	rec  *Recording

	roster []string
	line   string

	queue chan func()
	done  chan struct{}
	stop  sync.Once

	onChange func(State)
}

func New(conf config.Room, out Transport, peers PeerFactory, strategy caps.Strategy,
	notify Notifier, m *metrics.Metrics, log *logger.Logger) *Session {
	if notify == nil {
		notify = NopNotifier{}
	}
	// an id must exist before the first packet, the registry can't hold
	// a participant under an empty key
	if conf.UserId == "" {
		conf.UserId = com.NewUid().String()
	}
	s := &Session{
		conf:   conf,
		log:    log,
		out:    out,
		peers:  peers,
		caps:   strategy,
		notify: notify,
		m:      m,
		reg:    NewRegistry(log, conf.UserId),
		cons:   NewConstraints(),
		pres:   NewPresentation(),
		rec:    &Recording{},
		queue:  make(chan func(), 128),
		done:   make(chan struct{}),
	}
	s.reg.Add(conf.UserId, conf.UserName)
	s.roster = []string{conf.UserName}
	return s
}

// OnStateChange installs the snapshot observer. Set before Run starts.
func (s *Session) OnStateChange(fn func(State)) { s.onChange = fn }

// Run drains the task queue until Stop. It owns all session state.
func (s *Session) Run() {
	for {
		// stop wins over queued work
		select {
		case <-s.done:
			return
		default:
		}
		select {
		case task := <-s.queue:
			task()
		case <-s.done:
			return
		}
	}
}

// Stop terminates the loop. Queued tasks past this point are dropped.
func (s *Session) Stop() { s.stop.Do(func() { close(s.done) }) }

// Done closes when the session has been stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) post(task func()) {
	select {
	case s.queue <- task:
	case <-s.done:
	}
}

// HandlePacket schedules an inbound relay packet for dispatch.
func (s *Session) HandlePacket(in api.In) { s.post(func() { s.dispatch(in) }) }

// Start announces the local participant to the relay.
func (s *Session) Start() {
	s.post(func() {
		s.send(api.JoinRoom, api.JoinRoomRequest{
			Room: s.conf.Name, UserId: s.conf.UserId, UserName: s.conf.UserName,
		})
	})
}

// Share requests the presentation slot with the given source
// (SourceScreen or SourceWindow).
func (s *Session) Share(source string) { s.post(func() { s.share(source) }) }

// StopPresenting releases the local presentation, if any.
func (s *Session) StopPresenting() { s.post(func() { s.stopPresenting() }) }

// ToggleRecording flips the room recording flag.
func (s *Session) ToggleRecording() { s.post(func() { s.toggleRecording() }) }

// Invite dials an external callee into the room.
func (s *Session) Invite(callee string) {
	s.post(func() { s.send(api.Invite, api.InviteRequest{Callee: callee}) })
}

// SetMode renegotiates the composite send with a new mode.
func (s *Session) SetMode(m CompositeMode) { s.post(func() { s.renew(m) }) }

// SetResolution updates the capture resolution for future negotiations.
func (s *Session) SetResolution(w, h int, auto bool) {
	s.post(func() {
		s.cons.SetResolution(w, h, auto)
		if auto {
			s.notify.Notify("Resolution auto adjustment", "video")
		} else {
			s.notify.Notify(fmt.Sprintf("Resolution set to: %dx%d", w, h), "video")
		}
	})
}

// Leave exits the room and stops the session.
func (s *Session) Leave() { s.post(func() { s.leave() }) }

func (s *Session) send(t api.PT, payload any) {
	if err := s.out.Send(t, payload); err != nil {
		s.log.Error().Err(err).Str("type", t.String()).Msg("send failed")
	}
}

func (s *Session) emitChange() {
	if s.onChange == nil {
		return
	}
	me := s.reg.Me()
	roster := make([]string, len(s.roster))
	copy(roster, s.roster)
	s.onChange(State{
		Room:         s.conf.Name,
		Participants: roster,
		Presentation: PresentationState{
			State:         s.pres.State(),
			PresenterId:   s.pres.PresenterId(),
			PresenterIsMe: s.pres.IsPresenter(me.Id),
			Disabled:      s.pres.Disabled(),
		},
		Recording:     s.rec.Active(),
		LineExtension: s.line,
	})
}

// share runs the environment arbitration and claims the slot. The
// actual send starts either here (immediate strategies wait for the
// relay go-ahead), or when the source picker reports back.
func (s *Session) share(source string) {
	me := s.reg.Me()
	if s.pres.Active() && !s.pres.IsPresenter(me.Id) {
		s.log.Info().Msg("a presentation is already running")
		return
	}
	if !s.caps.CanPresent() {
		s.log.Info().Msg("presenting is not available here")
		return
	}
	if source == s.cons.Type() && s.caps.Browser() != caps.Chrome {
		return
	}
	// switching sources mid-presentation restarts the claim
	if s.cons.Type() != SourceComposite {
		s.stopPresenting()
	}

	err := s.caps.BeginShare(
		func(streamId string) {
			s.post(func() {
				s.cons.SetStreamId(streamId)
				s.sendStream(api.Presentation)
				s.emitChange()
			})
		},
		func() { s.post(func() { s.stopPresenting() }) },
	)
	if err != nil {
		if errors.Is(err, caps.ErrExtensionMissing) {
			s.notify.Confirm("Screensharing extension needed",
				"To share your screen or a window, install the capture extension first.",
				"Install", "Cancel", func(ok bool) {
					if ok {
						if u := s.caps.ExtensionURL(); u != "" {
							s.notify.Notify("Get the extension at "+u, "download")
						}
					}
				})
		} else {
			s.log.Error().Err(err).Msg("share arbitration failed")
		}
		return
	}

	s.cons.SetType(source)
	s.pres.BeginLocal(me.Id)
	s.m.PresenterChanges.Inc()
	s.send(api.NewPresenter, api.NewPresenterRequest{
		UserId: me.Id, Room: s.conf.Name, MediaSource: source,
	})
	s.emitChange()
}

// stopPresenting rolls the local claim back: disposes the send peer,
// releases the slot and tells the relay. Safe while someone else is
// presenting: only a local claim is reset.
func (s *Session) stopPresenting() {
	me := s.reg.Me()
	me.closePeer(api.Presentation)
	if s.pres.IsPresenter(me.Id) {
		s.pres.Reset()
	}
	s.cons.SetType(SourceComposite)
	s.cons.SetStreamId("")
	s.send(api.StopPresenting, nil)
	s.emitChange()
}

func (s *Session) toggleRecording() {
	me := s.reg.Me()
	rq := api.RecordRequest{Room: s.conf.Name, UserId: me.Id, UserName: me.Name}
	if s.rec.Active() {
		s.send(api.StopRecord, rq)
	} else {
		s.send(api.Record, rq)
	}
	s.rec.Toggle()
	s.emitChange()
}

// renew renegotiates the composite send under a new mode, per the
// relay's renegotiation contract: dispose, announce, re-offer.
func (s *Session) renew(m CompositeMode) {
	me := s.reg.Me()
	me.closePeer(api.Composite)
	s.cons.SetMode(m)
	s.send(api.Renew, nil)
	s.sendStream(api.Composite)
	s.emitChange()
}

func (s *Session) leave() {
	s.send(api.LeaveRoom, nil)
	s.cons.SetType(SourceComposite)
	s.reg.Clear()
	s.Stop()
}

// sendStream opens the local send peer for the channel and offers it
// to the relay. A previous peer on the channel is disposed first.
func (s *Session) sendStream(ch api.Channel) {
	me := s.reg.Me()
	me.closePeer(ch)

	peer, offer, err := s.peers.NewPeer(rtc.PeerOptions{
		Dir:     rtc.SendOnly,
		Channel: ch,
		Media:   s.cons.MediaOptions(ch == api.Presentation),
		OnCandidate: func(c api.Candidate) {
			s.post(func() { s.relayCandidate(me.Id, ch, c) })
		},
		OnFailure: func(err error) {
			s.post(func() { s.sendFailed(ch, err) })
		},
	})
	if err != nil {
		s.sendFailed(ch, err)
		return
	}
	me.attach(ch, peer)
	s.m.PeersCreated.Inc()
	s.send(api.ReceiveVideoFrom, api.ReceiveVideoFromRequest{
		UserId: me.Id, Type: ch, SdpOffer: offer,
	})
	if ch == api.Presentation {
		s.pres.ConfirmLocal()
		s.pres.Disable(s.cons.Type())
	}
}

func (s *Session) sendFailed(ch api.Channel, err error) {
	s.m.NegotiationFailures.Inc()
	s.log.Error().Err(err).Str("ch", string(ch)).Msg("send stream failed")
	if ch != api.Presentation {
		return
	}
	if errors.Is(err, rtc.ErrCaptureUnavailable) {
		if title, content, ok := s.caps.ShareFailureHint(); ok {
			s.notify.Alert(title, content, "Ok", nil)
		}
	}
	s.stopPresenting()
}

// receiveVideo opens a receive peer towards a remote sender and offers
// it to the relay. A presentation sender also claims the slot as the
// remote presenter.
func (s *Session) receiveVideo(userId, name string, screensharer bool) {
	p := s.reg.Get(userId)
	if p == nil {
		p = s.reg.Add(userId, name)
	}
	ch := api.Composite
	if screensharer {
		ch = api.Presentation
		s.pres.SetRemote(userId)
		s.m.PresenterChanges.Inc()
	}
	p.closePeer(ch)

	peer, offer, err := s.peers.NewPeer(rtc.PeerOptions{
		Dir:     rtc.RecvOnly,
		Channel: ch,
		OnCandidate: func(c api.Candidate) {
			s.post(func() { s.relayCandidate(userId, ch, c) })
		},
		OnFailure: func(err error) {
			s.post(func() {
				s.m.NegotiationFailures.Inc()
				s.log.Error().Err(err).Str("user", userId).Str("ch", string(ch)).Msg("receive stream failed")
			})
		},
	})
	if err != nil {
		s.m.NegotiationFailures.Inc()
		s.log.Error().Err(err).Str("user", userId).Msg("receive peer failed")
		return
	}
	p.attach(ch, peer)
	s.m.PeersCreated.Inc()
	s.send(api.ReceiveVideoFrom, api.ReceiveVideoFromRequest{
		UserId: userId, Type: ch, SdpOffer: offer,
	})
}

func (s *Session) relayCandidate(userId string, ch api.Channel, c api.Candidate) {
	s.send(api.OnIceCandidate, api.OnIceCandidateRequest{
		UserId: userId, Type: ch, Candidate: c,
	})
}
