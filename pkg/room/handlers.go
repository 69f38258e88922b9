package room

import (
	"github.com/openmeet/roomclient/pkg/api"
	"github.com/openmeet/roomclient/pkg/caps"
)

// dispatch routes one inbound packet. Runs on the session loop.
func (s *Session) dispatch(in api.In) {
	// a broadcast racing a leave lands on an empty registry, drop it
	select {
	case <-s.done:
		s.log.Debug().Str("type", in.T.String()).Msg("Drop")
		return
	default:
	}
	s.m.PacketsIn.Inc()
	s.log.Debug().Str("type", in.T.String()).Msg("Recv")
	switch in.T {
	case api.CompositeInfo:
		if rq := api.Unwrap[api.CompositeInfoRequest](in.Payload); rq != nil {
			s.handleCompositeInfo(*rq)
		} else {
			s.malformed(in)
		}
	case api.PresentationInfo:
		s.handlePresentationInfo()
	case api.PresenterReady:
		if rq := api.Unwrap[api.PresenterReadyRequest](in.Payload); rq != nil {
			s.handlePresenterReady(*rq)
		} else {
			s.malformed(in)
		}
	case api.CancelPresentation:
		if rq := api.Unwrap[api.CancelPresentationRequest](in.Payload); rq != nil {
			s.handleCancelPresentation(*rq)
		} else {
			s.malformed(in)
		}
	case api.NewParticipant:
		if rq := api.Unwrap[api.NewParticipantRequest](in.Payload); rq != nil {
			s.handleNewParticipant(*rq)
		} else {
			s.malformed(in)
		}
	case api.ParticipantLeft:
		if rq := api.Unwrap[api.ParticipantLeftRequest](in.Payload); rq != nil {
			s.handleParticipantLeft(*rq)
		} else {
			s.malformed(in)
		}
	case api.VideoAnswer:
		if rq := api.Unwrap[api.VideoAnswerRequest](in.Payload); rq != nil {
			s.handleVideoAnswer(*rq)
		} else {
			s.malformed(in)
		}
	case api.ExistingPresentation:
		s.handleExistingPresentation()
	case api.ExistingName:
		s.handleExistingName()
	case api.IceCandidate:
		if rq := api.Unwrap[api.IceCandidateRequest](in.Payload); rq != nil {
			s.handleIceCandidate(*rq)
		} else {
			s.malformed(in)
		}
	case api.LineAvailable:
		if rq := api.Unwrap[api.LineAvailableRequest](in.Payload); rq != nil {
			s.line = rq.Extension
			s.emitChange()
		} else {
			s.malformed(in)
		}
	case api.CallInformation:
		if rq := api.Unwrap[api.CallInformationRequest](in.Payload); rq != nil {
			s.notify.Notify(rq.Message, "phone")
		} else {
			s.malformed(in)
		}
	case api.RecordStarted:
		if rq := api.Unwrap[api.RecordStateRequest](in.Payload); rq != nil {
			s.handleRecordState(*rq, true)
		} else {
			s.malformed(in)
		}
	case api.RecordStopped:
		if rq := api.Unwrap[api.RecordStateRequest](in.Payload); rq != nil {
			s.handleRecordState(*rq, false)
		} else {
			s.malformed(in)
		}
	default:
		s.m.PacketsUnknown.Inc()
		s.log.Warn().Msgf("unknown packet type %v", in.T)
	}
}

func (s *Session) malformed(in api.In) {
	s.m.PacketsMalformed.Inc()
	s.log.Error().Err(api.ErrMalformed).Str("type", in.T.String()).Msg("packet dropped")
}

// handleCompositeInfo starts the composite send and, when the room
// already has a presenter, attaches to the running presentation.
func (s *Session) handleCompositeInfo(rq api.CompositeInfoRequest) {
	if rq.LineExtension != "" {
		s.line = rq.LineExtension
	}
	if len(rq.Names) > 0 {
		// the relay's roster excludes the local participant
		s.roster = append(rq.Names, s.reg.Me().Name)
	}
	s.sendStream(api.Composite)
	if rq.ExistingScreensharer {
		if rq.PresenterId == s.reg.Me().Id {
			s.pres.ConfirmLocal()
		} else {
			s.receiveVideo(rq.PresenterId, rq.Screensharer, true)
		}
	}
	s.emitChange()
}

// handlePresentationInfo is the relay's go-ahead for environments that
// start the presentation send without a picker round trip.
func (s *Session) handlePresentationInfo() {
	if s.caps.Browser() != caps.Firefox {
		return
	}
	s.sendStream(api.Presentation)
	s.emitChange()
}

func (s *Session) handlePresenterReady(rq api.PresenterReadyRequest) {
	if rq.UserId == s.reg.Me().Id {
		s.pres.ConfirmLocal()
	} else {
		s.receiveVideo(rq.UserId, rq.Presenter, true)
	}
	s.emitChange()
}

func (s *Session) handleCancelPresentation(rq api.CancelPresentationRequest) {
	s.pres.Reset()
	if rq.UserId != s.reg.Me().Id {
		if p := s.reg.Get(rq.UserId); p != nil {
			p.closePeer(api.Presentation)
		}
	}
	s.emitChange()
}

func (s *Session) handleNewParticipant(rq api.NewParticipantRequest) {
	s.reg.Add(rq.UserId, rq.Name)
	s.roster = append(s.roster, rq.Name)
	s.notify.Notify(rq.Name+" has joined the room", "account-plus")
	s.emitChange()
}

func (s *Session) handleParticipantLeft(rq api.ParticipantLeftRequest) {
	if rq.IsScreensharer {
		s.pres.Reset()
	}
	s.reg.Remove(rq.UserId)
	if rq.Names != nil {
		s.roster = rq.Names
	}
	s.notify.Notify(rq.Name+" has left the room", "account-remove")
	s.emitChange()
}

func (s *Session) handleVideoAnswer(rq api.VideoAnswerRequest) {
	peer := s.findPeer(rq.UserId, rq.Type)
	if peer == nil {
		return
	}
	if err := peer.ApplyAnswer(rq.SdpAnswer); err != nil {
		s.log.Error().Err(err).Str("user", rq.UserId).Str("ch", string(rq.Type)).Msg("answer rejected")
	}
}

func (s *Session) handleIceCandidate(rq api.IceCandidateRequest) {
	peer := s.findPeer(rq.UserId, rq.Type)
	if peer == nil {
		return
	}
	if err := peer.AddCandidate(rq.Candidate); err != nil {
		s.log.Error().Err(err).Str("user", rq.UserId).Str("ch", string(rq.Type)).Msg("candidate rejected")
	}
}

// findPeer resolves the (participant, channel) slot of a negotiation
// message. Late messages for disposed peers resolve to nil and are
// dropped by the caller.
func (s *Session) findPeer(userId string, ch api.Channel) MediaPeer {
	if !api.ValidChannel(ch) {
		s.m.PacketsMalformed.Inc()
		s.log.Error().Err(api.ErrMalformed).Str("ch", string(ch)).Msg("bad channel")
		return nil
	}
	p := s.reg.Get(userId)
	if p == nil {
		s.log.Warn().Err(ErrNoSuchConnection).Str("user", userId).Str("ch", string(ch)).Msg("dropped")
		return nil
	}
	peer := p.Peer(ch)
	if peer == nil {
		s.log.Warn().Err(ErrNoSuchConnection).Str("user", userId).Str("ch", string(ch)).Msg("dropped")
		return nil
	}
	return peer
}

// handleExistingPresentation resolves a claim race lost to another
// participant: roll the optimistic local claim back.
func (s *Session) handleExistingPresentation() {
	s.notify.Alert("Someone is currently presenting",
		"You will be able to present when the current presentation finishes.", "Ok", nil)
	s.stopPresenting()
}

// handleExistingName is a terminal rejection: the chosen name is taken.
func (s *Session) handleExistingName() {
	s.cons.SetWarning(true)
	s.notify.Alert("Name already taken",
		"Someone in the room already uses this name, please pick another one.", "Ok", nil)
	s.leave()
}

func (s *Session) handleRecordState(rq api.RecordStateRequest, started bool) {
	me := s.reg.Me()
	if rq.UserId == me.Id {
		// our own toggle echoed back, the flag already flipped locally
		if started {
			s.notify.Notify("You started a recording", "record")
		} else {
			s.notify.Notify("You stopped a recording", "record")
		}
		return
	}
	s.rec.Apply(started)
	if started {
		s.notify.Notify("A recording of room "+rq.Room+" has been started by "+rq.UserName, "record")
	} else {
		s.notify.Notify("The recording of room "+rq.Room+" has been stopped by "+rq.UserName, "record")
	}
	s.emitChange()
}
