package rtc

import "testing"

func TestStaticSourceTracks(t *testing.T) {
	src := StaticSource{}

	tracks, err := src.Tracks(MediaOptions{Audio: true, Video: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected audio+video, got %v", len(tracks))
	}

	tracks, err = src.Tracks(MediaOptions{Audio: true})
	if err != nil || len(tracks) != 1 {
		t.Fatalf("audio only: %v %v", len(tracks), err)
	}
	if tracks[0].Local.Kind().String() != "audio" {
		t.Errorf("wrong kind: %v", tracks[0].Local.Kind())
	}

	// watch-only sends nothing, the peer falls back to synthetic audio
	tracks, err = src.Tracks(MediaOptions{})
	if err != nil || len(tracks) != 0 {
		t.Errorf("watch only: %v %v", len(tracks), err)
	}
}

func TestTrackCodecs(t *testing.T) {
	for _, codec := range []string{"vp8", "vpx", "vp9", "h264"} {
		if _, err := newTrack("video", "camera", codec); err != nil {
			t.Errorf("%v: %v", codec, err)
		}
	}
	if _, err := newTrack("audio", "mic", "opus"); err != nil {
		t.Errorf("opus: %v", err)
	}
	if _, err := newTrack("video", "camera", "av2"); err == nil {
		t.Error("unsupported codec accepted")
	}
	if _, err := newTrack("audio", "mic", "mp3"); err == nil {
		t.Error("unsupported codec accepted")
	}
}

func TestSilentAudioStop(t *testing.T) {
	track, err := SilentAudio()
	if err != nil {
		t.Fatal(err)
	}
	if track.Local == nil || track.Stop == nil {
		t.Fatal("incomplete track")
	}
	track.Stop()
	track.Stop() // idempotent
}

func TestStateNames(t *testing.T) {
	states := map[NegotiationState]string{
		Created:        "created",
		OfferGenerated: "offerGenerated",
		Answered:       "answered",
		Stable:         "stable",
		Failed:         "failed",
		Closed:         "closed",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("%v != %v", s.String(), want)
		}
	}
	if SendOnly.String() != "sendonly" || RecvOnly.String() != "recvonly" {
		t.Error("direction names")
	}
}
