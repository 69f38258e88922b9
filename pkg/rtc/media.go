package rtc

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
)

// MediaOptions describe what the local side should capture for a send peer.
type MediaOptions struct {
	Audio bool
	Video bool

	Width  int
	Height int

	// Source is the requested video origin: composite, screen or window.
	Source string
	// StreamId carries the browser extension's chosen capture stream, if any.
	StreamId string
}

// Track pairs a local track with its release function.
type Track struct {
	Local webrtc.TrackLocal
	Stop  func()
}

// TrackSource provides local capture tracks for send peers.
// An empty result is valid: the peer falls back to a synthetic silent track
// so that offer generation still succeeds.
type TrackSource interface {
	Tracks(o MediaOptions) ([]Track, error)
}

// StaticSource builds sample-fed local tracks without any real capture
// device behind them. Media is pushed by whoever owns the track.
type StaticSource struct {
	AudioCodec string
	VideoCodec string
}

func (s StaticSource) Tracks(o MediaOptions) (tracks []Track, err error) {
	if o.Audio {
		t, err := newTrack("audio", "mic", codecOr(s.AudioCodec, "opus"))
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, Track{Local: t})
	}
	if o.Video {
		label := "camera"
		if o.Source != "" && o.Source != "composite" {
			label = o.Source
		}
		t, err := newTrack("video", label, codecOr(s.VideoCodec, "vp8"))
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, Track{Local: t})
	}
	return tracks, nil
}

func codecOr(codec, def string) string {
	if codec == "" {
		return def
	}
	return codec
}

func newTrack(id string, label string, codec string) (*webrtc.TrackLocalStaticSample, error) {
	codec = strings.ToLower(codec)
	var mime string
	switch id {
	case "audio":
		switch codec {
		case "opus":
			mime = webrtc.MimeTypeOpus
		}
	case "video":
		switch codec {
		case "h264":
			mime = webrtc.MimeTypeH264
		case "vpx", "vp8":
			mime = webrtc.MimeTypeVP8
		case "vp9":
			mime = webrtc.MimeTypeVP9
		}
	}
	if mime == "" {
		return nil, fmt.Errorf("unsupported codec %s:%s", id, codec)
	}
	return webrtc.NewTrackLocalStaticSample(webrtc.RTPCodecCapability{MimeType: mime}, id, label)
}

const silenceInterval = 20 * time.Millisecond

// opus frame encoding pure silence
var opusSilence = []byte{0xf8, 0xff, 0xfe}

// SilentAudio returns an audio-only track fed with silent opus frames.
// It keeps a media-less offer valid; Stop ends the feed.
func SilentAudio() (Track, error) {
	t, err := newTrack("audio", "silence", "opus")
	if err != nil {
		return Track{}, err
	}
	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(silenceInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := t.WriteSample(media.Sample{Data: opusSilence, Duration: silenceInterval}); err != nil {
					return
				}
			}
		}
	}()
	return Track{Local: t, Stop: func() { once.Do(func() { close(done) }) }}, nil
}
