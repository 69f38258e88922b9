package room

import "github.com/openmeet/roomclient/pkg/rtc"

// Video source kinds the session can send from.
const (
	SourceComposite = "composite"
	SourceScreen    = "screen"
	SourceWindow    = "window"
)

// CompositeMode selects what the composite send carries.
type CompositeMode uint8

const (
	Normal CompositeMode = iota
	AudioOnly
	WatchOnly
)

func (m CompositeMode) String() string {
	switch m {
	case AudioOnly:
		return "audioOnly"
	case WatchOnly:
		return "watchOnly"
	}
	return "normal"
}

// Constraints hold the current local capture settings. Mutated only
// from the session loop.
type Constraints struct {
	typ  string
	mode CompositeMode

	width  int
	height int
	auto   bool

	streamId string
	warning  bool
}

func NewConstraints() *Constraints {
	return &Constraints{typ: SourceComposite, mode: Normal, auto: true}
}

func (c *Constraints) Type() string        { return c.typ }
func (c *Constraints) SetType(t string)    { c.typ = t }
func (c *Constraints) Mode() CompositeMode { return c.mode }

func (c *Constraints) SetMode(m CompositeMode) { c.mode = m }

func (c *Constraints) SetResolution(w, h int, auto bool) {
	c.width, c.height, c.auto = w, h, auto
}

func (c *Constraints) StreamId() string      { return c.streamId }
func (c *Constraints) SetStreamId(id string) { c.streamId = id }

// Warning marks the session as rejected by the server (duplicate name),
// so the shutdown path can tell a forced exit from a voluntary one.
func (c *Constraints) Warning() bool      { return c.warning }
func (c *Constraints) SetWarning(on bool) { c.warning = on }

// MediaOptions translates the settings for the given channel into a
// capture request.
func (c *Constraints) MediaOptions(presentation bool) rtc.MediaOptions {
	if presentation {
		return rtc.MediaOptions{Video: true, Source: c.typ, StreamId: c.streamId}
	}
	o := rtc.MediaOptions{Audio: true, Video: true, Source: SourceComposite}
	switch c.mode {
	case AudioOnly:
		o.Video = false
	case WatchOnly:
		o.Audio, o.Video = false, false
	}
	if !c.auto {
		o.Width, o.Height = c.width, c.height
	}
	return o
}
