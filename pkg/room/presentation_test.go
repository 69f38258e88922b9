package room

import "testing"

func TestPresentationLifecycle(t *testing.T) {
	p := NewPresentation()
	if p.Active() || p.PresenterId() != "" {
		t.Fatal("fresh slot should be idle and unowned")
	}

	p.BeginLocal("me")
	if p.State() != Requesting || !p.IsPresenter("me") {
		t.Fatalf("claim failed: %v %q", p.State(), p.PresenterId())
	}
	p.ConfirmLocal()
	if p.State() != Presenting {
		t.Fatalf("confirm failed: %v", p.State())
	}
	p.ConfirmLocal() // idempotent
	if p.State() != Presenting {
		t.Fatal("second confirm changed state")
	}

	p.Reset()
	if p.Active() || p.PresenterId() != "" || p.Disabled() != (Disabled{}) {
		t.Error("reset incomplete")
	}
}

func TestPresentationConfirmNeedsClaim(t *testing.T) {
	p := NewPresentation()
	p.ConfirmLocal()
	if p.State() != Idle {
		t.Errorf("confirm without claim: %v", p.State())
	}
}

func TestPresentationRemoteDisablesAll(t *testing.T) {
	p := NewPresentation()
	p.SetRemote("7")
	if p.State() != Viewing || !p.IsPresenter("7") {
		t.Fatalf("remote claim failed: %v %q", p.State(), p.PresenterId())
	}
	if d := p.Disabled(); !d.General || !d.Screen || !d.Window {
		t.Errorf("sharing still enabled: %+v", d)
	}
}

func TestPresentationDisableBySource(t *testing.T) {
	p := NewPresentation()
	p.Disable(SourceScreen)
	if d := p.Disabled(); !d.General || !d.Screen || d.Window {
		t.Errorf("screen share: %+v", d)
	}
	p.Reset()
	p.Disable(SourceWindow)
	if d := p.Disabled(); !d.General || d.Screen || !d.Window {
		t.Errorf("window share: %+v", d)
	}
}

func TestConstraintsMediaOptions(t *testing.T) {
	c := NewConstraints()
	if o := c.MediaOptions(false); !o.Audio || !o.Video || o.Width != 0 {
		t.Errorf("defaults: %+v", o)
	}
	c.SetMode(AudioOnly)
	if o := c.MediaOptions(false); !o.Audio || o.Video {
		t.Errorf("audio only: %+v", o)
	}
	c.SetMode(WatchOnly)
	if o := c.MediaOptions(false); o.Audio || o.Video {
		t.Errorf("watch only: %+v", o)
	}
	c.SetResolution(1280, 720, false)
	c.SetMode(Normal)
	if o := c.MediaOptions(false); o.Width != 1280 || o.Height != 720 {
		t.Errorf("fixed resolution: %+v", o)
	}
	c.SetResolution(1280, 720, true)
	if o := c.MediaOptions(false); o.Width != 0 || o.Height != 0 {
		t.Errorf("auto resolution: %+v", o)
	}

	c.SetType(SourceScreen)
	c.SetStreamId("s1")
	if o := c.MediaOptions(true); o.Audio || !o.Video || o.Source != SourceScreen || o.StreamId != "s1" {
		t.Errorf("presentation: %+v", o)
	}
}
