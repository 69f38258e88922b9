// Package caps models the browser-specific screen capture arbitration
// as pluggable strategies, keeping the session state machine
// environment-agnostic.
package caps

import (
	"errors"

	"github.com/openmeet/roomclient/pkg/config"
)

type Browser uint8

const (
	Other Browser = iota
	Chrome
	Firefox
)

func (b Browser) String() string {
	switch b {
	case Chrome:
		return "chrome"
	case Firefox:
		return "firefox"
	}
	return "other"
}

func ParseBrowser(s string) Browser {
	switch s {
	case "chrome":
		return Chrome
	case "firefox":
		return Firefox
	}
	return Other
}

// ErrExtensionMissing is returned when a share attempt needs the capture
// extension and it is not installed. The caller should offer remediation.
var ErrExtensionMissing = errors.New("capture extension not installed")

// SourcePicker is the external capture-source selection flow
// (the Chrome extension dialog round trip).
type SourcePicker interface {
	// Request opens the selection dialog. Exactly one of the callbacks
	// fires, possibly on a foreign goroutine.
	Request(onPick func(streamId string), onCancel func())
}

// Strategy decides how a share attempt starts on this environment.
type Strategy interface {
	Browser() Browser
	CanPresent() bool

	// BeginShare runs the environment-specific arbitration before the local
	// presentation send may start. Immediate strategies return right away
	// and let the relay drive the send; asynchronous ones report through
	// the callbacks instead.
	BeginShare(onReady func(streamId string), onCancel func()) error

	// ShareFailureHint returns a remediation notice to show when the
	// presentation send fails, ok=false when there is nothing to suggest.
	ShareFailureHint() (title, content string, ok bool)

	// ExtensionURL points at the capture extension install location,
	// empty when the environment needs none.
	ExtensionURL() string
}

// New selects the strategy for the detected environment.
func New(conf config.Caps, picker SourcePicker) Strategy {
	switch ParseBrowser(conf.Browser) {
	case Chrome:
		return &chromeStrategy{conf: conf, picker: picker}
	case Firefox:
		return &firefoxStrategy{conf: conf}
	}
	return &genericStrategy{}
}

// chromeStrategy requires the capture extension and defers the share
// start until the user picked a stream in the extension dialog.
type chromeStrategy struct {
	conf   config.Caps
	picker SourcePicker
}

func (s *chromeStrategy) Browser() Browser { return Chrome }

func (s *chromeStrategy) CanPresent() bool { return s.conf.CanPresent }

func (s *chromeStrategy) BeginShare(onReady func(string), onCancel func()) error {
	if !s.conf.ExtensionInstalled {
		return ErrExtensionMissing
	}
	s.picker.Request(onReady, onCancel)
	return nil
}

func (s *chromeStrategy) ShareFailureHint() (string, string, bool) { return "", "", false }

func (s *chromeStrategy) ExtensionURL() string { return s.conf.ExtensionURL }

// firefoxStrategy needs no extension; the relay drives the send start.
// A failed capture usually means the about:config switches are off.
type firefoxStrategy struct {
	conf config.Caps
}

func (s *firefoxStrategy) Browser() Browser { return Firefox }

func (s *firefoxStrategy) CanPresent() bool { return s.conf.CanPresent }

func (s *firefoxStrategy) BeginShare(func(string), func()) error { return nil }

func (s *firefoxStrategy) ShareFailureHint() (string, string, bool) {
	return "Firefox needs to be configured (about:config)",
		"Set media.getusermedia.screensharing.enabled to true and add our address to media.getusermedia.screensharing.allowed_domains",
		true
}

func (s *firefoxStrategy) ExtensionURL() string { return "" }

// genericStrategy covers browsers without any capture support.
type genericStrategy struct{}

func (genericStrategy) Browser() Browser { return Other }

func (genericStrategy) CanPresent() bool { return false }

func (genericStrategy) BeginShare(func(string), func()) error { return nil }

func (genericStrategy) ShareFailureHint() (string, string, bool) { return "", "", false }

func (genericStrategy) ExtensionURL() string { return "" }
