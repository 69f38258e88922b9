package room

import "github.com/openmeet/roomclient/pkg/logger"

// Notifier is the presentation-layer notification collaborator.
// The session never renders anything itself.
type Notifier interface {
	// Alert shows a blocking notice with a single button.
	Alert(title, content, button string, fn func(answer bool))
	// Confirm shows a blocking ok/cancel dialog.
	Confirm(title, content, ok, cancel string, fn func(answer bool))
	// Notify shows a transient notice.
	Notify(message, icon string)
}

type NopNotifier struct{}

func (NopNotifier) Alert(string, string, string, func(bool))           {}
func (NopNotifier) Confirm(string, string, string, string, func(bool)) {}
func (NopNotifier) Notify(string, string)                              {}

// LogNotifier dumps notifications into the log, useful for headless runs.
type LogNotifier struct {
	Log *logger.Logger
}

func (n LogNotifier) Alert(title, content, _ string, _ func(bool)) {
	n.Log.Warn().Msgf("[!] %s: %s", title, content)
}

func (n LogNotifier) Confirm(title, content, _, _ string, fn func(bool)) {
	n.Log.Warn().Msgf("[?] %s: %s", title, content)
	if fn != nil {
		fn(false)
	}
}

func (n LogNotifier) Notify(message, _ string) { n.Log.Info().Msg(message) }
