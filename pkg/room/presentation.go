package room

// PresState is the lifecycle phase of the room's single presentation slot.
type PresState uint8

const (
	Idle PresState = iota
	// Requesting: we asked for the slot, the relay has not confirmed yet
	Requesting
	Presenting
	Viewing
)

func (s PresState) String() string {
	switch s {
	case Requesting:
		return "requesting"
	case Presenting:
		return "presenting"
	case Viewing:
		return "viewing"
	}
	return "idle"
}

// Disabled lists the share entry points blocked in the current phase.
type Disabled struct {
	General bool
	Screen  bool
	Window  bool
}

// Presentation is the exclusive presentation slot of the room.
// At most one presenter exists at a time; presenterId is empty exactly
// when the state is Idle.
type Presentation struct {
	state       PresState
	presenterId string
	disabled    Disabled
}

func NewPresentation() *Presentation { return &Presentation{} }

func (p *Presentation) State() PresState    { return p.state }
func (p *Presentation) PresenterId() string { return p.presenterId }
func (p *Presentation) Active() bool        { return p.state != Idle }
func (p *Presentation) Disabled() Disabled  { return p.disabled }

func (p *Presentation) IsPresenter(id string) bool {
	return p.presenterId != "" && p.presenterId == id
}

// BeginLocal claims the slot optimistically for the local participant.
func (p *Presentation) BeginLocal(meId string) {
	p.state = Requesting
	p.presenterId = meId
}

// ConfirmLocal moves a local claim to Presenting. Safe to call again
// once presenting.
func (p *Presentation) ConfirmLocal() {
	if p.state == Requesting || p.state == Presenting {
		p.state = Presenting
	}
}

// SetRemote records a remote participant as the active presenter.
func (p *Presentation) SetRemote(userId string) {
	p.state = Viewing
	p.presenterId = userId
	p.disabled = Disabled{General: true, Screen: true, Window: true}
}

// Disable blocks further shares of the given source while keeping the
// other entry points available for a source switch.
func (p *Presentation) Disable(source string) {
	p.disabled.General = true
	switch source {
	case SourceScreen:
		p.disabled.Screen = true
	case SourceWindow:
		p.disabled.Window = true
	}
}

// Reset releases the slot.
func (p *Presentation) Reset() {
	p.state = Idle
	p.presenterId = ""
	p.disabled = Disabled{}
}
