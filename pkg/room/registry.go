package room

import (
	"github.com/openmeet/roomclient/pkg/com"
	"github.com/openmeet/roomclient/pkg/logger"
)

// Registry tracks every known participant of the room, the local one
// included. Removal closes the participant's connections first, so a
// removed participant never leaks a live peer.
type Registry struct {
	log  *logger.Logger
	meId string

	users com.Map[string, *Participant]
}

func NewRegistry(log *logger.Logger, meId string) *Registry {
	return &Registry{log: log, meId: meId, users: com.NewMap[string, *Participant]()}
}

// Add registers a participant, returning the existing entry on a
// duplicate id.
func (r *Registry) Add(id string, name string) *Participant {
	if p, err := r.users.Find(id); err == nil {
		return p
	}
	p := newParticipant(id, name)
	r.users.Put(id, p)
	r.log.Debug().Str("user", id).Str("name", name).Msg("Participant added")
	return p
}

// Get returns the participant or nil when unknown.
func (r *Registry) Get(id string) *Participant {
	p, err := r.users.Find(id)
	if err != nil {
		return nil
	}
	return p
}

// Remove disposes the participant's connections and drops the entry.
// Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	p, err := r.users.Find(id)
	if err != nil {
		return
	}
	p.closeAll()
	r.users.RemoveByKey(id)
	r.log.Debug().Str("user", id).Msg("Participant removed")
}

// Clear disposes everyone, the local participant included.
func (r *Registry) Clear() {
	for _, id := range r.users.Keys() {
		r.Remove(id)
	}
}

// Me returns the local participant. Its absence while the session is
// live is an unrecoverable state corruption.
func (r *Registry) Me() *Participant {
	p, err := r.users.Find(r.meId)
	if err != nil {
		r.log.Panic().Str("user", r.meId).Msg("local participant is gone")
	}
	return p
}

func (r *Registry) Len() int { return r.users.Len() }

// Names returns the display names of every known participant.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.users.Len())
	r.users.ForEach(func(p *Participant) { names = append(names, p.Name) })
	return names
}
