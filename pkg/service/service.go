// Package service bundles long-running parts of the application for a
// shared start/stop lifecycle.
package service

type Service interface {
	Run()
	Stop() error
}

type Group struct {
	list []Service
}

func (g *Group) Add(services ...Service) { g.list = append(g.list, services...) }

// Start runs every service in its own goroutine.
func (g *Group) Start() {
	for _, s := range g.list {
		if s != nil {
			go s.Run()
		}
	}
}

// Stop stops the services in reverse start order, returning the last
// error encountered.
func (g *Group) Stop() (err error) {
	for i := len(g.list) - 1; i >= 0; i-- {
		if g.list[i] == nil {
			continue
		}
		if e := g.list[i].Stop(); e != nil {
			err = e
		}
	}
	return
}
