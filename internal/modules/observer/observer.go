package observer

import (
	"net/http"
	"sync"
)

type Observer interface {
	Update(event string, data interface{})
}

type Subject interface {
	Notify(event string, data interface{})
}

// RequestRecord is sent with consts.EventRequest before a request leaves.
type RequestRecord struct {
	Method string
	URL    string
	Header http.Header
	JSON   any
}

// ResponseRecord is sent with consts.EventResponse once the body is read.
type ResponseRecord struct {
	Proto      string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Func adapts a plain function to the Observer interface.
type Func func(event string, data interface{})

func (f Func) Update(event string, data interface{}) {
	f(event, data)
}

type Observers struct {
	mu        sync.Mutex
	observers []Observer
}

func (s *Observers) Attach(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Observers) Notify(event string, data interface{}) {
	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()
	for _, o := range observers {
		o.Update(event, data)
	}
}
