// Package sse streams card catalog changes to browsers as Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Event types sent to clients.
const (
	TypeCardCreated    = "card.created"
	TypeCardUpdated    = "card.updated"
	TypeCardDeleted    = "card.deleted"
	TypeResultsUpdated = "results.updated"
)

// clientBuffer is the number of messages queued per client before new
// messages are dropped for it.
const clientBuffer = 64

// Event is one message broadcast to every client.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// CardChange is the payload of the card.* events.
type CardChange struct {
	Path string `json:"path"`
}

type cardChangeReq struct {
	kind string
	path string
}

// Broker fans events out to connected SSE clients.
//
// A single goroutine owns the client set, the event sequence and the
// results throttle; public methods talk to it over channels.
type Broker struct {
	resultsMin time.Duration

	subscribeCh   chan chan []byte
	unsubscribeCh chan chan []byte
	publishCh     chan Event
	changeCh      chan cardChangeReq
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker that sends results.updated at most once per
// resultsThrottle.
func NewBroker(resultsThrottle time.Duration) *Broker {
	if resultsThrottle <= 0 {
		resultsThrottle = 2 * time.Second
	}

	b := &Broker{
		resultsMin:    resultsThrottle,
		subscribeCh:   make(chan chan []byte),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan Event, 256),
		changeCh:      make(chan cardChangeReq, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

// changeType maps a watcher change kind to its event type.
func changeType(kind string) (string, bool) {
	switch kind {
	case "created":
		return TypeCardCreated, true
	case "updated":
		return TypeCardUpdated, true
	case "deleted":
		return TypeCardDeleted, true
	}
	return "", false
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	var (
		seq         uint64
		lastResults time.Time
	)

	broadcast := func(event Event) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		seq++
		raw := []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", seq, event.Type, payload))

		for ch := range clients {
			select {
			case ch <- raw:
			default:
				// Slow client: drop rather than stall the loop.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			clients[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case req := <-b.changeCh:
			typ, ok := changeType(req.kind)
			if !ok {
				continue
			}
			broadcast(Event{Type: typ, Data: CardChange{Path: req.path}})

			if now := time.Now(); now.Sub(lastResults) >= b.resultsMin {
				lastResults = now
				broadcast(Event{Type: TypeResultsUpdated, Data: struct{}{}})
			}

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close stops the broker and closes every client channel.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe registers a new client and returns its message channel.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishCardChange reports a catalog change of kind created, updated or
// deleted, followed by a throttled results.updated event. Other kinds are
// ignored.
func (b *Broker) PublishCardChange(kind, path string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.changeCh <- cardChangeReq{kind: kind, path: path}:
	case <-b.stopped:
	}
}

// ServeHTTP streams events to one client until it disconnects.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
