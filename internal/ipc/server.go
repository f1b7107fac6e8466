package ipc

import (
	"bufio"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hibrid/mywm/internal/wm"
)

// outboxDepth bounds how many undelivered broadcast events a subscriber may
// queue before the server drops it, per spec.md §4.6's back-pressure rule.
const outboxDepth = 32

// Server is the control socket of spec.md §4.6. Every accepted connection
// is both a command source (lines it sends are forwarded to the reactor's
// command queue) and an event subscriber (every broadcast event is pushed
// to it), matching spec.md §6's "a client that sends no commands is a pure
// subscriber."
//
// Grounded on 1broseidon-termtile/internal/ipc/server.go's
// accept-loop/per-connection-goroutine shape, adapted from its
// one-shot-JSON-request/close protocol to the persistent line-oriented
// request+broadcast protocol spec.md §4.6 describes.
type Server struct {
	listener net.Listener
	commands chan<- wm.CommandRequest
	log      *slog.Logger

	mu   sync.Mutex
	subs map[uuid.UUID]*subscriber
}

type subscriber struct {
	id   uuid.UUID
	conn net.Conn

	writeMu sync.Mutex // serializes writes to conn between replies and the broadcast pump
	out     chan []byte
}

// NewServer constructs a server that forwards parsed command lines onto
// commands — the same bounded channel the reactor selects on.
func NewServer(commands chan<- wm.CommandRequest, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		commands: commands,
		log:      log,
		subs:     make(map[uuid.UUID]*subscriber),
	}
}

// Listen opens the unix socket at path, removing a stale socket file left
// behind by a prior crashed instance first.
func (s *Server) Listen(path string) error {
	os.Remove(path)
	l, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	if err := os.Chmod(path, 0600); err != nil {
		l.Close()
		return err
	}
	s.listener = l
	go s.acceptLoop()
	return nil
}

// Close stops accepting new connections and disconnects every subscriber.
func (s *Server) Close() error {
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sub := range s.subs {
		sub.conn.Close()
		delete(s.subs, id)
	}
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	sub := &subscriber{id: uuid.New(), conn: conn, out: make(chan []byte, outboxDepth)}
	s.addSubscriber(sub)
	defer s.removeSubscriber(sub)

	go s.pump(sub)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply := make(chan string, 1)
		s.commands <- wm.CommandRequest{Line: line, Reply: reply}
		resp := <-reply
		if err := sub.writeLine([]byte(resp + "\n")); err != nil {
			return
		}
	}
}

// pump drains a subscriber's broadcast queue for as long as its connection
// is registered; writeLine's own mutex keeps these writes from interleaving
// with the synchronous reply writes handleConnection issues on the same
// conn.
func (s *Server) pump(sub *subscriber) {
	for b := range sub.out {
		if sub.writeLine(b) != nil {
			return
		}
	}
}

func (sub *subscriber) writeLine(b []byte) error {
	sub.writeMu.Lock()
	defer sub.writeMu.Unlock()
	_, err := sub.conn.Write(b)
	return err
}

func (s *Server) addSubscriber(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.id] = sub
}

func (s *Server) removeSubscriber(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub.id]; !ok {
		return
	}
	delete(s.subs, sub.id)
	close(sub.out)
	sub.conn.Close()
}

// Broadcast pushes one event line to every subscriber, non-blocking: a
// subscriber whose queue is full is dropped rather than stalling the
// reactor, per spec.md §4.6's back-pressure rule. internal/bar's Publisher
// is the sole caller, formatting the three event payloads of spec.md §4.5
// and §4.6 and delegating the actual fan-out here.
func (s *Server) Broadcast(name string, payload any) {
	line, err := encodeEvent(name, payload)
	if err != nil {
		s.log.Error("encode event", "event", name, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sub := range s.subs {
		select {
		case sub.out <- line:
		default:
			s.log.Warn("dropping slow ipc subscriber", "id", id)
			delete(s.subs, id)
			close(sub.out)
			sub.conn.Close()
		}
	}
}
