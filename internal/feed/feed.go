// Package feed delivers raw transaction JSON from a provider WebSocket
// endpoint. It reconnects with exponential backoff and replays the
// subscribe payload after every reconnect. The stream carries no
// classification logic; consumers hand messages to a provider adapter.
package feed

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Config controls connection behavior.
type Config struct {
	// ReconnectDelay is the initial delay before a reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay caps the exponential backoff.
	MaxReconnectDelay time.Duration
	// PingInterval is the interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is the per-message read deadline.
	ReadTimeout time.Duration
	// WriteTimeout is the deadline for writes, including pings.
	WriteTimeout time.Duration
	// Buffer is the message channel capacity.
	Buffer int
}

// DefaultConfig returns the default stream configuration.
func DefaultConfig() Config {
	return Config{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		Buffer:            10000,
	}
}

// Observer receives stream lifecycle events.
type Observer interface {
	MessageReceived()
	Reconnected()
	StreamError(kind string)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) MessageReceived()        {}
func (NopObserver) Reconnected()            {}
func (NopObserver) StreamError(kind string) {}

// Stream is a reconnecting WebSocket message source.
type Stream struct {
	endpoint  string
	config    Config
	subscribe []byte
	logger    *log.Logger
	observer  Observer

	msgs    chan []byte
	running atomic.Bool
}

// Option configures a Stream.
type Option func(*Stream)

// WithConfig overrides the default connection configuration.
func WithConfig(c Config) Option {
	return func(s *Stream) { s.config = c }
}

// WithSubscribePayload sets a payload written after every successful
// connect, before reading begins.
func WithSubscribePayload(payload []byte) Option {
	return func(s *Stream) { s.subscribe = payload }
}

// WithLogger sets the stream logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Stream) { s.logger = l }
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(s *Stream) { s.observer = o }
}

// New creates a stream for the given endpoint. No connection is made
// until Run is called.
func New(endpoint string, opts ...Option) *Stream {
	s := &Stream{
		endpoint: endpoint,
		config:   DefaultConfig(),
		logger:   log.Default(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.config.Buffer <= 0 {
		s.config.Buffer = DefaultConfig().Buffer
	}
	s.msgs = make(chan []byte, s.config.Buffer)
	return s
}

// Messages returns the channel raw messages are delivered on. The
// channel is closed when Run returns.
func (s *Stream) Messages() <-chan []byte {
	return s.msgs
}

// Run connects and reads until ctx is canceled. Connection failures and
// read errors trigger reconnects with exponential backoff; the backoff
// resets after a successful read. Run returns ctx.Err() on cancellation.
func (s *Stream) Run(ctx context.Context) error {
	if s.running.Swap(true) {
		return fmt.Errorf("stream already running")
	}
	defer close(s.msgs)

	delay := s.config.ReconnectDelay
	first := true

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := s.dial(ctx)
		if err != nil {
			s.observer.StreamError("dial")
			s.logger.Printf("feed: dial %s failed: %v, retrying in %s", s.endpoint, err, delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = s.nextDelay(delay)
			continue
		}

		if !first {
			s.observer.Reconnected()
		}
		first = false

		err = s.readConn(ctx, conn, &delay)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.observer.StreamError("read")
		s.logger.Printf("feed: connection lost: %v, reconnecting in %s", err, delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = s.nextDelay(delay)
	}
}

func (s *Stream) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	if len(s.subscribe) > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, s.subscribe); err != nil {
			conn.Close()
			return nil, fmt.Errorf("write subscribe: %w", err)
		}
	}

	return conn, nil
}

// readConn reads messages until the connection fails or ctx is canceled.
// A dedicated goroutine sends pings; closing done stops it.
func (s *Stream) readConn(ctx context.Context, conn *websocket.Conn, delay *time.Duration) error {
	done := make(chan struct{})
	defer close(done)

	go s.pingLoop(conn, done)

	// Unblock ReadMessage on cancellation.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		*delay = s.config.ReconnectDelay
		s.observer.MessageReceived()

		select {
		case s.msgs <- message:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Stream) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (s *Stream) nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > s.config.MaxReconnectDelay {
		d = s.config.MaxReconnectDelay
	}
	return d
}
