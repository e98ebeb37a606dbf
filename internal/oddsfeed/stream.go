// Package oddsfeed consumes the streaming odds tick feed over WebSocket
// and persists ticks as odds snapshots.
package oddsfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/config"
)

// ErrNotConnected indicates an operation was attempted without an
// established stream connection
var ErrNotConnected = errors.New("not connected to odds feed")

// MessageHandler is called for every raw message received from the feed
type MessageHandler func(msg json.RawMessage) error

// TickMessage represents one odds tick from the feed
type TickMessage struct {
	Op              string  `json:"op"`
	FixtureSourceID int64   `json:"fixture_id"`
	Home            float64 `json:"home"`
	Draw            float64 `json:"draw"`
	Away            float64 `json:"away"`
	QuotedAtMs      int64   `json:"quoted_at_ms"`
}

// statusMessage represents feed control messages
type statusMessage struct {
	Op      string `json:"op"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

// StreamClient handles the WebSocket connection to the odds feed
type StreamClient struct {
	streamURL     string
	apiKey        string
	reconnectBase time.Duration
	reconnectMax  time.Duration
	pingInterval  time.Duration

	mu              sync.RWMutex
	writeMu         sync.Mutex
	conn            *websocket.Conn
	isConnected     bool
	handlers        []MessageHandler
	subscribedIDs   []int64
	lastMessageTime time.Time

	logger logrus.FieldLogger
}

// NewStreamClient creates a new odds feed stream client
func NewStreamClient(cfg *config.OddsFeedConfig, logger logrus.FieldLogger) *StreamClient {
	return &StreamClient{
		streamURL:     cfg.StreamURL,
		apiKey:        cfg.APIKey,
		reconnectBase: time.Duration(cfg.ReconnectBaseSeconds) * time.Second,
		reconnectMax:  time.Duration(cfg.ReconnectMaxSeconds) * time.Second,
		pingInterval:  time.Duration(cfg.PingIntervalSeconds) * time.Second,
		handlers:      make([]MessageHandler, 0),
		logger:        logger,
	}
}

// AddHandler registers a message handler. Handlers must be registered
// before Run is called.
func (s *StreamClient) AddHandler(handler MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Run connects to the feed and keeps the subscription alive,
// reconnecting with exponential backoff until the context is cancelled
func (s *StreamClient) Run(ctx context.Context, fixtureSourceIDs []int64) error {
	s.mu.Lock()
	s.subscribedIDs = append([]int64(nil), fixtureSourceIDs...)
	s.mu.Unlock()

	backoff := s.reconnectBase
	for {
		err := s.connectAndRead(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.WithError(err).Warnf("Odds feed disconnected, reconnecting in %s", backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > s.reconnectMax {
			backoff = s.reconnectMax
		}
	}
}

// connectAndRead runs one connection lifetime: dial, authenticate,
// subscribe, then read until the connection drops
func (s *StreamClient) connectAndRead(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to odds feed: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()
	subscribed := s.subscribedIDs
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isConnected = false
		s.mu.Unlock()
		conn.Close()
	}()

	s.logger.WithField("url", s.streamURL).Info("Connected to odds feed")

	if err := s.sendMessage(map[string]interface{}{
		"op":      "auth",
		"api_key": s.apiKey,
	}); err != nil {
		return fmt.Errorf("auth failed: %w", err)
	}

	if len(subscribed) > 0 {
		if err := s.Subscribe(subscribed); err != nil {
			return err
		}
	}

	pingCtx, cancelPing := context.WithCancel(ctx)
	defer cancelPing()
	go s.pingLoop(pingCtx)

	return s.readMessages(ctx)
}

// Subscribe requests ticks for a set of fixtures
func (s *StreamClient) Subscribe(fixtureSourceIDs []int64) error {
	s.mu.Lock()
	s.subscribedIDs = append([]int64(nil), fixtureSourceIDs...)
	s.mu.Unlock()

	s.logger.WithField("fixtures", len(fixtureSourceIDs)).Info("Subscribing to odds ticks")
	return s.sendMessage(map[string]interface{}{
		"op":       "subscribe",
		"fixtures": fixtureSourceIDs,
	})
}

func (s *StreamClient) readMessages(ctx context.Context) error {
	s.mu.RLock()
	conn := s.conn
	handlers := s.handlers
	s.mu.RUnlock()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var msg json.RawMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("read failed: %w", err)
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		var status statusMessage
		if err := json.Unmarshal(msg, &status); err == nil && status.Op == "status" {
			if status.Status != 0 {
				s.logger.WithField("status", status.Status).
					Warnf("Odds feed status: %s", status.Message)
			}
			continue
		}

		for _, handler := range handlers {
			if err := handler(msg); err != nil {
				s.logger.WithError(err).Error("Odds feed handler error")
			}
		}
	}
}

func (s *StreamClient) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sendMessage(map[string]interface{}{"op": "ping"}); err != nil {
				s.logger.WithError(err).Debug("Odds feed ping failed")
				return
			}
		}
	}
}

func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	conn := s.conn
	connected := s.isConnected
	s.mu.RUnlock()

	if !connected || conn == nil {
		return ErrNotConnected
	}

	// gorilla/websocket permits one concurrent writer
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

// IsConnected reports whether the stream connection is up
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the arrival time of the last feed message
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close tears down the stream connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	s.isConnected = false
	return s.conn.Close()
}
