package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/api/metrics"
	"github.com/campuslink/campus-chat-api/internal/core/ports"
	"github.com/campuslink/campus-chat-api/internal/infrastructure/queue"
)

// Publisher fans broadcasts out across gateway instances; the Redis
// relay is the production implementation. Nil means single-instance mode.
type Publisher interface {
	Publish(ctx context.Context, channelURL string, payload []byte) error
}

// Enqueuer shards local fan-out for per-channel ordering; the queue
// dispatcher is the production implementation. Nil means direct delivery.
type Enqueuer interface {
	Enqueue(b queue.Broadcast)
}

// Hub is the live-connection registry: a user-to-connection map
// (last-write-wins per user identifier) and room membership per channel
// URL, both guarded by one mutex. It is an explicit object injected
// where needed, never package state.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Client]struct{}
	users map[string]*Client
	rooms map[string]map[*Client]struct{}

	chat  ports.ChatService
	queue Enqueuer
	relay Publisher
	log   zerolog.Logger
}

func NewHub(chat ports.ChatService, log zerolog.Logger) *Hub {
	return &Hub{
		conns: make(map[*Client]struct{}),
		users: make(map[string]*Client),
		rooms: make(map[string]map[*Client]struct{}),
		chat:  chat,
		log:   log,
	}
}

// SetQueue routes local fan-out through a sharded dispatcher.
func (h *Hub) SetQueue(q Enqueuer) { h.queue = q }

// SetRelay enables cross-instance broadcast over the given publisher.
func (h *Hub) SetRelay(r Publisher) { h.relay = r }

// Register tracks a freshly upgraded connection. The client is not
// addressable for notifications until it joins.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
	metrics.WSConnectionsActive.Inc()
}

// Unregister removes the client from every room and, if the user map
// still points at this client, from the user map. A newer connection
// for the same user is left untouched. Calling it again for the same
// client (or for one that never registered) is a no-op.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.conns[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.conns, c)
	for channelURL, members := range h.rooms {
		if _, ok := members[c]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, channelURL)
			}
		}
	}
	if c.userID != "" && h.users[c.userID] == c {
		delete(h.users, c.userID)
	}
	h.mu.Unlock()

	// Delivery goroutines may hold a room snapshot with this client in
	// it; the client-side close guard drops their frames instead of
	// letting them hit a closed channel.
	c.shutdown()
	metrics.WSConnectionsActive.Dec()
}

// route dispatches one inbound envelope.
func (h *Hub) route(ctx context.Context, c *Client, env Envelope) {
	switch env.Event {
	case EventJoin:
		var p joinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.UserID == "" {
			c.enqueue(encode(EventError, errorPayload{Message: "join requires userId"}))
			return
		}
		h.Join(c, p.UserID)
	case EventJoinChannel:
		var p channelPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ChannelURL == "" {
			c.enqueue(encode(EventError, errorPayload{Message: "joinChannel requires channelUrl"}))
			return
		}
		h.JoinChannel(c, p.ChannelURL)
	case EventLeaveChannel:
		var p channelPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ChannelURL == "" {
			c.enqueue(encode(EventError, errorPayload{Message: "leaveChannel requires channelUrl"}))
			return
		}
		h.LeaveChannel(c, p.ChannelURL)
	case EventMessage:
		var p messagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ChannelURL == "" || p.Message == "" || p.UserID == "" {
			c.enqueue(encode(EventError, errorPayload{Message: "message requires channelUrl, message and userId"}))
			return
		}
		h.HandleMessage(ctx, c, p)
	default:
		c.enqueue(encode(EventError, errorPayload{Message: "unknown event: " + env.Event}))
	}
}

// Join binds the connection to a user identifier. A reconnect replaces
// the previous mapping: last writer wins.
func (h *Hub) Join(c *Client, userID string) {
	h.mu.Lock()
	c.userID = userID
	h.users[userID] = c
	h.mu.Unlock()

	c.enqueue(encode(EventJoined, joinPayload{UserID: userID}))
	h.log.Debug().Str("user_id", userID).Msg("client joined")
}

func (h *Hub) JoinChannel(c *Client, channelURL string) {
	h.mu.Lock()
	members, ok := h.rooms[channelURL]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[channelURL] = members
	}
	members[c] = struct{}{}
	h.mu.Unlock()

	c.enqueue(encode(EventChannelJoined, channelPayload{ChannelURL: channelURL}))
}

func (h *Hub) LeaveChannel(c *Client, channelURL string) {
	h.mu.Lock()
	if members, ok := h.rooms[channelURL]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, channelURL)
		}
	}
	h.mu.Unlock()

	c.enqueue(encode(EventChannelLeft, channelPayload{ChannelURL: channelURL}))
}

// HandleMessage relays a message to the platform and, on success,
// broadcasts the platform's payload to the channel's room. Failures go
// back to the sender only.
func (h *Hub) HandleMessage(ctx context.Context, c *Client, p messagePayload) {
	raw, err := h.chat.SendMessage(ctx, p.ChannelURL, p.Message, p.UserID)
	if err != nil {
		h.log.Error().Err(err).Str("channel_url", p.ChannelURL).Msg("live message relay failed")
		c.enqueue(encode(EventError, errorPayload{Message: err.Error()}))
		return
	}

	metrics.MessagesSentTotal.WithLabelValues("ws").Inc()
	h.Broadcast(ctx, p.ChannelURL, encode(EventNewMessage, raw))
}

// Broadcast publishes a frame to every member of a channel room. With a
// relay configured the frame goes out over pub/sub and comes back to
// every instance (this one included) through Ingest; otherwise it goes
// straight to local fan-out.
func (h *Hub) Broadcast(ctx context.Context, channelURL string, frame []byte) {
	if h.relay != nil {
		err := h.relay.Publish(ctx, channelURL, frame)
		if err == nil {
			return
		}
		h.log.Warn().Err(err).Str("channel_url", channelURL).Msg("relay publish failed, delivering locally")
	}
	h.Ingest(channelURL, frame)
}

// Ingest feeds a frame into local fan-out, through the dispatcher when
// one is configured. This is also the relay subscription's entry point.
func (h *Hub) Ingest(channelURL string, frame []byte) {
	if h.queue != nil {
		h.queue.Enqueue(queue.Broadcast{ChannelURL: channelURL, Payload: frame})
		return
	}
	h.DeliverLocal(channelURL, frame)
}

// Deliver satisfies queue.Sink.
func (h *Hub) Deliver(b queue.Broadcast) {
	h.DeliverLocal(b.ChannelURL, b.Payload)
}

// DeliverLocal writes a frame to every local member of the room.
func (h *Hub) DeliverLocal(channelURL string, frame []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[channelURL]))
	for member := range h.rooms[channelURL] {
		members = append(members, member)
	}
	h.mu.RUnlock()

	for _, member := range members {
		if !member.enqueue(frame) {
			h.log.Warn().Str("channel_url", channelURL).Msg("dropping frame for slow client")
		}
	}
}

// Notify pushes an out-of-band notification to a single user. Returns
// false when the user has no live connection.
func (h *Hub) Notify(userID string, payload any) bool {
	h.mu.RLock()
	c, ok := h.users[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return c.enqueue(encode(EventNotification, payload))
}
