package ws

import "encoding/json"

// Wire protocol: every frame in both directions is a JSON envelope
// {"event": ..., "data": ...}.
const (
	// inbound
	EventJoin         = "join"
	EventMessage      = "message"
	EventJoinChannel  = "joinChannel"
	EventLeaveChannel = "leaveChannel"

	// outbound
	EventJoined         = "joined"
	EventChannelJoined  = "channelJoined"
	EventChannelLeft    = "channelLeft"
	EventNewMessage     = "newMessage"
	EventNotification   = "notification"
	EventError          = "error"
)

// Envelope is the frame format for the live channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinPayload struct {
	UserID string `json:"userId"`
}

type channelPayload struct {
	ChannelURL string `json:"channelUrl"`
}

type messagePayload struct {
	ChannelURL string `json:"channelUrl"`
	Message    string `json:"message"`
	UserID     string `json:"userId"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// encode marshals an outbound envelope. Marshal failures cannot happen
// for the payload types used here, so the error is swallowed.
func encode(event string, data any) []byte {
	raw, _ := json.Marshal(data)
	frame, _ := json.Marshal(Envelope{Event: event, Data: raw})
	return frame
}
