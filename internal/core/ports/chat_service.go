package ports

import (
	"context"
	"encoding/json"
)

// ChannelContext is optional course/subject context attached to a
// channel's metadata at creation.
type ChannelContext struct {
	CourseID string
	Subject  string
}

// ChatService orchestrates identity classification, channel-type
// resolution and the remote platform into the chat use cases. Platform
// payloads flow back to the transport layer unchanged.
type ChatService interface {
	// CreateChannel classifies both identities, resolves the channel type
	// and operator policy, and creates the channel remotely. meta may be nil.
	CreateChannel(ctx context.Context, userID, otherUserID string, meta *ChannelContext) (json.RawMessage, error)
	SendMessage(ctx context.Context, channelURL, message, senderID string) (json.RawMessage, error)
	ListMessages(ctx context.Context, channelURL string, messageTS int64) (json.RawMessage, error)
	// ListStudentInstructorChannels lists the user's cross-role channels.
	ListStudentInstructorChannels(ctx context.Context, userID string) (json.RawMessage, error)
	// ListPeerChannels lists the user's same-role channels; the filter
	// value is derived from the caller's classified role.
	ListPeerChannels(ctx context.Context, userID string) (json.RawMessage, error)
}
