package ports

import (
	"context"
	"encoding/json"
)

// CreateRemoteUserInput carries the fields needed to provision a chat
// platform account for a directory record.
type CreateRemoteUserInput struct {
	UserID     string
	Nickname   string
	ProfileURL string
}

// UpdateRemoteUserInput is a partial update; empty fields are omitted
// from the request.
type UpdateRemoteUserInput struct {
	Nickname   string
	ProfileURL string
}

// CreateRemoteChannelInput carries everything the platform needs to
// create a group channel. Metadata values must be strings (platform
// constraint).
type CreateRemoteChannelInput struct {
	UserIDs     []string
	OperatorIDs []string
	IsDistinct  bool
	Name        string
	ChannelURL  string
	Metadata    map[string]string
}

// ChatPlatform is the remote chat platform's user and channel management
// API. Responses are passed through unparsed: this system never inspects
// or rewrites platform payloads beyond routing them to the caller.
type ChatPlatform interface {
	CreateUser(ctx context.Context, in CreateRemoteUserInput) (json.RawMessage, error)
	UpdateUser(ctx context.Context, userID string, in UpdateRemoteUserInput) (json.RawMessage, error)
	IssueSessionToken(ctx context.Context, userID string) (json.RawMessage, error)
	CreateChannel(ctx context.Context, in CreateRemoteChannelInput) (json.RawMessage, error)
	SendMessage(ctx context.Context, channelURL, senderID, message string) (json.RawMessage, error)
	// ListMessages returns channel messages around messageTS; pass 0 to
	// let the platform apply its default anchor.
	ListMessages(ctx context.Context, channelURL string, messageTS int64) (json.RawMessage, error)
	// ListUserChannels lists a user's group channels, optionally filtered
	// by the channelType metadata value. Empty filter lists everything.
	ListUserChannels(ctx context.Context, userID, channelTypeFilter string) (json.RawMessage, error)
}
