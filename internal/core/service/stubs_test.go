package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Stub chat platform — records every call, optionally fails.
// ---------------------------------------------------------------------------

type updateUserCall struct {
	UserID string
	Input  ports.UpdateRemoteUserInput
}

type sendMessageCall struct {
	ChannelURL string
	SenderID   string
	Message    string
}

type listChannelsCall struct {
	UserID string
	Filter string
}

type stubPlatform struct {
	createUserCalls   []ports.CreateRemoteUserInput
	updateUserCalls   []updateUserCall
	tokenCalls        []string
	channelCalls      []ports.CreateRemoteChannelInput
	sendMessageCalls  []sendMessageCall
	listMessagesCalls []string
	listChannelsCalls []listChannelsCall

	response json.RawMessage
	err      error // when set, every call fails with this error
}

func newStubPlatform() *stubPlatform {
	return &stubPlatform{response: json.RawMessage(`{"ok":true}`)}
}

func (p *stubPlatform) CreateUser(_ context.Context, in ports.CreateRemoteUserInput) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.createUserCalls = append(p.createUserCalls, in)
	return p.response, nil
}

func (p *stubPlatform) UpdateUser(_ context.Context, userID string, in ports.UpdateRemoteUserInput) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.updateUserCalls = append(p.updateUserCalls, updateUserCall{UserID: userID, Input: in})
	return p.response, nil
}

func (p *stubPlatform) IssueSessionToken(_ context.Context, userID string) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.tokenCalls = append(p.tokenCalls, userID)
	return p.response, nil
}

func (p *stubPlatform) CreateChannel(_ context.Context, in ports.CreateRemoteChannelInput) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.channelCalls = append(p.channelCalls, in)
	return p.response, nil
}

func (p *stubPlatform) SendMessage(_ context.Context, channelURL, senderID, message string) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.sendMessageCalls = append(p.sendMessageCalls, sendMessageCall{ChannelURL: channelURL, SenderID: senderID, Message: message})
	return p.response, nil
}

func (p *stubPlatform) ListMessages(_ context.Context, channelURL string, _ int64) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.listMessagesCalls = append(p.listMessagesCalls, channelURL)
	return p.response, nil
}

func (p *stubPlatform) ListUserChannels(_ context.Context, userID, filter string) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.listChannelsCalls = append(p.listChannelsCalls, listChannelsCall{UserID: userID, Filter: filter})
	return p.response, nil
}

// ---------------------------------------------------------------------------
// Stub directory — a bare map, no locking (tests are single-goroutine).
// ---------------------------------------------------------------------------

type stubDirectory[T any] struct {
	items map[string]T
}

func newStubDirectory[T any]() *stubDirectory[T] {
	return &stubDirectory[T]{items: make(map[string]T)}
}

func (d *stubDirectory[T]) Insert(id string, record T) {
	d.items[id] = record
}

func (d *stubDirectory[T]) Get(id string) (T, bool) {
	record, ok := d.items[id]
	return record, ok
}

func (d *stubDirectory[T]) List() []T {
	out := make([]T, 0, len(d.items))
	for _, record := range d.items {
		out = append(out, record)
	}
	return out
}

func (d *stubDirectory[T]) Update(id string, fn func(*T)) (T, bool) {
	record, ok := d.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	fn(&record)
	d.items[id] = record
	return record, true
}

func (d *stubDirectory[T]) Len() int {
	return len(d.items)
}
