package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/core/domain"
	"github.com/campuslink/campus-chat-api/internal/core/ports"
)

type chatService struct {
	platform ports.ChatPlatform
	logger   zerolog.Logger
}

// NewChatService returns a ChatService backed by the remote platform.
// The service holds no state of its own; every routing decision is
// recomputed from the two identities on each call.
func NewChatService(platform ports.ChatPlatform, logger zerolog.Logger) ports.ChatService {
	return &chatService{platform: platform, logger: logger}
}

// CreateChannel resolves the channel topology for the two identities and
// creates a distinct group channel remotely. The channel URL is a random
// token: the member pair and creation time are carried only as
// descriptive metadata, so two simultaneous creations for the same pair
// cannot collide.
func (s *chatService) CreateChannel(ctx context.Context, userID, otherUserID string, meta *ports.ChannelContext) (json.RawMessage, error) {
	userRole := domain.ClassifyIdentity(userID)
	otherRole := domain.ClassifyIdentity(otherUserID)
	channelType := domain.ResolveChannelType(userRole, otherRole)

	// Cross-role channels grant the instructor side sole moderation
	// rights; peer channels have no distinguished operator.
	var operators []string
	if channelType == domain.ChannelStudentInstructor {
		if userRole == domain.RoleInstructor {
			operators = []string{userID}
		} else {
			operators = []string{otherUserID}
		}
	}

	metadata := map[string]string{
		domain.MetadataKeyChannelType: string(channelType),
		"members":                     userID + "," + otherUserID,
		"createdAt":                   time.Now().UTC().Format(time.RFC3339),
	}
	if meta != nil {
		if meta.CourseID != "" {
			metadata["courseId"] = meta.CourseID
		}
		if meta.Subject != "" {
			metadata["subject"] = meta.Subject
		}
	}

	raw, err := s.platform.CreateChannel(ctx, ports.CreateRemoteChannelInput{
		UserIDs:     []string{userID, otherUserID},
		OperatorIDs: operators,
		IsDistinct:  true,
		Name:        string(channelType) + "_chat",
		ChannelURL:  "ch_" + uuid.NewString(),
		Metadata:    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	s.logger.Info().
		Str("channel_type", string(channelType)).
		Str("user_id", userID).
		Str("other_user_id", otherUserID).
		Msg("channel created")

	return raw, nil
}

// SendMessage is a pure pass-through to the platform.
func (s *chatService) SendMessage(ctx context.Context, channelURL, message, senderID string) (json.RawMessage, error) {
	raw, err := s.platform.SendMessage(ctx, channelURL, senderID, message)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return raw, nil
}

func (s *chatService) ListMessages(ctx context.Context, channelURL string, messageTS int64) (json.RawMessage, error) {
	raw, err := s.platform.ListMessages(ctx, channelURL, messageTS)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return raw, nil
}

func (s *chatService) ListStudentInstructorChannels(ctx context.Context, userID string) (json.RawMessage, error) {
	raw, err := s.platform.ListUserChannels(ctx, userID, string(domain.ChannelStudentInstructor))
	if err != nil {
		return nil, fmt.Errorf("list student-instructor channels: %w", err)
	}
	return raw, nil
}

// ListPeerChannels filters by the same-role channel type for the
// caller's classified role.
func (s *chatService) ListPeerChannels(ctx context.Context, userID string) (json.RawMessage, error) {
	peerType := domain.PeerChannelType(domain.ClassifyIdentity(userID))
	raw, err := s.platform.ListUserChannels(ctx, userID, string(peerType))
	if err != nil {
		return nil, fmt.Errorf("list peer channels: %w", err)
	}
	return raw, nil
}
