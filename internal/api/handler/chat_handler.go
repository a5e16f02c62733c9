package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/campus-chat-api/internal/api/metrics"
	"github.com/campuslink/campus-chat-api/internal/core/domain"
	"github.com/campuslink/campus-chat-api/internal/core/ports"
)

// ChatHandler handles HTTP requests for channels and messages. Platform
// responses are proxied verbatim as JSON.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// --- Request types ---

type createChannelRequest struct {
	OtherUserID string `json:"otherUserId"`
	CourseID    string `json:"courseId"`
	Subject     string `json:"subject"`
}

type sendMessageRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
}

// CreateStudentInstructorChannel handles
// POST /api/chat/channels/student-instructor?userId=.
//
// @Summary      Create a student-instructor channel
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        userId  query     string                true  "Caller identity"
// @Param        body    body      createChannelRequest  true  "Counterpart and optional course context"
// @Success      200     {object}  map[string]any
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/chat/channels/student-instructor [post]
func (h *ChatHandler) CreateStudentInstructorChannel(c echo.Context) error {
	userID := c.QueryParam("userId")
	var req createChannelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if userID == "" || req.OtherUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required user IDs")
	}

	meta := &ports.ChannelContext{CourseID: req.CourseID, Subject: req.Subject}
	raw, err := h.service.CreateChannel(c.Request().Context(), userID, req.OtherUserID, meta)
	if err != nil {
		return err
	}

	channelType := domain.ResolveChannelType(
		domain.ClassifyIdentity(userID), domain.ClassifyIdentity(req.OtherUserID))
	metrics.ChannelsCreatedTotal.WithLabelValues(string(channelType)).Inc()

	return c.JSONBlob(http.StatusOK, raw)
}

// CreatePeerChannel handles POST /api/chat/channels/peer?userId=.
// Peer channels carry no course context.
//
// @Summary      Create a same-role channel
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        userId  query     string                true  "Caller identity"
// @Param        body    body      createChannelRequest  true  "Counterpart"
// @Success      200     {object}  map[string]any
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/chat/channels/peer [post]
func (h *ChatHandler) CreatePeerChannel(c echo.Context) error {
	userID := c.QueryParam("userId")
	var req createChannelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if userID == "" || req.OtherUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required user IDs")
	}

	raw, err := h.service.CreateChannel(c.Request().Context(), userID, req.OtherUserID, nil)
	if err != nil {
		return err
	}

	channelType := domain.ResolveChannelType(
		domain.ClassifyIdentity(userID), domain.ClassifyIdentity(req.OtherUserID))
	metrics.ChannelsCreatedTotal.WithLabelValues(string(channelType)).Inc()

	return c.JSONBlob(http.StatusOK, raw)
}

// SendMessage handles POST /api/chat/channels/:channelUrl/messages.
//
// @Summary      Send a message to a channel
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        channelUrl  path      string              true  "Channel URL"
// @Param        body        body      sendMessageRequest  true  "Message and sender"
// @Success      200         {object}  map[string]any
// @Failure      400         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /api/chat/channels/{channelUrl}/messages [post]
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	raw, err := h.service.SendMessage(c.Request().Context(), c.Param("channelUrl"), req.Message, req.UserID)
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.WithLabelValues("rest").Inc()
	return c.JSONBlob(http.StatusOK, raw)
}

// ListMessages handles GET /api/chat/channels/:channelUrl/messages.
// The optional timestamp query anchors the page; 0 means "from now".
//
// @Summary      List channel messages
// @Tags         chat
// @Produce      json
// @Param        channelUrl  path      string  true   "Channel URL"
// @Param        timestamp   query     int     false  "Anchor timestamp (ms)"
// @Success      200         {object}  map[string]any
// @Failure      400         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /api/chat/channels/{channelUrl}/messages [get]
func (h *ChatHandler) ListMessages(c echo.Context) error {
	var messageTS int64
	if ts := c.QueryParam("timestamp"); ts != "" {
		parsed, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "timestamp must be an integer")
		}
		messageTS = parsed
	}

	raw, err := h.service.ListMessages(c.Request().Context(), c.Param("channelUrl"), messageTS)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// ListStudentInstructorChannels handles
// GET /api/chat/users/:userId/channels/student-instructor.
func (h *ChatHandler) ListStudentInstructorChannels(c echo.Context) error {
	raw, err := h.service.ListStudentInstructorChannels(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// ListPeerChannels handles GET /api/chat/users/:userId/channels/peer.
func (h *ChatHandler) ListPeerChannels(c echo.Context) error {
	raw, err := h.service.ListPeerChannels(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}
