package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/api/handler"
	"github.com/campuslink/campus-chat-api/internal/core/ports"
	"github.com/campuslink/campus-chat-api/internal/pkg/config"
	"github.com/campuslink/campus-chat-api/internal/ws"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. rdb may be nil when the Redis relay is disabled.
func NewRouter(
	cfg *config.Config,
	log zerolog.Logger,
	users ports.UserService,
	chat ports.ChatService,
	platform handler.PlatformPinger,
	rdb *redis.Client,
	gateway *ws.Handler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
	}))
	e.Use(echoprometheus.NewMiddleware("campuschat"))

	userHandler := handler.NewUserHandler(users)
	chatHandler := handler.NewChatHandler(chat)

	// --- Directory routes ---
	usersGroup := e.Group("/api/users")
	usersGroup.POST("/students", userHandler.CreateStudent)
	usersGroup.GET("/students", userHandler.ListStudents)
	usersGroup.GET("/students/:id", userHandler.GetStudent)
	usersGroup.PUT("/students/:id/profile", userHandler.UpdateStudentProfile)
	usersGroup.POST("/instructors", userHandler.CreateInstructor)
	usersGroup.GET("/instructors", userHandler.ListInstructors)
	usersGroup.GET("/instructors/:id", userHandler.GetInstructor)
	usersGroup.PUT("/instructors/:id/profile", userHandler.UpdateInstructorProfile)
	usersGroup.POST("/:id/token", userHandler.IssueToken)

	// --- Chat routes ---
	chatGroup := e.Group("/api/chat")
	chatGroup.POST("/channels/student-instructor", chatHandler.CreateStudentInstructorChannel)
	chatGroup.POST("/channels/peer", chatHandler.CreatePeerChannel)
	chatGroup.POST("/channels/:channelUrl/messages", chatHandler.SendMessage)
	chatGroup.GET("/channels/:channelUrl/messages", chatHandler.ListMessages)
	chatGroup.GET("/users/:userId/channels/student-instructor", chatHandler.ListStudentInstructorChannels)
	chatGroup.GET("/users/:userId/channels/peer", chatHandler.ListPeerChannels)

	// --- Live gateway ---
	e.GET("/ws", gateway.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(platform, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
