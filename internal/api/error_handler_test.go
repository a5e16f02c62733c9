package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/core/domain"
)

func invokeHandler(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, resp["error"]
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrStudentNotFound, http.StatusNotFound},
		{domain.ErrInstructorNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{fmt.Errorf("create channel: %w", domain.ErrRemoteService), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, _ := invokeHandler(t, tc.err)
		if code != tc.code {
			t.Errorf("error %v mapped to %d, want %d", tc.err, code, tc.code)
		}
	}
}

func TestErrorHandler_RemoteFailurePreservesUpstreamText(t *testing.T) {
	err := fmt.Errorf("send message: %w: status 400: upstream says no", domain.ErrRemoteService)
	code, msg := invokeHandler(t, err)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg == "" || !errors.Is(err, domain.ErrRemoteService) {
		t.Fatal("remote failure text must survive to the envelope")
	}
	if want := "upstream says no"; !strings.Contains(msg, want) {
		t.Errorf("message %q must contain %q", msg, want)
	}
}

func TestErrorHandler_GenericErrorsDoNotLeak(t *testing.T) {
	_, msg := invokeHandler(t, errors.New("pq: secret dsn"))
	if msg != "internal server error" {
		t.Errorf("unexpected message: %q", msg)
	}
}
