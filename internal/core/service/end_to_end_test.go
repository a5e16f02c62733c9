package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/core/domain"
	"github.com/campuslink/campus-chat-api/internal/core/ports"
	"github.com/campuslink/campus-chat-api/internal/infrastructure/directory"
	"github.com/campuslink/campus-chat-api/internal/infrastructure/sendbird"
)

// fakePlatformServer is a stateful stand-in for the remote platform:
// it remembers provisioned users, created channels and sent messages so
// the whole create-users → create-channel → send → list flow can run
// against the real client and services.
type fakePlatformServer struct {
	users    []map[string]any
	channels []map[string]any
	messages map[string][]map[string]any
	nextID   int
}

func newFakePlatform() *fakePlatformServer {
	return &fakePlatformServer{messages: make(map[string][]map[string]any)}
}

func (f *fakePlatformServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/users":
			f.users = append(f.users, body)
			_ = json.NewEncoder(w).Encode(body)

		case r.Method == http.MethodPost && r.URL.Path == "/group_channels":
			f.channels = append(f.channels, body)
			_ = json.NewEncoder(w).Encode(body)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/messages"):
			channelURL := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/group_channels/"), "/messages")
			f.nextID++
			msg := map[string]any{
				"message_id": f.nextID,
				"message":    body["message"],
				"user_id":    body["user_id"],
			}
			f.messages[channelURL] = append(f.messages[channelURL], msg)
			_ = json.NewEncoder(w).Encode(msg)

		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/messages"):
			channelURL := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/group_channels/"), "/messages")
			_ = json.NewEncoder(w).Encode(map[string]any{"messages": f.messages[channelURL]})

		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"message":"unexpected call: %s %s"}`, r.Method, r.URL.Path)
		}
	})
}

func TestEndToEnd_CreateUsersChannelAndMessages(t *testing.T) {
	fake := newFakePlatform()
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	platform := sendbird.New(sendbird.Config{APIToken: "t", BaseURL: server.URL}, zerolog.Nop())
	users := NewUserService(platform, directory.NewStore[domain.Student](), directory.NewStore[domain.Instructor](), discardLogger)
	chat := NewChatService(platform, discardLogger)
	ctx := context.Background()

	student, err := users.CreateStudent(ctx, ports.CreateStudentInput{
		Email: "amy@campus.edu", FirstName: "Amy", LastName: "Pond", StudentID: "S1", Course: "CS", Year: 2,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	instructor, err := users.CreateInstructor(ctx, ports.CreateInstructorInput{
		Email: "lee@campus.edu", FirstName: "Lee", LastName: "Kim", InstructorID: "I1", Department: "CS",
	})
	if err != nil {
		t.Fatalf("create instructor: %v", err)
	}

	if len(fake.users) != 2 {
		t.Fatalf("expected 2 provisioned accounts, got %d", len(fake.users))
	}
	if fake.users[0]["nickname"] != "Student_S1_Amy" || fake.users[1]["nickname"] != "Instructor_I1_Lee" {
		t.Fatalf("unexpected provisioned nicknames: %+v", fake.users)
	}

	// Chat identities are the derived nicknames, as the frontend uses them.
	_, err = chat.CreateChannel(ctx, student.Nickname, instructor.Nickname, &ports.ChannelContext{CourseID: "CS101"})
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}

	if len(fake.channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(fake.channels))
	}
	created := fake.channels[0]
	if created["name"] != "student_instructor_chat" {
		t.Errorf("unexpected channel name: %v", created["name"])
	}
	channelURL, _ := created["channel_url"].(string)
	if !strings.HasPrefix(channelURL, "ch_") {
		t.Errorf("channel url must be synthesized: %q", channelURL)
	}
	operators, _ := created["operator_ids"].([]any)
	if len(operators) != 1 || operators[0] != instructor.Nickname {
		t.Errorf("instructor must be the sole operator: %v", created["operator_ids"])
	}
	metadata, _ := created["metadata"].(map[string]any)
	if metadata["channelType"] != "student_instructor" || metadata["courseId"] != "CS101" {
		t.Errorf("unexpected metadata: %v", created["metadata"])
	}

	for _, text := range []string{"first", "second", "third"} {
		if _, err := chat.SendMessage(ctx, channelURL, text, student.Nickname); err != nil {
			t.Fatalf("send %q: %v", text, err)
		}
	}

	raw, err := chat.ListMessages(ctx, channelURL, 0)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	var listed struct {
		Messages []struct {
			Message string `json:"message"`
			UserID  string `json:"user_id"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(listed.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(listed.Messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if listed.Messages[i].Message != want {
			t.Errorf("message %d: expected %q, got %q", i, want, listed.Messages[i].Message)
		}
		if listed.Messages[i].UserID != student.Nickname {
			t.Errorf("message %d: unexpected sender %q", i, listed.Messages[i].UserID)
		}
	}
}
