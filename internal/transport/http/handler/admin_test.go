package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bidhub-api/internal/application/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubAdminSvc struct{ out admin.Outcome }

func (s stubAdminSvc) InitAdmin(context.Context) admin.Outcome { return s.out }

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Success(message, title string) uint64 {
	return m.Called(message, title).Get(0).(uint64)
}
func (m *mockNotifier) Info(message, title string) uint64 {
	return m.Called(message, title).Get(0).(uint64)
}
func (m *mockNotifier) Error(message, title string) uint64 {
	return m.Called(message, title).Get(0).(uint64)
}

func TestInitAdmin(t *testing.T) {
	tests := []struct {
		name       string
		out        admin.Outcome
		wantStatus int
		wantBody   string
		notify     string
	}{
		{
			name:       "exists",
			out:        admin.Outcome{Kind: admin.KindExists, Email: "admin@example.com"},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Admin account already exists","exists":true}`,
			notify:     "Info",
		},
		{
			name:       "created",
			out:        admin.Outcome{Kind: admin.KindCreated, Email: "admin@example.com"},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Admin account created successfully","created":true,"email":"admin@example.com"}`,
			notify:     "Success",
		},
		{
			name:       "failed",
			out:        admin.Outcome{Kind: admin.KindFailed, Err: errors.New("create admin account: email exists")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"create admin account: email exists"}`,
			notify:     "Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &mockNotifier{}
			n.On(tt.notify, tt.out.Message(), "Admin").Return(uint64(1)).Once()
			h := NewAdminHandler(stubAdminSvc{out: tt.out}, n)

			rr := httptest.NewRecorder()
			h.InitAdmin(rr, httptest.NewRequest(http.MethodPost, "/v1/init-admin", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			n.AssertExpectations(t)
		})
	}
}

func TestInitAdmin_NilNotifier(t *testing.T) {
	h := NewAdminHandler(stubAdminSvc{out: admin.Outcome{Kind: admin.KindExists}}, nil)

	rr := httptest.NewRecorder()
	h.InitAdmin(rr, httptest.NewRequest(http.MethodPost, "/v1/init-admin", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
