package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/pkg/config"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return New(config.UpstreamConfig{BaseURL: baseURL, Timeout: 5 * time.Second}, zap.NewNop())
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListSchools(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientMapsUpstreamStatuses(t *testing.T) {
	cases := []struct {
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{http.StatusUnauthorized, `{"message":"token expired"}`, http.StatusUnauthorized, "unauthorized, redirecting to login"},
		{http.StatusForbidden, `{"message":"nope"}`, http.StatusForbidden, "access denied"},
		{http.StatusNotFound, `{}`, http.StatusNotFound, "not found"},
		{http.StatusInternalServerError, `{}`, http.StatusBadGateway, "internal server error"},
		{http.StatusTeapot, `{"message":"weird"}`, http.StatusBadGateway, "weird"},
		{http.StatusTeapot, ``, http.StatusBadGateway, "something went wrong"},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body)) //nolint:errcheck
		}))
		client := newTestClient(server.URL)

		_, err := client.GetSchool(context.Background(), "tok", "sch-1")
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, tc.wantStatus, appErr.Status, "upstream %d", tc.status)
		assert.Equal(t, tc.wantMsg, appErr.Message, "upstream %d", tc.status)
		server.Close()
	}
}

func TestClientNetworkFailureIsUpstreamError(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.ListTeachers(context.Background(), "tok")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, "something went wrong", appErr.Message)
}

func TestCheckTokenParsesVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checktoken", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid":false}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	valid, err := client.CheckToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSubmitAttendancePostsBatch(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	records := []models.AttendanceRecord{
		{SchoolID: "sch-1", StudentID: "stu-1", Date: "2025-07-10", Status: models.AttendancePresent},
	}
	require.NoError(t, client.SubmitAttendance(context.Background(), "tok", records))
	assert.Equal(t, "/attendance", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestListStudentsSendsFilters(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListStudents(context.Background(), "tok", StudentFilter{SchoolCode: "SCH001", Class: "5"})
	require.NoError(t, err)
	assert.Contains(t, query, "school_code=SCH001")
	assert.Contains(t, query, "class=5")
}
