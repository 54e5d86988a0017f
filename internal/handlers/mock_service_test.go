package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"countdown_timers/internal/models"
	"countdown_timers/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service fakes ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, _ string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, _ string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type dispatchCall struct {
	target service.Target
	action service.Action
}

type mockTimers struct {
	timers      []models.TimerRecord
	created     models.TimerRecord
	createErr   error
	changed     int
	dispatchErr error

	lastCreate service.CreateParams
	dispatches []dispatchCall
}

func (m *mockTimers) Create(_ context.Context, p service.CreateParams) (models.TimerRecord, error) {
	m.lastCreate = p
	return m.created, m.createErr
}

func (m *mockTimers) Get(_ context.Context, id string) (models.TimerRecord, bool) {
	for _, t := range m.timers {
		if t.ID == id {
			return t, true
		}
	}
	return models.TimerRecord{}, false
}

func (m *mockTimers) List(context.Context) []models.TimerRecord {
	return m.timers
}

func (m *mockTimers) Dispatch(_ context.Context, target service.Target, action service.Action) (int, error) {
	m.dispatches = append(m.dispatches, dispatchCall{target: target, action: action})
	return m.changed, m.dispatchErr
}

type mockCategories struct {
	groups   []service.CategoryGroup
	expanded map[string]bool
}

func (m *mockCategories) Categories(context.Context) []service.CategoryGroup {
	return m.groups
}

func (m *mockCategories) ToggleCategory(_ context.Context, name string) (bool, bool) {
	cur, ok := m.expanded[name]
	if !ok {
		return false, false
	}
	m.expanded[name] = !cur
	return !cur, true
}

type mockHistory struct {
	entries   []models.HistoryEntry
	listErr   error
	deleteErr error
	clearErr  error

	deleted     []int
	deletedWant []time.Time
	cleared     int
}

func (m *mockHistory) List(context.Context) ([]models.HistoryEntry, error) {
	return m.entries, m.listErr
}

func (m *mockHistory) DeleteAt(_ context.Context, index int, completedAt time.Time) error {
	m.deleted = append(m.deleted, index)
	m.deletedWant = append(m.deletedWant, completedAt)
	return m.deleteErr
}

func (m *mockHistory) Clear(context.Context) error {
	m.cleared++
	return m.clearErr
}

// mockEngine hands every subscriber the same channel.
type mockEngine struct {
	events chan service.Event
}

func newMockEngine() *mockEngine {
	return &mockEngine{events: make(chan service.Event, 4)}
}

func (m *mockEngine) Load(context.Context) error         { return nil }
func (m *mockEngine) Run(context.Context, time.Duration) {}
func (m *mockEngine) Sync(context.Context) error         { return nil }
func (m *mockEngine) Close(context.Context) error        { return nil }

func (m *mockEngine) Subscribe(int) (<-chan service.Event, func()) {
	return m.events, func() {}
}

// ---- Shared test helpers ----

func newTestRouter(s *service.Service, authEnabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, authEnabled).InitRoutes()
}

func doRequest(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
