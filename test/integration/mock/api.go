package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RecordedRequest is one request received by ApiMock.
type RecordedRequest struct {
	Headers map[string]string
	Query   map[string]string
	Body    map[string]any
}

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is an HTTP server that records requests and replies with canned responses.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]RecordedRequest
	responses map[string]cannedResponse
}

// NewApiServer creates an ApiMock. Call Start before use.
func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]RecordedRequest{},
		responses: map[string]cannedResponse{},
	}
}

// Start begins serving on a random local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the server base URL.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	recorded := RecordedRequest{
		Headers: map[string]string{},
		Query:   map[string]string{},
		Body:    body,
	}
	for name, values := range r.Header {
		recorded.Headers[name] = values[0]
	}
	for name, values := range r.URL.Query() {
		recorded.Query[name] = values[0]
	}

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], recorded)
	resp, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		resp = cannedResponse{status: http.StatusOK, body: map[string]any{}}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// SetResponse sets the reply for every request to method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = cannedResponse{status: status, body: body}
}

// Requests returns the requests received for method and path.
func (a *ApiMock) Requests(method, path string) []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]RecordedRequest(nil), a.requests[method+path]...)
}

// Reset forgets recorded requests and canned responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = map[string][]RecordedRequest{}
	a.responses = map[string]cannedResponse{}
}
