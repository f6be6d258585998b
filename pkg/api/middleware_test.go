package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/segmentio/ksuid"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		requestHeader string
		wantGenerated bool
	}{
		{
			name:          "generates id when missing",
			requestHeader: "",
			wantGenerated: true,
		},
		{
			name:          "keeps caller id",
			requestHeader: "caller-supplied",
			wantGenerated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := requestIDMiddleware(testHandler)

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.requestHeader != "" {
				req.Header.Set(RequestIDHeader, tt.requestHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if seen == "" {
				t.Fatal("Expected request id in context")
			}
			if got := w.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("Expected response header %q, got %q", seen, got)
			}
			if tt.wantGenerated {
				if _, err := ksuid.Parse(seen); err != nil {
					t.Errorf("Expected generated id to be a ksuid, got %q: %v", seen, err)
				}
			} else if seen != tt.requestHeader {
				t.Errorf("Expected request id %q, got %q", tt.requestHeader, seen)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := requestIDMiddleware(requestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest("GET", "/pot", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("Expected status 418, got %v", entry["status"])
	}
	if entry["path"] != "/pot" {
		t.Errorf("Expected path /pot, got %v", entry["path"])
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("Expected request_id req-1, got %v", entry["request_id"])
	}
	if entry["bytes"] != float64(len("short and stout")) {
		t.Errorf("Expected bytes %d, got %v", len("short and stout"), entry["bytes"])
	}
}

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	data := map[string]string{"message": "test"}

	sendSuccess(w, req, data)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", contentType)
	}

	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("Expected success in body, got %s", w.Body.String())
	}
}

func TestSendError(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		statusCode     int
		offset         *int
		expectedStatus int
	}{
		{
			name:           "bad request error",
			message:        "Invalid request",
			statusCode:     http.StatusBadRequest,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "decode error with offset",
			message:        "truncated",
			statusCode:     http.StatusUnprocessableEntity,
			offset:         intPtr(7),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "internal server error",
			message:        "Server error",
			statusCode:     http.StatusInternalServerError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", nil)

			sendErrorAt(w, req, tt.message, tt.statusCode, tt.offset)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			contentType := w.Header().Get("Content-Type")
			if contentType != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", contentType)
			}

			var resp APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Success || resp.Error != tt.message {
				t.Errorf("Unexpected response %+v", resp)
			}
			if (resp.Offset == nil) != (tt.offset == nil) {
				t.Fatalf("Expected offset %v, got %v", tt.offset, resp.Offset)
			}
			if tt.offset != nil && *resp.Offset != *tt.offset {
				t.Errorf("Expected offset %d, got %d", *tt.offset, *resp.Offset)
			}
		})
	}
}
