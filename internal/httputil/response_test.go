package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondError_ProblemDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "club not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q, want application/problem+json", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["title"] != "Not Found" {
		t.Errorf("title = %v, want Not Found", body["title"])
	}
	if body["detail"] != "club not found" {
		t.Errorf("detail = %v", body["detail"])
	}
	if body["status"] != float64(404) {
		t.Errorf("status field = %v, want 404", body["status"])
	}
}

func TestRespondErrorWithExtras_FlattensExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusConflict, "email already registered", map[string]interface{}{
		"resource_type": "user",
		"resource_id":   "u-1",
	})

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["resource_type"] != "user" || body["resource_id"] != "u-1" {
		t.Errorf("extras not flattened: %v", body)
	}
}

func TestQueryBool(t *testing.T) {
	tests := []struct {
		name string
		url  string
		def  bool
		want bool
	}{
		{"absent uses default", "/x", true, true},
		{"true", "/x?flag=true", false, true},
		{"false", "/x?flag=false", true, false},
		{"numeric one", "/x?flag=1", false, true},
		{"malformed uses default", "/x?flag=banana", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if got := QueryBool(r, "flag", tt.def); got != tt.want {
				t.Errorf("QueryBool() = %v, want %v", got, tt.want)
			}
		})
	}
}
