package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoadParsesQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["formId"] != "form-1" {
			t.Fatalf("expected formId form-1, got %q", req["formId"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"formTitle":      "Trivia",
			"totalQuestions": 1,
			"questions": []map[string]any{
				{
					"id":            "3",
					"question":      "2+2?",
					"options":       []string{"3", "4", "5", "6"},
					"correctAnswer": 1,
					"points":        5,
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	set, err := client.Load(context.Background(), "form-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if set.Title != "Trivia" || len(set.Questions) != 1 {
		t.Fatalf("unexpected set: %+v", set)
	}
	q := set.Questions[0]
	if q.ID != "3" || q.CorrectAnswer != 1 || q.Points != 5 {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestLoadErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "quota exceeded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Load(context.Background(), "form-1"); err == nil {
		t.Fatalf("expected error for error payload")
	}
}

func TestLoadEmptyQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"formTitle":      "Empty",
			"totalQuestions": 0,
			"questions":      []any{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Load(context.Background(), "form-1"); err == nil {
		t.Fatalf("expected error for empty question list")
	}
}

func TestLoadMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Load(context.Background(), "form-1"); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
