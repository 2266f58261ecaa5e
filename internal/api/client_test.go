package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetLesson(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lesson" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "u 1" {
			t.Errorf("userId = %q, want decoded 'u 1'", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lesson":{"topic":"AI","lessonDay":1,"question":"q","options":["a","b","c"],"answer":"a"},"streak":1,"message":"hi"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).GetLesson(context.Background(), "u 1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Lesson == nil || resp.Lesson.Topic != "AI" || resp.Streak != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSubmitAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["userId"] != "u1" || body["answer"] != "x" {
			t.Errorf("body = %v", body)
		}
		w.Write([]byte(`{"correct":true,"newStreak":2,"message":"ok","nextLesson":null}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).SubmitAnswer(context.Background(), "u1", "x")
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Correct || resp.NewStreak != 2 || resp.NextLesson != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestErrorPayloadSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"userId is required"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetLesson(context.Background(), "")
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "userId is required") {
		t.Fatalf("err = %v, want server error text", err)
	}
}
