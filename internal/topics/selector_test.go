package topics

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/bravedhq/beelearn/internal/llm"
)

func TestSelect_UsesCollaboratorTopics(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topics":["Decentralization","VR/AR"]}`),
	})
	s := NewSelector(mock, DefaultConfig(), nil)

	got := s.Select(t.Context(), "u1")

	if !reflect.DeepEqual(got, []string{"Decentralization", "VR/AR"}) {
		t.Errorf("got %v", got)
	}
}

func TestSelect_FallbackOnError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	s := NewSelector(mock, DefaultConfig(), nil)

	got := s.Select(t.Context(), "u1")

	if !reflect.DeepEqual(got, DefaultTopics) {
		t.Errorf("got %v, want default topics", got)
	}
}

func TestSelect_FallbackOnEmptyResult(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty list", `{"topics":[]}`},
		{"blank entries", `{"topics":["", "  "]}`},
		{"not json", `garbage`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tc.raw)})
			s := NewSelector(mock, DefaultConfig(), nil)

			got := s.Select(t.Context(), "u1")

			if !reflect.DeepEqual(got, DefaultTopics) {
				t.Errorf("got %v, want default topics", got)
			}
		})
	}
}

func TestSelect_ClampsToTwoTopics(t *testing.T) {
	// Defensive: the schema caps at two, but a lenient provider might not.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topics":["Bitcoin","AI","RWAs"]}`),
	})
	s := NewSelector(mock, DefaultConfig(), nil)

	got := s.Select(t.Context(), "u1")

	if len(got) != 2 {
		t.Errorf("got %d topics, want 2", len(got))
	}
}

func TestSelect_NeverEmpty(t *testing.T) {
	s := NewSelector(llm.NewMockProvider(), DefaultConfig(), nil)
	if got := s.Select(t.Context(), "u1"); len(got) == 0 {
		t.Error("Select must never return an empty list")
	}
}
