// Package api is the small HTTP client the terminal app uses to talk to a
// running beelearn server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bravedhq/beelearn/internal/lesson"
)

// DefaultBaseURL matches the server's default listen port.
const DefaultBaseURL = "http://localhost:3000"

// LessonResponse mirrors GET /api/lesson.
type LessonResponse struct {
	Lesson  *lesson.Lesson `json:"lesson"`
	Streak  int            `json:"streak"`
	Message string         `json:"message"`
}

// AnswerResponse mirrors POST /api/answer.
type AnswerResponse struct {
	Correct    bool           `json:"correct"`
	NewStreak  int            `json:"newStreak"`
	Message    string         `json:"message"`
	NextLesson *lesson.Lesson `json:"nextLesson"`
}

// Client calls the lesson API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL, falling back to DefaultBaseURL
// when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// GetLesson fetches the user's next lesson.
func (c *Client) GetLesson(ctx context.Context, userID string) (*LessonResponse, error) {
	u := fmt.Sprintf("%s/api/lesson?userId=%s", c.baseURL, url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var out LessonResponse
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return &out, nil
}

// SubmitAnswer submits the user's answer to the pending lesson.
func (c *Client) SubmitAnswer(ctx context.Context, userID, answer string) (*AnswerResponse, error) {
	body, err := json.Marshal(map[string]string{"userId": userID, "answer": answer})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/answer", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out AnswerResponse
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("submit answer: %w", err)
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}
