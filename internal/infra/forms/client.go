// Package forms fetches quiz questions from the external form-fetch
// service, which proxies the upstream forms API.
package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
)

// Client calls the form-fetch endpoint. The response carries either the
// question list or an error field; both non-2xx statuses and error payloads
// are load failures.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type fetchRequest struct {
	FormID string `json:"formId"`
}

type fetchResponse struct {
	Questions      []domain.Question `json:"questions"`
	FormTitle      string            `json:"formTitle"`
	TotalQuestions int               `json:"totalQuestions"`
	Error          string            `json:"error"`
}

func (c *Client) Load(ctx context.Context, formID string) (domain.QuestionSet, error) {
	body, err := json.Marshal(fetchRequest{FormID: formID})
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("fetch form %s: %w", formID, err)
	}
	defer resp.Body.Close()

	var payload fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("decode form response: %w", err)
	}
	if payload.Error != "" {
		return domain.QuestionSet{}, fmt.Errorf("form service: %s", payload.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.QuestionSet{}, fmt.Errorf("form service returned status %d", resp.StatusCode)
	}
	if len(payload.Questions) == 0 {
		return domain.QuestionSet{}, fmt.Errorf("form %s has no questions", formID)
	}

	return domain.QuestionSet{
		ID:        formID,
		Title:     payload.FormTitle,
		Questions: payload.Questions,
	}, nil
}
