package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/terra-clan/examkit/internal/models"
)

// ErrImageAbsent is returned by GetImage when the server has no image for a path
var ErrImageAbsent = errors.New("image absent")

// Client is a Go SDK for the examkit HTTP API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new examkit client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is an error reported in the response envelope
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s - %s", e.Code, e.Message)
}

// GetTickets retrieves the tickets of a category
func (c *Client) GetTickets(ctx context.Context, category models.Category) ([]models.Ticket, error) {
	var data struct {
		Tickets []models.Ticket `json:"tickets"`
	}
	if err := c.getJSON(ctx, categoryPath(category, "tickets"), &data); err != nil {
		return nil, err
	}
	return data.Tickets, nil
}

// GetTicket retrieves a single ticket by number ("12" or "Билет 12")
func (c *Client) GetTicket(ctx context.Context, category models.Category, number string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := c.getJSON(ctx, categoryPath(category, "tickets/"+url.PathEscape(number)), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTopics retrieves the topics of a category
func (c *Client) GetTopics(ctx context.Context, category models.Category) ([]models.Topic, error) {
	var data struct {
		Topics []models.Topic `json:"topics"`
	}
	if err := c.getJSON(ctx, categoryPath(category, "topics"), &data); err != nil {
		return nil, err
	}
	return data.Topics, nil
}

// GetAllQuestions retrieves every ticket question of a category
func (c *Client) GetAllQuestions(ctx context.Context, category models.Category) ([]models.Question, error) {
	var data struct {
		Questions []models.Question `json:"questions"`
	}
	if err := c.getJSON(ctx, categoryPath(category, "questions"), &data); err != nil {
		return nil, err
	}
	return data.Questions, nil
}

// GetSigns retrieves the sign catalog
func (c *Client) GetSigns(ctx context.Context) ([]models.SignCategory, error) {
	var data struct {
		Categories []models.SignCategory `json:"categories"`
	}
	if err := c.getJSON(ctx, "/api/v1/signs", &data); err != nil {
		return nil, err
	}
	return data.Categories, nil
}

// GetMarkups retrieves the road markup catalog
func (c *Client) GetMarkups(ctx context.Context) ([]models.MarkupCategory, error) {
	var data struct {
		Categories []models.MarkupCategory `json:"categories"`
	}
	if err := c.getJSON(ctx, "/api/v1/markups", &data); err != nil {
		return nil, err
	}
	return data.Categories, nil
}

// GetImage downloads the image an image path refers to.
// A missing image returns ErrImageAbsent.
func (c *Client) GetImage(ctx context.Context, imagePath string) ([]byte, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, "/api/v1/image?path="+url.QueryEscape(imagePath))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrImageAbsent
	}
	if status >= 400 {
		return nil, decodeError(status, body)
	}
	return body, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	status, body, err := c.doRequest(ctx, http.MethodGet, "/health")
	if err != nil {
		return err
	}
	if status >= 400 {
		return decodeError(status, body)
	}
	return nil
}

func categoryPath(category models.Category, rest string) string {
	return "/api/v1/categories/" + category.Folder() + "/" + rest
}

// getJSON performs a GET and unwraps the response envelope into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	status, body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	if status >= 400 {
		return decodeError(status, body)
	}

	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var result struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Error == nil {
		return fmt.Errorf("HTTP %d: %s", status, string(body))
	}
	result.Error.Status = status
	return result.Error
}

// doRequest performs an HTTP request and returns the status and body
func (c *Client) doRequest(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
