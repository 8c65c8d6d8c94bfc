package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/terra-clan/examkit/internal/api"
	"github.com/terra-clan/examkit/internal/assets"
	"github.com/terra-clan/examkit/internal/config"
	"github.com/terra-clan/examkit/internal/content"
	"github.com/terra-clan/examkit/internal/images"
	"github.com/terra-clan/examkit/internal/models"
)

const testKey = "sk_test_client_key"

var bundle = fstest.MapFS{
	"questions/C_D/tickets/Билет 3.json": {Data: []byte(`[
		{"title": "q", "ticket_number": "Билет 3", "ticket_category": "C,D", "image": "./images/C_D/c3.jpg",
		 "question": "?", "answers": [{"answer_text": "Да", "is_correct": true}],
		 "correct_answer": "1", "answer_tip": "", "topic": ["Сигналы"], "id": "7"}
	]`)},
	"questions/C_D/topics/Сигналы.json": {Data: []byte(`[
		{"title": "q", "ticket_category": "C,D", "image": "./images/no_image.jpg",
		 "question": "?", "answers": [{"answer_text": "Да", "is_correct": true}],
		 "correct_answer": "1", "answer_tip": "", "topic": ["Сигналы"], "id": "7"}
	]`)},
	"markup.json": {Data: []byte(`{
		"Горизонтальная разметка": {"1.1": {"number": "1.1", "image": "./images/markup/1.1.png", "description": "Сплошная"}}
	}`)},
	"images/C_D/c3.jpg": {Data: []byte("jpeg bytes")},
}

func newTestClient(t *testing.T, key string) *Client {
	t.Helper()

	store := assets.NewFSStore(bundle)
	srv := api.NewServer(
		config.ServerConfig{},
		content.NewService(store),
		images.NewResolver(store),
		config.AuthConfig{APIKeys: []string{testKey}},
	)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return NewClient(ts.URL, key, WithHTTPClient(ts.Client()))
}

func TestClientContent(t *testing.T) {
	c := newTestClient(t, testKey)
	ctx := context.Background()

	if err := c.Health(ctx); err != nil {
		t.Fatalf("Health failed: %v", err)
	}

	tickets, err := c.GetTickets(ctx, models.CategoryCD)
	if err != nil {
		t.Fatalf("GetTickets failed: %v", err)
	}
	if len(tickets) != 1 || tickets[0].Number != "Билет 3" {
		t.Fatalf("unexpected tickets: %+v", tickets)
	}
	if q := tickets[0].Questions[0]; q.ID != "C,D_Билет 3_7" || q.TicketNumber == nil {
		t.Errorf("unexpected question: %+v", q)
	}

	ticket, err := c.GetTicket(ctx, models.CategoryCD, "Билет 3")
	if err != nil {
		t.Fatalf("GetTicket failed: %v", err)
	}
	if ticket.Category != models.CategoryCD {
		t.Errorf("category = %q", ticket.Category)
	}

	topics, err := c.GetTopics(ctx, models.CategoryCD)
	if err != nil {
		t.Fatalf("GetTopics failed: %v", err)
	}
	if len(topics) != 1 || topics[0].Questions[0].ID != "C,D_topic_7" {
		t.Errorf("unexpected topics: %+v", topics)
	}

	questions, err := c.GetAllQuestions(ctx, models.CategoryCD)
	if err != nil {
		t.Fatalf("GetAllQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(questions))
	}

	markups, err := c.GetMarkups(ctx)
	if err != nil {
		t.Fatalf("GetMarkups failed: %v", err)
	}
	if len(markups) != 1 || markups[0].Markups[0].Description != "Сплошная" {
		t.Errorf("unexpected markups: %+v", markups)
	}
}

func TestClientErrors(t *testing.T) {
	c := newTestClient(t, testKey)
	ctx := context.Background()

	_, err := c.GetTickets(ctx, models.CategoryAB)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "not_found" {
		t.Errorf("unexpected error: %+v", apiErr)
	}

	if _, err := c.GetSigns(ctx); !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("missing sign catalog: %v", err)
	}

	unauthorized := newTestClient(t, "wrong-key")
	if _, err := unauthorized.GetTopics(ctx, models.CategoryCD); !errors.As(err, &apiErr) || apiErr.Code != "invalid_api_key" {
		t.Errorf("expected invalid_api_key, got %v", err)
	}
}

func TestClientImages(t *testing.T) {
	c := newTestClient(t, testKey)
	ctx := context.Background()

	data, err := c.GetImage(ctx, "./images/C_D/c3.jpg")
	if err != nil {
		t.Fatalf("GetImage failed: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("got %q", data)
	}

	for _, path := range []string{"./images/no_image.jpg", "./images/C_D/missing.jpg"} {
		if _, err := c.GetImage(ctx, path); !errors.Is(err, ErrImageAbsent) {
			t.Errorf("%s: expected ErrImageAbsent, got %v", path, err)
		}
	}
}
