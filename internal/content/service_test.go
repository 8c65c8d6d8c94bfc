package content

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/terra-clan/examkit/internal/assets"
	"github.com/terra-clan/examkit/internal/models"
)

func bundleService(t *testing.T) *Service {
	t.Helper()
	store, err := assets.NewDirStore(filepath.Join("testdata", "bundle"))
	if err != nil {
		t.Fatalf("failed to open test bundle: %v", err)
	}
	return NewService(store)
}

func TestServiceTickets(t *testing.T) {
	svc := bundleService(t)

	tickets, err := svc.Tickets(context.Background(), models.CategoryAB)
	if err != nil {
		t.Fatalf("Tickets failed: %v", err)
	}

	var numbers []string
	for _, ticket := range tickets {
		numbers = append(numbers, ticket.Number)
		if ticket.Category != models.CategoryAB {
			t.Errorf("ticket %s has category %s", ticket.Number, ticket.Category)
		}
		if len(ticket.Questions) == 0 {
			t.Errorf("ticket %s has no questions", ticket.Number)
		}
	}

	want := []string{"Билет 1", "Билет 2", "Билет 10"}
	if !reflect.DeepEqual(numbers, want) {
		t.Fatalf("tickets = %v, want %v", numbers, want)
	}

	first := tickets[0].Questions
	if first[0].ID != "A,B_Билет 1_a1" || first[1].ID != "A,B_Билет 1_a2" {
		t.Errorf("unexpected ids: %s, %s", first[0].ID, first[1].ID)
	}
	if first[0].Key == "" || first[0].Key == first[1].Key {
		t.Errorf("unexpected keys: %s, %s", first[0].Key, first[1].Key)
	}
}

func TestServiceTicketsOrderedAndUnique(t *testing.T) {
	svc := bundleService(t)

	for _, category := range models.Categories() {
		tickets, err := svc.Tickets(context.Background(), category)
		if err != nil {
			t.Fatalf("%s: Tickets failed: %v", category, err)
		}
		if len(tickets) == 0 {
			t.Fatalf("%s: no tickets", category)
		}

		seen := make(map[string]bool)
		for i, ticket := range tickets {
			if i > 0 && ExtractNumber(tickets[i-1].Number) > ExtractNumber(ticket.Number) {
				t.Errorf("%s: %s sorted before %s", category, tickets[i-1].Number, ticket.Number)
			}
			for _, q := range ticket.Questions {
				if q.ID == "" {
					t.Errorf("%s: empty question id in %s", category, ticket.Number)
				}
				if seen[q.ID] {
					t.Errorf("%s: duplicate question id %s", category, q.ID)
				}
				seen[q.ID] = true
			}
		}
	}
}

func TestServiceLoadsAreDeterministic(t *testing.T) {
	svc := bundleService(t)
	ctx := context.Background()

	first, err := svc.Tickets(ctx, models.CategoryAB)
	if err != nil {
		t.Fatalf("Tickets failed: %v", err)
	}
	second, err := svc.Tickets(ctx, models.CategoryAB)
	if err != nil {
		t.Fatalf("Tickets failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated loads returned different results")
	}

	// results are fresh copies
	first[0].Questions[0].Title = "changed"
	third, _ := svc.Tickets(ctx, models.CategoryAB)
	if third[0].Questions[0].Title == "changed" {
		t.Error("loads share state")
	}
}

func TestServiceTopics(t *testing.T) {
	svc := bundleService(t)

	topics, err := svc.Topics(context.Background(), models.CategoryAB)
	if err != nil {
		t.Fatalf("Topics failed: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].Title != "Дорожные знаки" || topics[1].Title != "Общие положения" {
		t.Errorf("unexpected topic order: %s, %s", topics[0].Title, topics[1].Title)
	}
	if topics[1].ID != "A,B_Общие положения" {
		t.Errorf("unexpected topic id: %s", topics[1].ID)
	}

	for _, topic := range topics {
		for _, q := range topic.Questions {
			if q.TicketNumber != nil {
				t.Errorf("topic question %s has ticket number %s", q.OriginalID, *q.TicketNumber)
			}
			if q.ID != "A,B_topic_"+q.OriginalID {
				t.Errorf("unexpected topic question id: %s", q.ID)
			}
		}
	}

	cd, err := svc.Topics(context.Background(), models.CategoryCD)
	if err != nil {
		t.Fatalf("Topics C,D failed: %v", err)
	}
	if len(cd) != 1 || cd[0].Title != "Сигналы светофора" || cd[0].Category != models.CategoryCD {
		t.Errorf("unexpected C,D topics: %+v", cd)
	}
}

func TestServiceAllQuestions(t *testing.T) {
	svc := bundleService(t)

	questions, err := svc.AllQuestions(context.Background(), models.CategoryAB)
	if err != nil {
		t.Fatalf("AllQuestions failed: %v", err)
	}

	var ids []string
	for _, q := range questions {
		ids = append(ids, q.OriginalID)
	}
	want := []string{"a1", "a2", "a3", "a4"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("questions = %v, want %v", ids, want)
	}
}

func TestServiceSigns(t *testing.T) {
	svc := bundleService(t)

	categories, err := svc.Signs(context.Background())
	if err != nil {
		t.Fatalf("Signs failed: %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Предупреждающие знаки" || categories[1].Name != "Знаки приоритета" {
		t.Errorf("unexpected category order: %s, %s", categories[0].Name, categories[1].Name)
	}

	var numbers []string
	for _, s := range categories[0].Signs {
		numbers = append(numbers, s.Number)
		if s.ID != s.Number {
			t.Errorf("sign id %s differs from number %s", s.ID, s.Number)
		}
	}
	want := []string{"1.1", "1.2", "1.11", "1.11.1"}
	if !reflect.DeepEqual(numbers, want) {
		t.Errorf("signs = %v, want %v", numbers, want)
	}

	if len(categories[1].Signs) != 1 {
		t.Errorf("sign without title should be dropped, got %d signs", len(categories[1].Signs))
	}
}

func TestServiceMarkups(t *testing.T) {
	svc := bundleService(t)

	categories, err := svc.Markups(context.Background())
	if err != nil {
		t.Fatalf("Markups failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Горизонтальная разметка" {
		t.Errorf("horizontal markup should come first, got %s", categories[0].Name)
	}

	var numbers []string
	for _, m := range categories[0].Markups {
		numbers = append(numbers, m.Number)
	}
	want := []string{"1.1", "1.2", "1.10"}
	if !reflect.DeepEqual(numbers, want) {
		t.Errorf("markups = %v, want %v", numbers, want)
	}
}

func TestServiceCatalogSkipsMalformedEntry(t *testing.T) {
	doc := `{"Горизонтальная разметка": {
		"1.5": {"number": "1.5", "image": "./images/markup/1.5.png", "description": "e"},
		"1.1": {"number": "1.1", "image": "./images/markup/1.1.png", "description": "a"},
		"1.3": {"number": "1.3", "image": "./images/markup/1.3.png"},
		"1.2": {"number": "1.2", "image": "./images/markup/1.2.png", "description": "b"},
		"1.4": {"number": "1.4", "image": "./images/markup/1.4.png", "description": "d"}
	}}`
	svc := NewService(assets.NewFSStore(fstest.MapFS{MarkupFile: {Data: []byte(doc)}}))

	categories, err := svc.Markups(context.Background())
	if err != nil {
		t.Fatalf("Markups failed: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}

	var numbers []string
	for _, m := range categories[0].Markups {
		numbers = append(numbers, m.Number)
	}
	want := []string{"1.1", "1.2", "1.4", "1.5"}
	if !reflect.DeepEqual(numbers, want) {
		t.Errorf("markups = %v, want %v", numbers, want)
	}
}

func TestServiceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed ticket file", func(t *testing.T) {
		svc := NewService(assets.NewFSStore(fstest.MapFS{
			"A_B_Билет 1.json": {Data: []byte(`[]`)},
			"A_B_Билет 2.json": {Data: []byte(`[{"id": "1"}]`)},
		}))
		_, err := svc.Tickets(ctx, models.CategoryAB)

		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected DecodeError, got %v", err)
		}
		if de.Resource != "A_B_Билет 2.json" {
			t.Errorf("unexpected resource: %s", de.Resource)
		}
		if !errors.Is(err, ErrDecode) || errors.Is(err, ErrResourceNotFound) {
			t.Errorf("wrong error kind: %v", err)
		}
	})

	t.Run("malformed catalog", func(t *testing.T) {
		svc := NewService(assets.NewFSStore(fstest.MapFS{SignsFile: {Data: []byte(`[]`)}}))
		if _, err := svc.Signs(ctx); !errors.Is(err, ErrDecode) {
			t.Errorf("expected decode error, got %v", err)
		}
	})

	t.Run("missing catalogs", func(t *testing.T) {
		svc := NewService(assets.NewFSStore(fstest.MapFS{"A_B_Билет 1.json": {Data: []byte(`[]`)}}))

		_, err := svc.Signs(ctx)
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Kind != KindSigns {
			t.Errorf("expected signs not found, got %v", err)
		}
		_, err = svc.Markups(ctx)
		if !errors.As(err, &nf) || nf.Kind != KindMarkup {
			t.Errorf("expected markup not found, got %v", err)
		}
	})

	t.Run("missing tickets", func(t *testing.T) {
		svc := NewService(assets.NewFSStore(fstest.MapFS{}))
		_, err := svc.AllQuestions(ctx, models.CategoryCD)
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Kind != KindTickets {
			t.Errorf("expected tickets not found, got %v", err)
		}
	})
}
