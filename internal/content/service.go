// Package content loads exam questions, topics and the sign and markup
// catalogs from an asset store and returns them fully materialized in a
// deterministic order. A Service holds no state besides the store, so one
// instance can be shared by concurrent callers.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/terra-clan/examkit/internal/assets"
	"github.com/terra-clan/examkit/internal/models"
)

// SignCategoryOrder is the fixed display order of sign categories.
// Categories missing from this list are not returned.
var SignCategoryOrder = []string{
	"Предупреждающие знаки",
	"Знаки приоритета",
	"Запрещающие знаки",
	"Предписывающие знаки",
	"Знаки особых предписаний",
	"Информационные знаки",
	"Знаки сервиса",
	"Знаки дополнительной информации (таблички)",
}

// MarkupCategoryOrder is the fixed display order of markup categories
var MarkupCategoryOrder = []string{
	"Горизонтальная разметка",
	"Вертикальная разметка",
}

// Service loads content from a store
type Service struct {
	store   assets.Store
	locator *Locator
}

// NewService creates a content service over store
func NewService(store assets.Store) *Service {
	return &Service{
		store:   store,
		locator: NewLocator(store),
	}
}

// Store returns the underlying asset store
func (s *Service) Store() assets.Store {
	return s.store
}

// Tickets loads every ticket of a category ordered by ticket number
func (s *Service) Tickets(ctx context.Context, category models.Category) ([]models.Ticket, error) {
	resources, err := s.locator.Tickets(ctx, category)
	if err != nil {
		return nil, err
	}

	tickets := make([]models.Ticket, 0, len(resources))
	for _, res := range resources {
		questions, err := s.loadQuestions(ctx, res)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, models.Ticket{
			Number:    res.Name,
			Category:  category,
			Questions: questions,
		})
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return CompareFlat(tickets[i].Number, tickets[j].Number) < 0
	})

	slog.Info("tickets loaded", "category", category, "count", len(tickets))
	return tickets, nil
}

// Topics loads every topic of a category ordered by the number in its title
func (s *Service) Topics(ctx context.Context, category models.Category) ([]models.Topic, error) {
	resources, err := s.locator.Topics(ctx, category)
	if err != nil {
		return nil, err
	}

	topics := make([]models.Topic, 0, len(resources))
	for _, res := range resources {
		questions, err := s.loadQuestions(ctx, res)
		if err != nil {
			return nil, err
		}
		topics = append(topics, models.Topic{
			ID:        TopicID(category, res.Name),
			Title:     res.Name,
			Category:  category,
			Questions: questions,
		})
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return CompareFlat(topics[i].Title, topics[j].Title) < 0
	})

	slog.Info("topics loaded", "category", category, "count", len(topics))
	return topics, nil
}

// AllQuestions returns the questions of every ticket, in ticket order
func (s *Service) AllQuestions(ctx context.Context, category models.Category) ([]models.Question, error) {
	tickets, err := s.Tickets(ctx, category)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	for _, t := range tickets {
		questions = append(questions, t.Questions...)
	}
	return questions, nil
}

// Signs loads the sign catalog in the fixed category order
func (s *Service) Signs(ctx context.Context) ([]models.SignCategory, error) {
	raw, err := s.loadCatalog(ctx, KindSigns)
	if err != nil {
		return nil, err
	}

	categories := make([]models.SignCategory, 0, len(SignCategoryOrder))
	for _, name := range SignCategoryOrder {
		entries, ok := raw[name]
		if !ok {
			continue
		}

		keys := sortedKeys(entries)
		signs := make([]models.Sign, 0, len(keys))
		for _, key := range keys {
			sign, ok := signFromEntry(entries[key])
			if !ok {
				slog.Debug("skipping malformed sign", "category", name, "key", key)
				continue
			}
			signs = append(signs, sign)
		}

		categories = append(categories, models.SignCategory{ID: name, Name: name, Signs: signs})
	}

	slog.Info("signs loaded", "categories", len(categories))
	return categories, nil
}

// Markups loads the road markup catalog in the fixed category order
func (s *Service) Markups(ctx context.Context) ([]models.MarkupCategory, error) {
	raw, err := s.loadCatalog(ctx, KindMarkup)
	if err != nil {
		return nil, err
	}

	categories := make([]models.MarkupCategory, 0, len(MarkupCategoryOrder))
	for _, name := range MarkupCategoryOrder {
		entries, ok := raw[name]
		if !ok {
			continue
		}

		keys := sortedKeys(entries)
		markups := make([]models.Markup, 0, len(keys))
		for _, key := range keys {
			markup, ok := markupFromEntry(entries[key])
			if !ok {
				slog.Debug("skipping malformed markup", "category", name, "key", key)
				continue
			}
			markups = append(markups, markup)
		}

		categories = append(categories, models.MarkupCategory{ID: name, Name: name, Markups: markups})
	}

	slog.Info("markups loaded", "categories", len(categories))
	return categories, nil
}

// loadQuestions reads and decodes one question file and assigns identifiers
func (s *Service) loadQuestions(ctx context.Context, res Resource) ([]models.Question, error) {
	data, err := s.store.ReadFile(ctx, res.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", res.Path, err)
	}

	questions, err := DecodeQuestions(data)
	if err != nil {
		return nil, &DecodeError{Resource: res.Path, Err: err}
	}

	for i := range questions {
		q := &questions[i]
		q.ID = QuestionID(q.CategoryTag, q.TicketNumber, q.OriginalID)
		q.Key = QuestionKey(q.ID)
	}
	return questions, nil
}

func (s *Service) loadCatalog(ctx context.Context, kind Kind) (RawCatalog, error) {
	res, err := s.locator.Catalog(ctx, kind)
	if err != nil {
		return nil, err
	}

	data, err := s.store.ReadFile(ctx, res.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", res.Path, err)
	}

	raw, err := DecodeCatalog(data)
	if err != nil {
		return nil, &DecodeError{Resource: res.Path, Err: err}
	}
	return raw, nil
}

func sortedKeys(entries map[string]RawEntry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	SortDotted(keys)
	return keys
}
