package content

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"

	"github.com/terra-clan/examkit/internal/models"
)

// --- Question files (strict) ---

// questionFile represents one element of a ticket or topic JSON array.
// Pointers tell a missing key apart from an empty value.
type questionFile struct {
	Title          *string       `json:"title"`
	TicketNumber   *string       `json:"ticket_number"`
	TicketCategory *string       `json:"ticket_category"`
	Image          *string       `json:"image"`
	Question       *string       `json:"question"`
	Answers        *[]answerFile `json:"answers"`
	CorrectAnswer  *string       `json:"correct_answer"`
	AnswerTip      *string       `json:"answer_tip"`
	Topic          *[]string     `json:"topic"`
	ID             *string       `json:"id"`
}

type answerFile struct {
	AnswerText *string `json:"answer_text"`
	IsCorrect  *bool   `json:"is_correct"`
}

// DecodeQuestions decodes a ticket or topic file.
// Any malformed element fails the whole file. Returned questions carry
// their source id in OriginalID; ID and Key are left for the caller.
func DecodeQuestions(data []byte) ([]models.Question, error) {
	var files []questionFile
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if files == nil {
		return nil, errors.New("expected a JSON array of questions")
	}

	questions := make([]models.Question, 0, len(files))
	for i, f := range files {
		q, err := f.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (f *questionFile) toQuestion() (models.Question, error) {
	required := []struct {
		key   string
		value *string
	}{
		{"title", f.Title},
		{"ticket_category", f.TicketCategory},
		{"image", f.Image},
		{"question", f.Question},
		{"correct_answer", f.CorrectAnswer},
		{"answer_tip", f.AnswerTip},
		{"id", f.ID},
	}
	for _, r := range required {
		if r.value == nil {
			return models.Question{}, fmt.Errorf("%s is required", r.key)
		}
	}
	if f.Answers == nil {
		return models.Question{}, errors.New("answers is required")
	}
	if f.Topic == nil {
		return models.Question{}, errors.New("topic is required")
	}

	answers := make([]models.Answer, 0, len(*f.Answers))
	for i, a := range *f.Answers {
		if a.AnswerText == nil {
			return models.Question{}, fmt.Errorf("answers[%d]: answer_text is required", i)
		}
		if a.IsCorrect == nil {
			return models.Question{}, fmt.Errorf("answers[%d]: is_correct is required", i)
		}
		answers = append(answers, models.Answer{Text: *a.AnswerText, IsCorrect: *a.IsCorrect})
	}

	var ticketNumber *string
	if f.TicketNumber != nil {
		n := *f.TicketNumber
		ticketNumber = &n
	}

	return models.Question{
		OriginalID:    *f.ID,
		Title:         *f.Title,
		TicketNumber:  ticketNumber,
		CategoryTag:   *f.TicketCategory,
		ImagePath:     *f.Image,
		Prompt:        *f.Question,
		Answers:       answers,
		CorrectAnswer: *f.CorrectAnswer,
		Hint:          *f.AnswerTip,
		Topics:        append([]string{}, (*f.Topic)...),
	}, nil
}

// --- Catalog files (lenient) ---

// RawCatalog maps a category display name to its entries keyed by catalog key
type RawCatalog map[string]map[string]RawEntry

// RawEntry holds the undecoded fields of one catalog entry
type RawEntry map[string]json.RawMessage

// DecodeCatalog decodes the outer structure of signs.json or markup.json.
// Only a document that is not a JSON object fails; category values and
// entries that are not objects are dropped.
func DecodeCatalog(data []byte) (RawCatalog, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if outer == nil {
		return nil, errors.New("expected a JSON object")
	}

	catalog := make(RawCatalog, len(outer))
	for name, raw := range outer {
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
			slog.Debug("skipping catalog category", "category", name, "error", err)
			continue
		}

		group := make(map[string]RawEntry, len(entries))
		for key, rawEntry := range entries {
			var fields RawEntry
			if err := json.Unmarshal(rawEntry, &fields); err != nil || fields == nil {
				slog.Debug("skipping catalog entry", "category", name, "key", key, "error", err)
				continue
			}
			group[key] = fields
		}
		catalog[name] = group
	}
	return catalog, nil
}

// String returns a string field, false when it is missing or not a string
func (e RawEntry) String(key string) (string, bool) {
	raw, ok := e[key]
	if !ok {
		return "", false
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

func signFromEntry(e RawEntry) (models.Sign, bool) {
	number, ok1 := e.String("number")
	title, ok2 := e.String("title")
	image, ok3 := e.String("image")
	description, ok4 := e.String("description")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return models.Sign{}, false
	}
	return models.Sign{
		ID:          number,
		Number:      number,
		Title:       title,
		ImagePath:   image,
		Description: description,
	}, true
}

func markupFromEntry(e RawEntry) (models.Markup, bool) {
	number, ok1 := e.String("number")
	image, ok2 := e.String("image")
	description, ok3 := e.String("description")
	if !ok1 || !ok2 || !ok3 {
		return models.Markup{}, false
	}
	return models.Markup{
		ID:          number,
		Number:      number,
		ImagePath:   image,
		Description: description,
	}, true
}
