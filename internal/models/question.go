package models

// Answer is a single answer option of a question
type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a single exam question
type Question struct {
	ID            string   `json:"id"`  // "A,B_Билет 1_17" or "A,B_topic_17"
	Key           string   `json:"key"` // UUIDv5 of ID
	OriginalID    string   `json:"originalId"`
	Title         string   `json:"title"`
	TicketNumber  *string  `json:"ticketNumber"` // nil for topic-sourced questions
	CategoryTag   string   `json:"ticketCategory"`
	ImagePath     string   `json:"imagePath"`
	Prompt        string   `json:"question"`
	Answers       []Answer `json:"answers"`
	CorrectAnswer string   `json:"correctAnswer"`
	Hint          string   `json:"answerTip"`
	Topics        []string `json:"topics"`
}

// CorrectAnswers returns the number of answers flagged as correct.
// Content is not validated on load, so callers that care must check.
func (q *Question) CorrectAnswers() int {
	n := 0
	for _, a := range q.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// Ticket is an exam paper of a fixed set of questions
type Ticket struct {
	Number    string     `json:"number"`
	Category  Category   `json:"category"`
	Questions []Question `json:"questions"`
}

// Topic groups questions by subject regardless of ticket
type Topic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Category  Category   `json:"category"`
	Questions []Question `json:"questions"`
}
