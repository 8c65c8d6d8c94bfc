package content

import (
	"github.com/google/uuid"

	"github.com/terra-clan/examkit/internal/models"
)

// topicContext stands in for the ticket number of topic-sourced questions
const topicContext = "topic"

// questionNamespace scopes QuestionKey UUIDs
var questionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/terra-clan/examkit/questions"))

// QuestionID builds the identifier of a question from its category tag,
// its ticket (nil for topic files) and its id in the source data
func QuestionID(categoryTag string, ticketNumber *string, originalID string) string {
	grouping := topicContext
	if ticketNumber != nil {
		grouping = *ticketNumber
	}
	return categoryTag + "_" + grouping + "_" + originalID
}

// QuestionKey returns a name-based UUID (v5) for a question ID
func QuestionKey(id string) string {
	return uuid.NewSHA1(questionNamespace, []byte(id)).String()
}

// TopicID builds the identifier of a topic
func TopicID(category models.Category, title string) string {
	return string(category) + "_" + title
}
