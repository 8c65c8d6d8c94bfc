package content

import (
	"testing"

	"github.com/google/uuid"

	"github.com/terra-clan/examkit/internal/models"
)

func TestQuestionID(t *testing.T) {
	ticket := "Билет 3"

	if got := QuestionID("A,B", &ticket, "17"); got != "A,B_Билет 3_17" {
		t.Errorf("ticket question id = %q", got)
	}
	if got := QuestionID("A,B", nil, "17"); got != "A,B_topic_17" {
		t.Errorf("topic question id = %q", got)
	}

	empty := ""
	if QuestionID("A,B", &empty, "17") == QuestionID("A,B", nil, "17") {
		t.Error("an empty ticket number must not be treated as absent")
	}
}

func TestQuestionKeyIsDeterministic(t *testing.T) {
	a := QuestionKey("A,B_Билет 1_1")
	b := QuestionKey("A,B_Билет 1_1")
	c := QuestionKey("A,B_Билет 1_2")

	if a != b {
		t.Errorf("same id gave different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different ids gave the same key")
	}

	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("key is not a UUID: %v", err)
	}
	if parsed.Version() != 5 {
		t.Errorf("expected UUID version 5, got %d", parsed.Version())
	}
}

func TestTopicID(t *testing.T) {
	if got := TopicID(models.CategoryCD, "Сигналы светофора"); got != "C,D_Сигналы светофора" {
		t.Errorf("TopicID = %q", got)
	}
}
