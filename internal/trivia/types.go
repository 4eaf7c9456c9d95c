package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/store"
)

// PageSize is the fixed number of questions per page.
const PageSize = 10

// CategoryMap maps category id to its display label.
type CategoryMap map[int32]string

// FormattedQuestion is the response projection of a stored question.
type FormattedQuestion struct {
	ID         int32  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int32  `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

func formatQuestion(row store.Question) FormattedQuestion {
	return FormattedQuestion{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func formatQuestions(rows []store.Question) []FormattedQuestion {
	out := make([]FormattedQuestion, 0, len(rows))
	for _, row := range rows {
		out = append(out, formatQuestion(row))
	}
	return out
}

// QuestionPage is one page of the full question list.
type QuestionPage struct {
	Questions  []FormattedQuestion
	Categories CategoryMap
	Total      int
}

// SearchResult is one page of search matches plus the total match count.
type SearchResult struct {
	Questions []FormattedQuestion
	Total     int
}

// CreateQuestionInput holds the fields of a new question. Nil fields are sent
// to the store as NULL.
type CreateQuestionInput struct {
	Question   *string
	Answer     *string
	Category   *int32
	Difficulty *int32
}

// CreateResult reports the new id along with a page of all questions.
type CreateResult struct {
	ID        int32
	Questions []FormattedQuestion
	Total     int
}

// CategoryQuestions lists every question of one category.
type CategoryQuestions struct {
	Questions       []FormattedQuestion
	CurrentCategory string
	Total           int
}

// QuizRequest selects the next quiz question. CategoryID 0 means every
// category.
type QuizRequest struct {
	CategoryID        int32
	PreviousQuestions []int32
}

// FlexInt decodes either a JSON number or a numeric string. Browser forms post
// select values as strings, so category ids arrive both ways.
type FlexInt int32

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}
	*f = FlexInt(n)
	return nil
}

// Int32Ptr returns nil for a nil receiver.
func (f *FlexInt) Int32Ptr() *int32 {
	if f == nil {
		return nil
	}
	v := int32(*f)
	return &v
}
