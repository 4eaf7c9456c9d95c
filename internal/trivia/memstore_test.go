package trivia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/store"
)

// memStore satisfies both repository store interfaces and mimics the Postgres
// schema: ids are assigned in order and NULL columns violate NOT NULL.
type memStore struct {
	mu         sync.Mutex
	nextID     int32
	questions  []store.Question
	categories []store.Category
	failWith   error
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (m *memStore) addCategory(id int32, label string) {
	m.categories = append(m.categories, store.Category{ID: id, Type: label})
}

func (m *memStore) addQuestion(text string, category int32) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.questions = append(m.questions, store.Question{
		ID:         id,
		Question:   text,
		Answer:     "answer " + text,
		Category:   category,
		Difficulty: 1,
	})
	return id
}

func (m *memStore) ListCategories(context.Context) ([]store.Category, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return append([]store.Category(nil), m.categories...), nil
}

func (m *memStore) GetCategory(_ context.Context, id int32) (store.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return store.Category{}, pgx.ErrNoRows
}

func (m *memStore) ListQuestions(context.Context) ([]store.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return append([]store.Question(nil), m.questions...), nil
}

func (m *memStore) ListQuestionsByCategory(_ context.Context, category int32) ([]store.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.Question
	for _, q := range m.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memStore) SearchQuestions(_ context.Context, term string) ([]store.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.Question
	for _, q := range m.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memStore) GetQuestion(_ context.Context, id int32) (store.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return store.Question{}, pgx.ErrNoRows
}

func (m *memStore) InsertQuestion(_ context.Context, arg store.InsertQuestionParams) (store.Question, error) {
	if !arg.Question.Valid || !arg.Answer.Valid || !arg.Category.Valid || !arg.Difficulty.Valid {
		return store.Question{}, &pgconn.PgError{Code: "23502", Message: "null value violates not-null constraint"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	q := store.Question{
		ID:         m.nextID,
		Question:   arg.Question.String,
		Answer:     arg.Answer.String,
		Category:   arg.Category.Int32,
		Difficulty: arg.Difficulty.Int32,
	}
	m.nextID++
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *memStore) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// seededStore holds the six standard categories and n questions spread over
// them.
func seededStore(n int) *memStore {
	st := newMemStore()
	for i, label := range []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"} {
		st.addCategory(int32(i+1), label)
	}
	for i := 0; i < n; i++ {
		st.addQuestion(fmt.Sprintf("Question %d", i+1), int32(i%6+1))
	}
	return st
}

type memoryCache struct {
	stored CategoryMap
	sets   int
	err    error
}

func (c *memoryCache) Get(context.Context) (CategoryMap, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.stored, nil
}

func (c *memoryCache) Set(_ context.Context, categories CategoryMap) error {
	c.sets++
	c.stored = categories
	return nil
}

func newTestService(st *memStore, cache CategoryCache, pick func(int) int) *Service {
	return NewService(
		repository.NewQuestionRepository(st),
		repository.NewCategoryRepository(st),
		cache,
		ServiceOptions{Pick: pick},
		zerolog.New(io.Discard),
	)
}

var errConnReset = errors.New("connection reset by peer")
