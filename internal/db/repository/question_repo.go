package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/store"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]store.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]store.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]store.Question, error)
	GetQuestion(ctx context.Context, id int32) (store.Question, error)
	InsertQuestion(ctx context.Context, arg store.InsertQuestionParams) (store.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository wraps the question queries used by the trivia service.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListAll returns every question ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]store.Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions referencing category, ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category int32) ([]store.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, category)
}

// Search returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]store.Question, error) {
	return r.store.SearchQuestions(ctx, term)
}

func (r *QuestionRepository) Get(ctx context.Context, id int32) (store.Question, error) {
	return r.store.GetQuestion(ctx, id)
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params store.InsertQuestionParams) (store.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes the question and reports whether a row was removed.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) (bool, error) {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
