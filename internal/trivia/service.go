package trivia

import (
	"context"
	"math/rand/v2"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/store"
)

// Service implements the question bank and quiz operations over the
// repositories.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	pick       func(n int) int
	logger     zerolog.Logger
}

// ServiceOptions tunes optional Service behavior.
type ServiceOptions struct {
	// Pick returns an index in [0, n). Defaults to a uniform random choice.
	Pick func(n int) int
}

// NewService wires the trivia service. cache may be nil.
func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	pick := opts.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		pick:       pick,
		logger:     logger.With().Str("component", "trivia").Logger(),
	}
}

// Categories returns the id->label map, which may be empty.
func (s *Service) Categories(ctx context.Context) (CategoryMap, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			categoryCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("category cache read failed")
		case cached != nil:
			categoryCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			categoryCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	rows, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	categories := make(CategoryMap, len(rows))
	for _, row := range rows {
		categories[row.ID] = row.Type
	}

	// An empty map is not cached so that seeding shows up immediately.
	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// ListCategories is Categories with an empty result reported as NotFound.
func (s *Service) ListCategories(ctx context.Context) (CategoryMap, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, newError(KindNotFound, "list categories", nil)
	}
	return categories, nil
}

// ListQuestions returns one page of all questions ordered by id together with
// every category. Total counts every stored question.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, storeError("list questions", err)
	}
	all := formatQuestions(rows)
	current := Paginate(all, page)
	if len(current) == 0 {
		return QuestionPage{}, newError(KindNotFound, "list questions", nil)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:  current,
		Categories: categories,
		Total:      len(all),
	}, nil
}

// SearchQuestions returns one page of questions whose text contains term,
// ignoring case. No matches is not an error.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (SearchResult, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return SearchResult{}, storeError("search questions", err)
	}
	matches := formatQuestions(rows)
	return SearchResult{
		Questions: Paginate(matches, page),
		Total:     len(matches),
	}, nil
}

// CreateQuestion stores a question without checking that its category exists
// or that difficulty is in range, then returns the requested page of the
// refreshed question list.
func (s *Service) CreateQuestion(ctx context.Context, in CreateQuestionInput, page int) (CreateResult, error) {
	created, err := s.questions.Insert(ctx, insertParams(in))
	if err != nil {
		return CreateResult{}, storeError("insert question", err)
	}
	questionMutations.WithLabelValues("create").Inc()
	s.logger.Info().Int32("question_id", created.ID).Int32("category", created.Category).Msg("question created")

	rows, err := s.questions.ListAll(ctx)
	if err != nil {
		return CreateResult{}, storeError("list questions", err)
	}
	all := formatQuestions(rows)

	return CreateResult{
		ID:        created.ID,
		Questions: Paginate(all, page),
		Total:     len(all),
	}, nil
}

// DeleteQuestion removes a question. A missing id, including one removed by a
// concurrent request between lookup and delete, is NotFound.
func (s *Service) DeleteQuestion(ctx context.Context, id int32) error {
	if _, err := s.questions.Get(ctx, id); err != nil {
		return storeError("get question", err)
	}
	deleted, err := s.questions.Delete(ctx, id)
	if err != nil {
		return storeError("delete question", err)
	}
	if !deleted {
		return newError(KindNotFound, "delete question", nil)
	}
	questionMutations.WithLabelValues("delete").Inc()
	s.logger.Info().Int32("question_id", id).Msg("question deleted")
	return nil
}

// QuestionsByCategory lists every question of a category with the category's
// label. Zero questions or an unknown category are NotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int32) (CategoryQuestions, error) {
	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, storeError("list category questions", err)
	}
	if len(rows) == 0 {
		return CategoryQuestions{}, newError(KindNotFound, "list category questions", nil)
	}

	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, storeError("get category", err)
	}

	questions := formatQuestions(rows)
	return CategoryQuestions{
		Questions:       questions,
		CurrentCategory: category.Type,
		Total:           len(questions),
	}, nil
}

// NextQuizQuestion picks uniformly among the eligible questions that have not
// been served yet. It returns nil when none remain.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*FormattedQuestion, error) {
	var (
		pool []store.Question
		err  error
	)
	if req.CategoryID != 0 {
		pool, err = s.questions.ListByCategory(ctx, req.CategoryID)
	} else {
		pool, err = s.questions.ListAll(ctx)
	}
	if err != nil {
		return nil, storeError("load quiz pool", err)
	}

	seen := make(map[int32]struct{}, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		seen[id] = struct{}{}
	}
	candidates := make([]store.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		quizSelections.WithLabelValues("exhausted").Inc()
		return nil, nil
	}

	next := formatQuestion(candidates[s.pick(len(candidates))])
	quizSelections.WithLabelValues("served").Inc()
	return &next, nil
}

func insertParams(in CreateQuestionInput) store.InsertQuestionParams {
	var params store.InsertQuestionParams
	if in.Question != nil {
		params.Question = pgtype.Text{String: *in.Question, Valid: true}
	}
	if in.Answer != nil {
		params.Answer = pgtype.Text{String: *in.Answer, Valid: true}
	}
	if in.Category != nil {
		params.Category = pgtype.Int4{Int32: *in.Category, Valid: true}
	}
	if in.Difficulty != nil {
		params.Difficulty = pgtype.Int4{Int32: *in.Difficulty, Valid: true}
	}
	return params
}
