package trivia

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func int32Ptr(v int32) *int32 { return &v }

func TestService_CategoriesUsesCache(t *testing.T) {
	st := seededStore(0)
	cache := &memoryCache{}
	svc := newTestService(st, cache, nil)

	first, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 6)
	assert.Equal(t, 1, cache.sets)

	// Served from cache even though the store now fails.
	st.failWith = errConnReset
	second, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

func TestService_CategoriesFallsBackWhenCacheFails(t *testing.T) {
	st := seededStore(0)
	svc := newTestService(st, &memoryCache{err: errors.New("redis down")}, nil)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Science", categories[1])
}

func TestService_ListCategoriesEmptyIsNotFound(t *testing.T) {
	cache := &memoryCache{}
	svc := newTestService(newMemStore(), cache, nil)

	_, err := svc.ListCategories(context.Background())
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Zero(t, cache.sets, "empty category map must not be cached")
}

func TestService_ListQuestionsPaging(t *testing.T) {
	svc := newTestService(seededStore(15), nil, nil)

	page1, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page1.Questions, 10)
	assert.Equal(t, 15, page1.Total)
	assert.Len(t, page1.Categories, 6)
	assert.Equal(t, int32(1), page1.Questions[0].ID)

	page2, err := svc.ListQuestions(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page2.Questions, 5)
	assert.Equal(t, 15, page2.Total)

	_, err = svc.ListQuestions(context.Background(), 3)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestService_ListQuestionsStoreFailureIsInternal(t *testing.T) {
	st := seededStore(3)
	st.failWith = errConnReset
	svc := newTestService(st, nil, nil)

	_, err := svc.ListQuestions(context.Background(), 1)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, errConnReset)
}

func TestService_SearchQuestions(t *testing.T) {
	st := seededStore(0)
	st.addQuestion("What was the TITLE of the 1990 fantasy?", 5)
	st.addQuestion("Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", 4)
	st.addQuestion("Who discovered penicillin?", 1)
	svc := newTestService(st, nil, nil)

	result, err := svc.SearchQuestions(context.Background(), "title", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Questions, 2)

	none, err := svc.SearchQuestions(context.Background(), "zebra", 1)
	require.NoError(t, err)
	assert.Zero(t, none.Total)
	assert.NotNil(t, none.Questions)
}

func TestService_SearchTotalCountsAllMatches(t *testing.T) {
	svc := newTestService(seededStore(23), nil, nil)

	result, err := svc.SearchQuestions(context.Background(), "question", 3)
	require.NoError(t, err)
	assert.Equal(t, 23, result.Total)
	assert.Len(t, result.Questions, 3)
}

func TestService_CreateQuestion(t *testing.T) {
	st := seededStore(12)
	svc := newTestService(st, nil, nil)

	result, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question:   strPtr("Who painted the Mona Lisa?"),
		Answer:     strPtr("Leonardo da Vinci"),
		Category:   int32Ptr(99),
		Difficulty: int32Ptr(42),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(13), result.ID)
	assert.Equal(t, 13, result.Total)
	assert.Len(t, result.Questions, 10, "first page of all questions, not just the new one")

	created, err := st.GetQuestion(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(99), created.Category, "category is not validated")
}

func TestService_CreateQuestionMissingFieldIsUnprocessable(t *testing.T) {
	st := seededStore(2)
	svc := newTestService(st, nil, nil)

	_, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question: strPtr("No answer?"),
	}, 1)
	assert.Equal(t, KindUnprocessable, KindOf(err))

	all, _ := st.ListQuestions(context.Background())
	assert.Len(t, all, 2)
}

func TestService_DeleteQuestion(t *testing.T) {
	st := seededStore(3)
	svc := newTestService(st, nil, nil)

	require.NoError(t, svc.DeleteQuestion(context.Background(), 2))

	_, err := st.GetQuestion(context.Background(), 2)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	err = svc.DeleteQuestion(context.Background(), 2)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestService_QuestionsByCategory(t *testing.T) {
	st := seededStore(12)
	svc := newTestService(st, nil, nil)

	result, err := svc.QuestionsByCategory(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Geography", result.CurrentCategory)
	assert.Equal(t, 2, result.Total)
	for _, q := range result.Questions {
		assert.Equal(t, int32(3), q.Category)
	}
}

func TestService_QuestionsByCategoryNotFound(t *testing.T) {
	st := seededStore(0)
	st.addQuestion("Orphaned question", 42)
	svc := newTestService(st, nil, nil)

	_, err := svc.QuestionsByCategory(context.Background(), 2)
	assert.Equal(t, KindNotFound, KindOf(err), "category without questions")

	_, err = svc.QuestionsByCategory(context.Background(), 42)
	assert.Equal(t, KindNotFound, KindOf(err), "questions referencing a missing category")
}

func TestService_NextQuizQuestionSkipsPrevious(t *testing.T) {
	st := seededStore(12)
	svc := newTestService(st, nil, func(n int) int { return 0 })

	q, err := svc.NextQuizQuestion(context.Background(), QuizRequest{
		CategoryID:        1,
		PreviousQuestions: []int32{1},
	})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int32(7), q.ID)
	assert.Equal(t, int32(1), q.Category)
}

func TestService_NextQuizQuestionAllCategories(t *testing.T) {
	st := seededStore(6)
	svc := newTestService(st, nil, nil)

	pool := map[int32]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
	for i := 0; i < 20; i++ {
		q, err := svc.NextQuizQuestion(context.Background(), QuizRequest{})
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.True(t, pool[q.ID])
	}
}

func TestService_NextQuizQuestionExhausted(t *testing.T) {
	st := seededStore(12)
	svc := newTestService(st, nil, nil)

	// Duplicates and ids from other categories must not confuse exhaustion.
	q, err := svc.NextQuizQuestion(context.Background(), QuizRequest{
		CategoryID:        2,
		PreviousQuestions: []int32{2, 2, 8, 5, 11},
	})
	require.NoError(t, err)
	assert.Nil(t, q)

	empty, err := svc.NextQuizQuestion(context.Background(), QuizRequest{CategoryID: 77})
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestService_NextQuizQuestionFindsLastRemaining(t *testing.T) {
	st := seededStore(12)
	svc := newTestService(st, nil, nil)

	// Only question 12 is unseen; the previous list also names ids outside the pool.
	q, err := svc.NextQuizQuestion(context.Background(), QuizRequest{
		CategoryID:        6,
		PreviousQuestions: []int32{6, 100, 101, 102},
	})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int32(12), q.ID)
}

func TestStoreErrorClassification(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(storeError("op", pgx.ErrNoRows)))
	assert.Equal(t, KindUnprocessable, KindOf(storeError("op", &pgconn.PgError{Code: "23502"})))
	assert.Equal(t, KindUnprocessable, KindOf(storeError("op", &pgconn.PgError{Code: "22003"})))
	assert.Equal(t, KindInternal, KindOf(storeError("op", &pgconn.PgError{Code: "57P01"})))
	assert.Equal(t, KindInternal, KindOf(storeError("op", context.DeadlineExceeded)))
	assert.Equal(t, KindInternal, KindOf(errors.New("unclassified")))

	err := storeError("get question", pgx.ErrNoRows)
	assert.EqualError(t, err, "get question: no rows in result set")
	assert.EqualError(t, newError(KindNotFound, "list categories", nil), "list categories: not found")
}
