package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

const listQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Question])
}

const listQuestionsByCategory = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE category = $1
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int32) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, category)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Question])
}

const searchQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE question ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY id
`

// SearchQuestions matches term as a literal, case-insensitive substring of the
// question text.
func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, escapeLike(term))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Question])
}

const getQuestion = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE id = $1
`

func (q *Queries) GetQuestion(ctx context.Context, id int32) (Question, error) {
	var r Question
	err := q.db.QueryRow(ctx, getQuestion, id).Scan(&r.ID, &r.Question, &r.Answer, &r.Category, &r.Difficulty)
	return r, err
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty
`

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	var r Question
	err := q.db.QueryRow(ctx, insertQuestion, arg.Question, arg.Answer, arg.Category, arg.Difficulty).
		Scan(&r.ID, &r.Question, &r.Answer, &r.Category, &r.Difficulty)
	return r, err
}

const deleteQuestion = `
DELETE FROM questions
WHERE id = $1
`

// DeleteQuestion reports how many rows were removed; zero means another
// request got there first.
func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
