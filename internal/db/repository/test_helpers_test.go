package repository

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/trivia-api/internal/db/store"
)

func questionRow(id int32, category int32) store.Question {
	return store.Question{
		ID:         id,
		Question:   "Question " + string(rune('A'+id-1)),
		Answer:     "Answer",
		Category:   category,
		Difficulty: 2,
	}
}

func insertParams(question, answer string, category, difficulty int32) store.InsertQuestionParams {
	return store.InsertQuestionParams{
		Question:   pgtype.Text{String: question, Valid: true},
		Answer:     pgtype.Text{String: answer, Valid: true},
		Category:   pgtype.Int4{Int32: category, Valid: true},
		Difficulty: pgtype.Int4{Int32: difficulty, Valid: true},
	}
}
