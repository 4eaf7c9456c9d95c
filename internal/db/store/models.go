package store

import "github.com/jackc/pgx/v5/pgtype"

// Category mirrors a row of the categories table.
type Category struct {
	ID   int32
	Type string
}

// Question mirrors a row of the questions table.
type Question struct {
	ID         int32
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

// InsertQuestionParams carries nullable columns so that a missing field reaches
// Postgres as NULL and trips the NOT NULL constraint instead of being stored as
// a zero value.
type InsertQuestionParams struct {
	Question   pgtype.Text
	Answer     pgtype.Text
	Category   pgtype.Int4
	Difficulty pgtype.Int4
}
