package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound wraps any referenced id that does not resolve.
	ErrNotFound = errors.New("not found")

	// Validation failures on recordAnswer, each naming the violated
	// precondition. These are caller-fixable and never retried.
	ErrSessionNotAlive      = errors.New("session is not alive")
	ErrCompanyMismatch      = errors.New("session does not belong to the answerer's company")
	ErrQuestionNotInSession = errors.New("question does not belong to the session's question set")
	ErrOptionNotApplicable  = errors.New("option does not belong to the question's collection")

	// ErrDuplicateAnswer is a conflict: the existing record stands and the
	// caller must not retry with the same payload.
	ErrDuplicateAnswer = errors.New("answer already recorded for this question and session")

	// ErrNoValidOptions means every option of a collection is retired. That
	// is a catalog misconfiguration, never defaulted to a score.
	ErrNoValidOptions = errors.New("collection has no valid options")

	// Session creation failures.
	ErrSessionChronology   = errors.New("session cannot start after it ends")
	ErrSessionStartsInPast = errors.New("session cannot start in the past")
	ErrThemeSessionExists  = errors.New("company already has a session for this theme")

	// Reflection creation failures.
	ErrQuestionNotAnswered = errors.New("question was not answered by the user in this session")
	ErrDuplicateReflection = errors.New("reflection already submitted for this session")

	// ErrForbidden is returned by the permission gate.
	ErrForbidden = errors.New("caller is not permitted to perform this operation")
)

// isUniqueViolation reports whether err is a storage-level unique constraint
// violation. The unique indexes are the authority for duplicate detection so
// concurrent inserts race down to exactly one winner.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
