// file: internals/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

/* =========================
   Domain error kinds
   ========================= */

type Kind string

const (
	// scheduling
	KindVotingNotStarted Kind = "VOTING_NOT_STARTED"
	KindVotingEnded      Kind = "VOTING_ENDED"
	KindInvalidWindow    Kind = "INVALID_WINDOW"

	// eligibility
	KindIneligibleTarget  Kind = "INELIGIBLE_TARGET"
	KindTargetNotFound    Kind = "TARGET_NOT_FOUND"
	KindTargetNotInVoting Kind = "TARGET_NOT_IN_VOTING"

	// quota / uniqueness
	KindDuplicateVote    Kind = "DUPLICATE_VOTE"
	KindQuotaExceeded    Kind = "QUOTA_EXCEEDED"
	KindIncompleteBallot Kind = "INCOMPLETE_BALLOT"

	// immutability
	KindVoteImmutable  Kind = "VOTE_IMMUTABLE"
	KindImmutableField Kind = "IMMUTABLE_FIELD"
	KindLogImmutable   Kind = "LOG_IMMUTABLE"

	// capacity
	KindRegistrationLimitReached Kind = "REGISTRATION_LIMIT_REACHED"
	KindAlreadyPopulated         Kind = "ALREADY_POPULATED"
	KindDuplicateRegistration    Kind = "DUPLICATE_REGISTRATION"

	// plain field validation outside the taxonomy above
	KindValidationFailed Kind = "VALIDATION_FAILED"
)

// Error carries a machine-readable kind next to the human message so
// controllers can map it to an HTTP status without string matching.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the domain kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool { return KindOf(err) == kind }

/* =========================
   HTTP status mapping
   ========================= */

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindTargetNotFound:
		return fiber.StatusNotFound
	case KindDuplicateVote, KindQuotaExceeded, KindAlreadyPopulated,
		KindRegistrationLimitReached, KindDuplicateRegistration:
		return fiber.StatusConflict
	case KindVoteImmutable, KindImmutableField, KindLogImmutable:
		return fiber.StatusForbidden
	case "":
		return fiber.StatusInternalServerError
	default:
		// window, eligibility and ballot-shape failures are caller mistakes
		return fiber.StatusUnprocessableEntity
	}
}
