package store

import (
	"errors"
	"strings"
)

// ErrIndexRequired is returned by backends when an ordered query cannot be
// served without a composite index.
var ErrIndexRequired = errors.New("query requires an index")

type ListErrorClass int

const (
	Fatal ListErrorClass = iota
	RetryWithoutOrder
)

func (c ListErrorClass) String() string {
	if c == RetryWithoutOrder {
		return "retry_without_order"
	}
	return "fatal"
}

// statementTimeoutCode is the Postgres SQLSTATE for a cancelled statement.
// PostgREST surfaces it as "(57014) canceling statement due to statement timeout",
// which is how an unindexed sort over a large owner partition fails.
const statementTimeoutCode = "57014"

// ClassifyListError decides whether a failed ordered list query may be retried
// without its order clause.
func ClassifyListError(err error) ListErrorClass {
	if err == nil {
		return Fatal
	}
	if errors.Is(err, ErrIndexRequired) {
		return RetryWithoutOrder
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "requires an index"):
		return RetryWithoutOrder
	case strings.Contains(msg, "failed-precondition"):
		return RetryWithoutOrder
	case strings.Contains(msg, "("+statementTimeoutCode+")"):
		return RetryWithoutOrder
	}

	var coded interface{ SQLState() string }
	if errors.As(err, &coded) && coded.SQLState() == statementTimeoutCode {
		return RetryWithoutOrder
	}
	return Fatal
}
