package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to create a user
	// fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrPasswordAlreadySet is returned by the conditional password update
	// when the account already carries a password hash.
	ErrPasswordAlreadySet = errors.New("password already set")

	// ErrGrantNotFound is returned when no access grant exists for the
	// requested (owner, viewer) pair.
	ErrGrantNotFound = errors.New("access grant was not found")

	// ErrSelfGrant is returned when the database rejects a grant whose
	// owner and viewer are the same user.
	ErrSelfGrant = errors.New("owner and viewer must differ")

	// ErrVitalNotSaved is returned when an INSERT of a vital reading returns
	// no row.
	ErrVitalNotSaved = errors.New("vital was not saved")

	// ErrFileNotFound is returned when a file row does not exist for the
	// given owner.
	ErrFileNotFound = errors.New("file was not found")

	// ErrInsightNotFound is returned when a file has no insight yet.
	ErrInsightNotFound = errors.New("insight was not found")

	// ErrChatNotFound is returned when a chat row does not exist for the
	// given owner.
	ErrChatNotFound = errors.New("chat was not found")

	// ErrReferencedRowMissing is returned when a foreign key points to a
	// row that does not exist (e.g. a chat attached to an unknown file).
	ErrReferencedRowMissing = errors.New("referenced row does not exist")

	// ErrTemporarilyUnavailable wraps database errors that are likely to
	// succeed on a later attempt (connection loss, serialization failure).
	ErrTemporarilyUnavailable = errors.New("database temporarily unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
