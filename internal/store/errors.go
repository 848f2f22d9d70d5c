package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUsernameAlreadyExists is returned when creating a user fails
	// because the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrContactNotFound is returned when a query or update targets a
	// contact that does not exist in the database.
	ErrContactNotFound = errors.New("contact was not found")

	// ErrConnectionNotFound is returned when removing a connection edge that
	// does not exist.
	ErrConnectionNotFound = errors.New("connection was not found")

	// ErrConnectionAlreadyExists is returned when inserting a connection
	// edge violates the (contact, target) uniqueness constraint.
	ErrConnectionAlreadyExists = errors.New("connection already exists")

	// ErrContactReferenceBroken is returned when inserting a connection edge
	// whose endpoints do not both exist (foreign-key violation).
	ErrContactReferenceBroken = errors.New("connection references a missing contact")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
