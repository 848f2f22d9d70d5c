package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/models"
	"github.com/jackc/pgerrcode"
)

// connectionRepository is the SQL-backed implementation of
// [ConnectionRepository]. Edges are directed: (contact, target) and
// (target, contact) are distinct rows.
type connectionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewConnectionRepository constructs a [ConnectionRepository] backed by the
// provided database connection and logger.
func NewConnectionRepository(db *DB, logger *logger.Logger) ConnectionRepository {
	logger.Debug().Msg("creating connection repository")
	return &connectionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new edge between two contacts.
//
// Error handling:
//   - duplicate (contact_id, target_contact_id) pair → [ErrConnectionAlreadyExists].
//   - either endpoint missing from contacts → [ErrContactReferenceBroken].
func (r *connectionRepository) Create(ctx context.Context, connection models.Connection) (models.Connection, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, createConnection,
		connection.ContactID, connection.TargetContactID,
		connection.Strength, connection.Type, connection.Notes)
	if err != nil {
		log.Err(err).Str("func", "*connectionRepository.Create").Msg("error inserting connection")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Connection{}, ErrConnectionAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.Connection{}, ErrContactReferenceBroken
		}

		// mattn/go-sqlite3 reports constraint failures as plain strings.
		message := err.Error()
		switch {
		case strings.Contains(message, "UNIQUE constraint failed"):
			return models.Connection{}, ErrConnectionAlreadyExists
		case strings.Contains(message, "FOREIGN KEY constraint failed"):
			return models.Connection{}, ErrContactReferenceBroken
		}

		return models.Connection{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		connection.ID = id
	}

	return r.fetch(ctx, connection)
}

// fetch re-reads the stored edge so callers get the database-assigned
// timestamp. The pgx stdlib driver does not support LastInsertId, so the
// lookup goes by the unique endpoint pair instead.
func (r *connectionRepository) fetch(ctx context.Context, connection models.Connection) (models.Connection, error) {
	row := r.db.QueryRowContext(ctx, findConnectionByPair, connection.ContactID, connection.TargetContactID)

	var stored models.Connection
	err := row.Scan(&stored.ID, &stored.ContactID, &stored.TargetContactID,
		&stored.Strength, &stored.Type, &stored.Notes, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Connection{}, ErrConnectionNotFound
		}
		return models.Connection{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return stored, nil
}

// Delete removes the edge from contactID to targetContactID.
// Returns [ErrConnectionNotFound] when no such edge exists.
func (r *connectionRepository) Delete(ctx context.Context, contactID, targetContactID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteConnection, contactID, targetContactID)
	if err != nil {
		log.Err(err).Str("func", "*connectionRepository.Delete").Msg("error deleting connection")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrConnectionNotFound
	}

	return nil
}

// ListByContact returns every edge originating from contactID, oldest first.
func (r *connectionRepository) ListByContact(ctx context.Context, contactID string) ([]models.Connection, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listConnectionsByContact, contactID)
	if err != nil {
		log.Err(err).Str("func", "*connectionRepository.ListByContact").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	connections := make([]models.Connection, 0)
	for rows.Next() {
		var connection models.Connection
		err := rows.Scan(&connection.ID, &connection.ContactID, &connection.TargetContactID,
			&connection.Strength, &connection.Type, &connection.Notes, &connection.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		connections = append(connections, connection)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return connections, nil
}

// Count returns the total number of edges in the store.
func (r *connectionRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, countConnections).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}
