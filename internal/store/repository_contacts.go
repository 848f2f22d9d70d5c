package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
	"github.com/jackc/pgerrcode"
)

// contactRepository is the SQL-backed implementation of [ContactRepository].
//
// Dynamic queries (search, partial update, analytics) are built with
// squirrel so that user input is always bound as parameters, never
// concatenated into query text.
type contactRepository struct {
	logger *logger.Logger
	db     *DB
	ids    *utils.UUIDGenerator
}

// NewContactRepository constructs a [ContactRepository] backed by the
// provided database connection and logger.
func NewContactRepository(db *DB, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating contact repository")
	return &contactRepository{
		db:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
	}
}

// List returns every contact ordered by name.
func (r *contactRepository) List(ctx context.Context) ([]models.Contact, error) {
	query, args, err := r.db.builder().
		Select(contactColumns...).
		From(models.Contact{}.TableName()).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryContacts(ctx, query, args)
}

// GetByID retrieves a single contact.
// Returns [ErrContactNotFound] when no record matches.
func (r *contactRepository) GetByID(ctx context.Context, id string) (models.Contact, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(contactColumns...).
		From(models.Contact{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, ErrContactNotFound
		}

		log.Err(err).Str("func", "*contactRepository.GetByID").Msg("error: scanning error")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return contact, nil
}

// Create persists a new contact and returns the canonical stored record.
// A missing ID is assigned server-side (UUIDv7).
func (r *contactRepository) Create(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	if contact.ID == "" {
		contact.ID = r.ids.Generate()
	}

	interests, err := marshalInterests(contact.Interests)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, createContact,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.Tier,
		contact.RelationshipToGary, contact.HasKids, contact.IsMarried,
		contact.Location, interests, contact.Notes)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.Create").Msg("error inserting contact")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Contact{}, fmt.Errorf("contact id taken: %w", err)
		default:
			return models.Contact{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return r.GetByID(ctx, contact.ID)
}

// Update applies a partial update and returns the refreshed record.
// Returns [ErrContactNotFound] when no record matches.
func (r *contactRepository) Update(ctx context.Context, id string, update models.ContactUpdate) (models.Contact, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return r.GetByID(ctx, id)
	}

	builder := r.db.builder().
		Update(models.Contact{}.TableName()).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id})

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.Phone != nil {
		builder = builder.Set("phone", *update.Phone)
	}
	if update.Tier != nil {
		builder = builder.Set("tier", *update.Tier)
	}
	if update.RelationshipToGary != nil {
		builder = builder.Set("relationship_to_gary", *update.RelationshipToGary)
	}
	if update.HasKids != nil {
		builder = builder.Set("has_kids", *update.HasKids)
	}
	if update.IsMarried != nil {
		builder = builder.Set("is_married", *update.IsMarried)
	}
	if update.Location != nil {
		builder = builder.Set("location", *update.Location)
	}
	if update.Interests != nil {
		interests, err := marshalInterests(*update.Interests)
		if err != nil {
			return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		builder = builder.Set("interests", interests)
	}
	if update.Notes != nil {
		builder = builder.Set("notes", *update.Notes)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.Update").Msg("error updating contact")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Contact{}, ErrContactNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a contact. Connection edges referencing it are removed by
// the schema's ON DELETE CASCADE.
// Returns [ErrContactNotFound] when no record matches.
func (r *contactRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteContact, id)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.Delete").Msg("error deleting contact")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrContactNotFound
	}

	return nil
}

// SearchPage returns one page of contacts whose text columns match query,
// plus the total match count. Matching is case-insensitive substring search
// across name, email, location, notes, interests and relationship.
func (r *contactRepository) SearchPage(ctx context.Context, query string, page, limit int) ([]models.Contact, int, error) {
	log := logger.FromContext(ctx)

	if page < 1 {
		page = 1
	}

	match := r.searchPredicate(query)

	countSQL, countArgs, err := r.db.builder().
		Select("COUNT(*)").
		From(models.Contact{}.TableName()).
		Where(match).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*contactRepository.SearchPage").Msg("error counting matches")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pageSQL, pageArgs, err := r.db.builder().
		Select(contactColumns...).
		From(models.Contact{}.TableName()).
		Where(match).
		OrderBy("name").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	contacts, err := r.queryContacts(ctx, pageSQL, pageArgs)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// Analytics aggregates contact counts with optional tier and location
// filters.
func (r *contactRepository) Analytics(ctx context.Context, tier models.Tier, location string) (models.Analytics, error) {
	log := logger.FromContext(ctx)

	builder := r.db.builder().
		Select("tier", "location", "has_kids", "is_married").
		From(models.Contact{}.TableName())

	if tier != "" {
		builder = builder.Where(sq.Eq{"tier": tier})
	}
	if location != "" {
		builder = builder.Where(sq.Expr(fmt.Sprintf("location %s ?", r.db.likeOperator()), "%"+location+"%"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Analytics{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.Analytics").Msg("error executing analytics query")
		return models.Analytics{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	analytics := models.Analytics{
		ByTier:     make(map[models.Tier]int),
		ByLocation: make(map[string]int),
	}

	for rows.Next() {
		var rowTier models.Tier
		var rowLocation string
		var hasKids, isMarried bool

		if err := rows.Scan(&rowTier, &rowLocation, &hasKids, &isMarried); err != nil {
			return models.Analytics{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		analytics.TotalContacts++
		analytics.ByTier[rowTier]++
		if rowLocation != "" {
			analytics.ByLocation[rowLocation]++
		}
		if hasKids {
			analytics.WithKids++
		}
		if isMarried {
			analytics.Married++
		}
	}
	if err := rows.Err(); err != nil {
		return models.Analytics{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return analytics, nil
}

// searchPredicate builds the OR-of-LIKEs condition over all searchable
// columns. The query text is always bound as a parameter.
func (r *contactRepository) searchPredicate(query string) sq.Or {
	pattern := "%" + query + "%"
	operator := r.db.likeOperator()

	match := make(sq.Or, 0, len(searchableColumns))
	for _, column := range searchableColumns {
		match = append(match, sq.Expr(fmt.Sprintf("%s %s ?", column, operator), pattern))
	}

	return match
}

func (r *contactRepository) queryContacts(ctx context.Context, query string, args []any) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*contactRepository.queryContacts").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return contacts, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (models.Contact, error) {
	var contact models.Contact
	var interests string

	err := row.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone,
		&contact.Tier, &contact.RelationshipToGary, &contact.HasKids,
		&contact.IsMarried, &contact.Location, &interests, &contact.Notes,
		&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return models.Contact{}, err
	}

	contact.Interests, err = unmarshalInterests(interests)
	if err != nil {
		return models.Contact{}, err
	}

	return contact, nil
}

// Interests are stored as a JSON array in a text column so that both
// database backends handle them identically.

func marshalInterests(interests []string) (string, error) {
	if len(interests) == 0 {
		return "[]", nil
	}

	raw, err := json.Marshal(interests)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalInterests(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}

	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		return nil, err
	}
	return interests, nil
}
