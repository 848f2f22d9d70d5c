// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var connectionColumns = []string{"id", "contact_id", "target_contact_id", "strength", "type", "notes", "created_at"}

func TestConnectionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConnectionRepository(db, logger.Nop())

	mock.ExpectExec(createConnection).
		WithArgs("c-1", "c-2", "strong", "business", "").
		WillReturnResult(sqlmock.NewResult(5, 1))

	createdAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(findConnectionByPair).
		WithArgs("c-1", "c-2").
		WillReturnRows(sqlmock.NewRows(connectionColumns).
			AddRow(int64(5), "c-1", "c-2", "strong", "business", "", createdAt))

	connection, err := repo.Create(context.Background(), models.Connection{
		ContactID:       "c-1",
		TargetContactID: "c-2",
		Strength:        "strong",
		Type:            "business",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), connection.ID)
	assert.Equal(t, createdAt, connection.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConnectionRepository(db, logger.Nop())

	mock.ExpectExec(createConnection).
		WithArgs("c-1", "c-2", "", "", "").
		WillReturnError(errors.New("UNIQUE constraint failed: connections.contact_id, connections.target_contact_id"))

	_, err := repo.Create(context.Background(), models.Connection{ContactID: "c-1", TargetContactID: "c-2"})
	assert.ErrorIs(t, err, ErrConnectionAlreadyExists)
}

func TestConnectionRepository_Create_MissingEndpoint(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConnectionRepository(db, logger.Nop())

	mock.ExpectExec(createConnection).
		WithArgs("c-1", "ghost", "", "", "").
		WillReturnError(errors.New("FOREIGN KEY constraint failed"))

	_, err := repo.Create(context.Background(), models.Connection{ContactID: "c-1", TargetContactID: "ghost"})
	assert.ErrorIs(t, err, ErrContactReferenceBroken)
}

func TestConnectionRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConnectionRepository(db, logger.Nop())

	mock.ExpectExec(deleteConnection).WithArgs("c-1", "c-2").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "c-1", "c-2"))

	mock.ExpectExec(deleteConnection).WithArgs("c-1", "ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "c-1", "ghost"), ErrConnectionNotFound)
}

func TestConnectionRepository_ListByContact(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConnectionRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectQuery(listConnectionsByContact).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(connectionColumns).
			AddRow(int64(1), "c-1", "c-2", "weak", "", "", now).
			AddRow(int64(2), "c-1", "c-3", "strong", "family", "", now))

	connections, err := repo.ListByContact(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, connections, 2)
	assert.Equal(t, "c-3", connections[1].TargetContactID)
}

func TestConnectionRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConnectionRepository(db, logger.Nop())

	mock.ExpectQuery(countConnections).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 17, total)
}
