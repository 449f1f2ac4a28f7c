package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/models"
)

// ---- helpers ----

const (
	selectResourcesSQL = "SELECT collection, resource_id, document, created_at, updated_at FROM resources WHERE collection = ? ORDER BY resource_id"
	selectResourceSQL  = "SELECT collection, resource_id, document, created_at, updated_at FROM resources WHERE collection = ? AND resource_id = ?"
	insertResourceSQL  = "INSERT INTO resources (collection,resource_id,document,created_at,updated_at) VALUES (?,?,?,?,?)"
	updateResourceSQL  = "UPDATE resources SET document = ?, updated_at = ? WHERE collection = ? AND resource_id = ?"
	deleteResourceSQL  = "DELETE FROM resources WHERE collection = ? AND resource_id = ?"
	resetResourcesSQL  = "DELETE FROM resources"
)

func newMockSQLStore(t *testing.T) (ResourceStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{
		DB:         conn,
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
		dialect:    "sqlite3",
		classifier: NewSQLiteErrorClassifier(),
		logger:     logger.Nop(),
	}

	return NewSQLResourceStore(db, logger.Nop()), mock
}

func resourceRows(docs ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"collection", "resource_id", "document", "created_at", "updated_at"})
	now := time.Now().UTC()
	for i, doc := range docs {
		rows.AddRow("/pets", string(rune('1'+i)), doc, now, now)
	}
	return rows
}

// ---- List ----

func TestSQLResourceStore_List(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectQuery(selectResourcesSQL).
		WithArgs("/pets").
		WillReturnRows(resourceRows(`{"id":"1","kind":"dog"}`, `{"id":"2","kind":"cat"}`))

	results, err := s.List(context.Background(), "/pets", nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "dog", results[0].Document["kind"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLResourceStore_List_FilterAppliedAfterScan(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectQuery(selectResourcesSQL).
		WithArgs("/pets").
		WillReturnRows(resourceRows(`{"id":"1","kind":"dog"}`, `{"id":"2","kind":"cat"}`))

	results, err := s.List(context.Background(), "/pets", Filter{"kind": "cat"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)
}

func TestSQLResourceStore_List_QueryError(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectQuery(selectResourcesSQL).
		WithArgs("/pets").
		WillReturnError(assert.AnError)

	_, err := s.List(context.Background(), "/pets", nil)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSQLResourceStore_List_MalformedDocument(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectQuery(selectResourcesSQL).
		WithArgs("/pets").
		WillReturnRows(resourceRows(`{not json`))

	_, err := s.List(context.Background(), "/pets", nil)
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ---- Get ----

func TestSQLResourceStore_Get(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectQuery(selectResourceSQL).
		WithArgs("/pets", "1").
		WillReturnRows(resourceRows(`{"id":"1","name":"rex"}`))

	res, err := s.Get(context.Background(), "/pets", "1")
	require.NoError(t, err)
	assert.Equal(t, "rex", res.Document["name"])
}

func TestSQLResourceStore_Get_NotFound(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectQuery(selectResourceSQL).
		WithArgs("/pets", "missing").
		WillReturnRows(resourceRows())

	_, err := s.Get(context.Background(), "/pets", "missing")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

// ---- Create ----

func TestSQLResourceStore_Create(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectExec(insertResourceSQL).
		WithArgs("/pets", "1", `{"id":"1"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := s.Create(context.Background(), models.Resource{
		Collection: "/pets",
		ID:         "1",
		Document:   models.Document{"id": "1"},
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLResourceStore_Create_UniqueViolation(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectExec(insertResourceSQL).
		WithArgs("/pets", "1", `{"id":"1"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sqlite3.Error{
			Code:         sqlite3.ErrConstraint,
			ExtendedCode: sqlite3.ErrConstraintPrimaryKey,
		})

	_, err := s.Create(context.Background(), models.Resource{
		Collection: "/pets",
		ID:         "1",
		Document:   models.Document{"id": "1"},
	})
	assert.ErrorIs(t, err, ErrResourceExists)
}

// ---- Replace ----

func TestSQLResourceStore_Replace(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectExec(updateResourceSQL).
		WithArgs(`{"id":"1","name":"bob"}`, sqlmock.AnyArg(), "/pets", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectResourceSQL).
		WithArgs("/pets", "1").
		WillReturnRows(resourceRows(`{"id":"1","name":"bob"}`))

	replaced, err := s.Replace(context.Background(), models.Resource{
		Collection: "/pets",
		ID:         "1",
		Document:   models.Document{"id": "1", "name": "bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", replaced.Document["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLResourceStore_Replace_NotFound(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectExec(updateResourceSQL).
		WithArgs(`{"id":"ghost"}`, sqlmock.AnyArg(), "/pets", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.Replace(context.Background(), models.Resource{
		Collection: "/pets",
		ID:         "ghost",
		Document:   models.Document{"id": "ghost"},
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

// ---- Delete ----

func TestSQLResourceStore_Delete(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectExec(deleteResourceSQL).
		WithArgs("/pets", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.Delete(context.Background(), "/pets", "1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLResourceStore_Delete_NotFound(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectExec(deleteResourceSQL).
		WithArgs("/pets", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), "/pets", "ghost"), ErrResourceNotFound)
}

// ---- Reset ----

func TestSQLResourceStore_Reset(t *testing.T) {
	s, mock := newMockSQLStore(t)

	mock.ExpectExec(resetResourcesSQL).
		WillReturnResult(sqlmock.NewResult(0, 7))

	assert.NoError(t, s.Reset(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
