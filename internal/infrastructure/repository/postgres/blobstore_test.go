package postgres

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestLoadReturnsNilForUnknownKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM collection_blobs").
		WithArgs("briefings").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	payload, err := NewBlobStore(db).Load(context.Background(), "briefings")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if payload != nil {
		t.Fatalf("unknown key must yield nil payload, got %q", payload)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoadReturnsStoredPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	stored := []byte(`[{"id":"r-1"}]`)
	mock.ExpectQuery("SELECT payload FROM collection_blobs").
		WithArgs("reports").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(stored))

	payload, err := NewBlobStore(db).Load(context.Background(), "reports")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(payload) != string(stored) {
		t.Fatalf("payload = %q, want %q", payload, stored)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveUpsertsBlob(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO collection_blobs").
		WithArgs("data-files", []byte(`[]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewBlobStore(db).Save(context.Background(), "data-files", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnsureSchemaRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS collection_blobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := NewBlobStore(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
