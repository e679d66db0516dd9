// Package storage defines the Storage interface: the contract any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, so the SQLite backend and the
// in-memory backend are interchangeable (see config storage_driver), and
// tests can run the full HTTP stack without a database file.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-jsonapi/internal/types"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicateKey is returned when an insert or update would make two
	// records share the same email.
	ErrDuplicateKey = errors.New("duplicate key: email already taken")
)

// Storage is the record store contract.
type Storage interface {
	// CreateStudent inserts a new record and returns it with the
	// store-assigned ID. Returns ErrDuplicateKey on an email collision.
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// GetStudentByID returns ErrNotFound if the id is absent.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every record ordered by id.
	// Returns an empty slice (not nil) if there are none.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudent overwrites the stored record with the same ID and
	// returns what is stored afterwards. Returns ErrNotFound if the
	// record vanished and ErrDuplicateKey on an email collision.
	UpdateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a record permanently.
	DeleteStudentByID(ctx context.Context, id int64) error

	// EmailTaken reports whether any record other than excludeID holds
	// email. Pass 0 to scan every record.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}
