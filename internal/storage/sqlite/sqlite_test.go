package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-jsonapi/internal/config"
	"github.com/aanand-mishra/students-jsonapi/internal/storage"
	"github.com/aanand-mishra/students-jsonapi/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "data", "students.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCRUD(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	students, err := db.GetStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	created, err := db.CreateStudent(ctx, types.Student{Name: "Maria López", Address: "Calle 1", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := db.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.Address = "Calle 9"
	updated, err := db.UpdateStudent(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Calle 9", updated.Address)

	require.NoError(t, db.DeleteStudentByID(ctx, created.ID))

	_, err = db.GetStudentByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, db.DeleteStudentByID(ctx, created.ID), storage.ErrNotFound)

	_, err = db.UpdateStudent(ctx, got)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDuplicateEmail(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateStudent(ctx, types.Student{Name: "Maria López", Address: "Calle 1", Email: "a@b.com"})
	require.NoError(t, err)
	juan, err := db.CreateStudent(ctx, types.Student{Name: "Juan Pérez", Address: "Calle 2", Email: "c@d.com"})
	require.NoError(t, err)

	_, err = db.CreateStudent(ctx, types.Student{Name: "Pedro Ruiz", Address: "Calle 3", Email: "a@b.com"})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	juan.Email = "a@b.com"
	_, err = db.UpdateStudent(ctx, juan)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestEmailTaken(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	maria, err := db.CreateStudent(ctx, types.Student{Name: "Maria López", Address: "Calle 1", Email: "a@b.com"})
	require.NoError(t, err)

	taken, err := db.EmailTaken(ctx, "a@b.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = db.EmailTaken(ctx, "a@b.com", maria.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = db.EmailTaken(ctx, "free@b.com", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}
