// Package memory is an in-process storage.Storage. Records live in a map
// guarded by a mutex and are lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aanand-mishra/students-jsonapi/internal/storage"
	"github.com/aanand-mishra/students-jsonapi/internal/types"
)

type Memory struct {
	mu       sync.RWMutex
	nextID   int64
	students map[int64]types.Student
}

func New() *Memory {
	return &Memory{
		nextID:   1,
		students: map[int64]types.Student{},
	}
}

func (m *Memory) CreateStudent(_ context.Context, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTakenLocked(student.Email, 0) {
		return types.Student{}, fmt.Errorf("CreateStudent: %w", storage.ErrDuplicateKey)
	}

	student.ID = m.nextID
	m.nextID++
	m.students[student.ID] = student
	return student, nil
}

func (m *Memory) GetStudentByID(_ context.Context, id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.students[id]
	if !ok {
		return types.Student{}, fmt.Errorf("GetStudentByID: id %d: %w", id, storage.ErrNotFound)
	}
	return student, nil
}

func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (m *Memory) UpdateStudent(_ context.Context, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[student.ID]; !ok {
		return types.Student{}, fmt.Errorf("UpdateStudent: id %d: %w", student.ID, storage.ErrNotFound)
	}
	if m.emailTakenLocked(student.Email, student.ID) {
		return types.Student{}, fmt.Errorf("UpdateStudent: %w", storage.ErrDuplicateKey)
	}

	m.students[student.ID] = student
	return student, nil
}

func (m *Memory) DeleteStudentByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return fmt.Errorf("DeleteStudentByID: id %d: %w", id, storage.ErrNotFound)
	}
	delete(m.students, id)
	return nil
}

func (m *Memory) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.emailTakenLocked(email, excludeID), nil
}

func (m *Memory) emailTakenLocked(email string, excludeID int64) bool {
	for id, s := range m.students {
		if id != excludeID && s.Email == email {
			return true
		}
	}
	return false
}
