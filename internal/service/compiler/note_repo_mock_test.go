package compiler

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

var _ noteRepo = &noteRepoMock{}

type noteRepoMock struct {
	ListByNoteTypesFunc  func(ctx context.Context, noteTypes []string) ([]domain.Note, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (domain.Note, error)
	UpdateFieldFunc      func(ctx context.Context, id uuid.UUID, field string, value string) error

	calls struct {
		ListByNoteTypes []struct {
			Ctx       context.Context
			NoteTypes []string
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateField []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Field string
			Value string
		}
	}
	lockListByNoteTypes  sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockUpdateField      sync.RWMutex
}

func (mock *noteRepoMock) ListByNoteTypes(ctx context.Context, noteTypes []string) ([]domain.Note, error) {
	if mock.ListByNoteTypesFunc == nil {
		panic("noteRepoMock.ListByNoteTypesFunc: method is nil but noteRepo.ListByNoteTypes was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		NoteTypes []string
	}{Ctx: ctx, NoteTypes: noteTypes}
	mock.lockListByNoteTypes.Lock()
	mock.calls.ListByNoteTypes = append(mock.calls.ListByNoteTypes, callInfo)
	mock.lockListByNoteTypes.Unlock()
	return mock.ListByNoteTypesFunc(ctx, noteTypes)
}

func (mock *noteRepoMock) ListByNoteTypesCalls() []struct {
	Ctx       context.Context
	NoteTypes []string
} {
	mock.lockListByNoteTypes.RLock()
	calls := mock.calls.ListByNoteTypes
	mock.lockListByNoteTypes.RUnlock()
	return calls
}

func (mock *noteRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("noteRepoMock.GetByIDForUpdateFunc: method is nil but noteRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *noteRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *noteRepoMock) UpdateField(ctx context.Context, id uuid.UUID, field string, value string) error {
	if mock.UpdateFieldFunc == nil {
		panic("noteRepoMock.UpdateFieldFunc: method is nil but noteRepo.UpdateField was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Field string
		Value string
	}{Ctx: ctx, ID: id, Field: field, Value: value}
	mock.lockUpdateField.Lock()
	mock.calls.UpdateField = append(mock.calls.UpdateField, callInfo)
	mock.lockUpdateField.Unlock()
	return mock.UpdateFieldFunc(ctx, id, field, value)
}

func (mock *noteRepoMock) UpdateFieldCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Field string
	Value string
} {
	mock.lockUpdateField.RLock()
	calls := mock.calls.UpdateField
	mock.lockUpdateField.RUnlock()
	return calls
}
