package resolver

import (
	"context"
	"sync"

	"github.com/heartmarshall/czechplus-backend/internal/service/compiler"
)

var _ compilerService = &compilerServiceMock{}

type compilerServiceMock struct {
	PreviewFunc     func(ctx context.Context, input compiler.PreviewInput) (*compiler.PreviewResult, error)
	CompileNoteFunc func(ctx context.Context, input compiler.CompileNoteInput) (*compiler.NoteResult, error)
	CompileAllFunc  func(ctx context.Context, input compiler.CompileAllInput) (*compiler.Result, error)

	calls struct {
		Preview []struct {
			Ctx   context.Context
			Input compiler.PreviewInput
		}
		CompileNote []struct {
			Ctx   context.Context
			Input compiler.CompileNoteInput
		}
		CompileAll []struct {
			Ctx   context.Context
			Input compiler.CompileAllInput
		}
	}
	lockPreview     sync.RWMutex
	lockCompileNote sync.RWMutex
	lockCompileAll  sync.RWMutex
}

func (mock *compilerServiceMock) Preview(ctx context.Context, input compiler.PreviewInput) (*compiler.PreviewResult, error) {
	if mock.PreviewFunc == nil {
		panic("compilerServiceMock.PreviewFunc: method is nil but compilerService.Preview was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input compiler.PreviewInput
	}{Ctx: ctx, Input: input}
	mock.lockPreview.Lock()
	mock.calls.Preview = append(mock.calls.Preview, callInfo)
	mock.lockPreview.Unlock()
	return mock.PreviewFunc(ctx, input)
}

func (mock *compilerServiceMock) PreviewCalls() []struct {
	Ctx   context.Context
	Input compiler.PreviewInput
} {
	mock.lockPreview.RLock()
	calls := mock.calls.Preview
	mock.lockPreview.RUnlock()
	return calls
}

func (mock *compilerServiceMock) CompileNote(ctx context.Context, input compiler.CompileNoteInput) (*compiler.NoteResult, error) {
	if mock.CompileNoteFunc == nil {
		panic("compilerServiceMock.CompileNoteFunc: method is nil but compilerService.CompileNote was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input compiler.CompileNoteInput
	}{Ctx: ctx, Input: input}
	mock.lockCompileNote.Lock()
	mock.calls.CompileNote = append(mock.calls.CompileNote, callInfo)
	mock.lockCompileNote.Unlock()
	return mock.CompileNoteFunc(ctx, input)
}

func (mock *compilerServiceMock) CompileNoteCalls() []struct {
	Ctx   context.Context
	Input compiler.CompileNoteInput
} {
	mock.lockCompileNote.RLock()
	calls := mock.calls.CompileNote
	mock.lockCompileNote.RUnlock()
	return calls
}

func (mock *compilerServiceMock) CompileAll(ctx context.Context, input compiler.CompileAllInput) (*compiler.Result, error) {
	if mock.CompileAllFunc == nil {
		panic("compilerServiceMock.CompileAllFunc: method is nil but compilerService.CompileAll was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input compiler.CompileAllInput
	}{Ctx: ctx, Input: input}
	mock.lockCompileAll.Lock()
	mock.calls.CompileAll = append(mock.calls.CompileAll, callInfo)
	mock.lockCompileAll.Unlock()
	return mock.CompileAllFunc(ctx, input)
}

func (mock *compilerServiceMock) CompileAllCalls() []struct {
	Ctx   context.Context
	Input compiler.CompileAllInput
} {
	mock.lockCompileAll.RLock()
	calls := mock.calls.CompileAll
	mock.lockCompileAll.RUnlock()
	return calls
}
