package commands

import (
	"context"
	"fmt"

	"taskie/internal/model"
	"taskie/internal/result"
	"taskie/internal/service"
)

// errOutOfRange is returned for a positional ref past the end of the list.
type errOutOfRange struct{ num int }

func (e errOutOfRange) Error() string {
	return fmt.Sprintf("task number out of range: %d", e.num)
}

// taskLookup resolves refs against one snapshot of the open tasks, so that
// numbers keep meaning what `taskie list` showed while earlier refs in the
// same command are being completed or deleted.
type taskLookup struct {
	svc   service.Service
	tasks []model.Task
	ready bool
}

func newTaskLookup(svc service.Service) *taskLookup {
	return &taskLookup{svc: svc}
}

// resolve returns the task id for ref. Id refs never hit the backend.
func (l *taskLookup) resolve(ctx context.Context, ref TaskRef) (string, error) {
	if !ref.IsNumber() {
		return ref.ID, nil
	}
	if ref.Num < 1 {
		return "", errOutOfRange{ref.Num}
	}
	if !l.ready {
		r := service.Await(func(done func(result.Result[[]model.Task])) *service.Call {
			return l.svc.GetTasks(ctx, done)
		})
		tasks, err := r.Get()
		if err != nil {
			return "", err
		}
		l.tasks = tasks
		l.ready = true
	}
	if ref.Num > len(l.tasks) {
		return "", errOutOfRange{ref.Num}
	}
	return l.tasks[ref.Num-1].ID, nil
}

// resolveAll resolves every ref before any of them is acted on.
func (l *taskLookup) resolveAll(ctx context.Context, refs []TaskRef) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, err := l.resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
