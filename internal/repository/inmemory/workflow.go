package inmemory

import (
	"context"
	"time"

	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/workflow"
)

type WorkflowRepository struct {
	tx
}

func NewWorkflowRepository(store *Store) *WorkflowRepository {
	return &WorkflowRepository{tx: tx{store: store}}
}

func (r *WorkflowRepository) Transaction(ctx context.Context, fn func(workflow.Repository) error) error {
	return r.transaction(func(t tx) error {
		return fn(&WorkflowRepository{tx: t})
	})
}

func (r *WorkflowRepository) ListRequests(ctx context.Context) ([]workflow.Request, error) {
	var list []workflow.Request
	r.read(func(d *dataset) {
		list = make([]workflow.Request, len(d.requests))
		for i, req := range d.requests {
			list[i] = cloneRequest(req)
		}
	})
	return list, nil
}

func (r *WorkflowRepository) GetRequest(ctx context.Context, id string) (*workflow.Request, error) {
	var found *workflow.Request
	r.read(func(d *dataset) {
		for _, req := range d.requests {
			if req.ID == id {
				c := cloneRequest(req)
				found = &c
				return
			}
		}
	})
	if found == nil {
		return nil, workflow.ErrRequestNotFound
	}
	return found, nil
}

func (r *WorkflowRepository) CreateRequest(ctx context.Context, request *workflow.Request) error {
	return r.write(func(d *dataset) error {
		if request.CreatedAt.IsZero() {
			request.CreatedAt = time.Now().UTC()
		}
		d.requests = append(d.requests, cloneRequest(*request))
		return nil
	})
}

func (r *WorkflowRepository) SaveRequest(ctx context.Context, request *workflow.Request) error {
	return r.write(func(d *dataset) error {
		for i := range d.requests {
			if d.requests[i].ID == request.ID {
				d.requests[i] = cloneRequest(*request)
				return nil
			}
		}
		return workflow.ErrRequestNotFound
	})
}

func (r *WorkflowRepository) ListUsers(ctx context.Context) ([]directory.User, error) {
	return r.listUsers(), nil
}

func (r *WorkflowRepository) GetUser(ctx context.Context, id string) (*directory.User, error) {
	return r.getUser(id)
}

func (r *WorkflowRepository) SuspendUser(ctx context.Context, userID string, until time.Time) error {
	return r.updateUser(userID, func(u *directory.User) {
		end := until
		u.Status = directory.StatusSuspended
		u.SuspensionEndDate = &end
		u.BanReason = ""
		u.UpdatedAt = time.Now().UTC()
	})
}
