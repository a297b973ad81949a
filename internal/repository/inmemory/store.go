package inmemory

import (
	"sync"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/servicelog"
	"care-hub-go/internal/domain/workflow"
)

// Store keeps the four collections in process memory. Every write runs under
// writeMu; a transaction holds writeMu for its whole body and restores the
// snapshot taken at its start when the body fails.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    dataset
}

type dataset struct {
	users         []directory.User
	beneficiaries []care.Beneficiary
	requests      []workflow.Request
	entries       []servicelog.Entry
}

func NewStore() *Store {
	return &Store{}
}

func (d dataset) clone() dataset {
	out := dataset{
		users:         make([]directory.User, len(d.users)),
		beneficiaries: append([]care.Beneficiary(nil), d.beneficiaries...),
		requests:      make([]workflow.Request, len(d.requests)),
		entries:       append([]servicelog.Entry(nil), d.entries...),
	}
	for i, u := range d.users {
		out.users[i] = cloneUser(u)
	}
	for i, r := range d.requests {
		out.requests[i] = cloneRequest(r)
	}
	return out
}

func cloneUser(u directory.User) directory.User {
	if u.SuspensionEndDate != nil {
		end := *u.SuspensionEndDate
		u.SuspensionEndDate = &end
	}
	return u
}

func cloneRequest(r workflow.Request) workflow.Request {
	if r.Amount != nil {
		amount := *r.Amount
		r.Amount = &amount
	}
	if r.StartDate != nil {
		start := *r.StartDate
		r.StartDate = &start
	}
	if r.EndDate != nil {
		end := *r.EndDate
		r.EndDate = &end
	}
	if r.DecidedAt != nil {
		decided := *r.DecidedAt
		r.DecidedAt = &decided
	}
	return r
}

// tx is handed to adapters. held reports whether writeMu is already owned by
// an enclosing transaction.
type tx struct {
	store *Store
	held  bool
}

func (t tx) transaction(fn func(tx) error) error {
	if t.held {
		return fn(t)
	}

	t.store.writeMu.Lock()
	defer t.store.writeMu.Unlock()

	t.store.mu.RLock()
	snapshot := t.store.data.clone()
	t.store.mu.RUnlock()

	if err := fn(tx{store: t.store, held: true}); err != nil {
		t.store.mu.Lock()
		t.store.data = snapshot
		t.store.mu.Unlock()
		return err
	}
	return nil
}

func (t tx) read(fn func(d *dataset)) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	fn(&t.store.data)
}

func (t tx) write(fn func(d *dataset) error) error {
	if !t.held {
		t.store.writeMu.Lock()
		defer t.store.writeMu.Unlock()
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(&t.store.data)
}

func (t tx) listUsers() []directory.User {
	var users []directory.User
	t.read(func(d *dataset) {
		users = make([]directory.User, len(d.users))
		for i, u := range d.users {
			users[i] = cloneUser(u)
		}
	})
	return users
}

func (t tx) getUser(id string) (*directory.User, error) {
	var found *directory.User
	t.read(func(d *dataset) {
		for _, u := range d.users {
			if u.ID == id {
				c := cloneUser(u)
				found = &c
				return
			}
		}
	})
	if found == nil {
		return nil, directory.ErrUserNotFound
	}
	return found, nil
}

func (t tx) updateUser(id string, fn func(u *directory.User)) error {
	return t.write(func(d *dataset) error {
		for i := range d.users {
			if d.users[i].ID == id {
				fn(&d.users[i])
				return nil
			}
		}
		return directory.ErrUserNotFound
	})
}

func (t tx) listBeneficiaries() []care.Beneficiary {
	var list []care.Beneficiary
	t.read(func(d *dataset) {
		list = append([]care.Beneficiary(nil), d.beneficiaries...)
	})
	return list
}
