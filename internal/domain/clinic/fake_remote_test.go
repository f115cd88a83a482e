package clinic

import (
	"context"
	"sync"

	"vet-clinic-admin/internal/platform/fields"
)

// fakeRemote guarda lo recibido y responde como un backend que usa PascalCase.
type fakeRemote struct {
	mu     sync.Mutex
	nextID int64
	byEnt  map[Entity][]fields.Record
	calls  int
	// respuesta de Create; nil => {mensaje, id}
	createResp func(e Entity, id int64, payload fields.Record) fields.Record
	err        error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{nextID: 1, byEnt: map[Entity][]fields.Record{}}
}

func pascal(rec fields.Record) fields.Record {
	out := fields.Record{}
	for k, v := range rec {
		if nested, ok := v.(fields.Record); ok {
			v = pascal(nested)
		}
		out[upper(k)] = v
	}
	return out
}

func upper(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}

func (f *fakeRemote) List(_ context.Context, e Entity) ([]fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]fields.Record, 0, len(f.byEnt[e]))
	for _, r := range f.byEnt[e] {
		out = append(out, pascal(r))
	}
	return out, nil
}

func (f *fakeRemote) Get(_ context.Context, e Entity, id int64) (fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, r := range f.byEnt[e] {
		if fields.Int(r, e.IDField()) == id {
			return pascal(r), nil
		}
	}
	return nil, NewError(ErrNotFound, 404, "", nil)
}

func (f *fakeRemote) Create(_ context.Context, e Entity, payload fields.Record) (fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	id := f.nextID
	f.nextID++

	stored := fields.Record{}
	for k, v := range payload {
		stored[k] = v
	}
	stored[fields.Aliases(e.IDField())[0]] = id
	f.byEnt[e] = append(f.byEnt[e], stored)

	if f.createResp != nil {
		return f.createResp(e, id, stored), nil
	}
	return fields.Record{"mensaje": "creado", fields.Aliases(e.IDField())[1]: id}, nil
}

func (f *fakeRemote) Update(_ context.Context, e Entity, id int64, payload fields.Record) (fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for i, r := range f.byEnt[e] {
		if fields.Int(r, e.IDField()) == id {
			f.byEnt[e][i] = payload
			return nil, nil
		}
	}
	return nil, NewError(ErrNotFound, 404, "", nil)
}

func (f *fakeRemote) Delete(_ context.Context, e Entity, id int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	kept := f.byEnt[e][:0]
	for _, r := range f.byEnt[e] {
		if fields.Int(r, e.IDField()) != id {
			kept = append(kept, r)
		}
	}
	f.byEnt[e] = kept
	return "eliminado", nil
}
