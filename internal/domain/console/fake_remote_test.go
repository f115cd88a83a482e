package console

import (
	"context"
	"sync"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/platform/fields"
)

// fakeRemote responde en PascalCase y permite hacer fallar una entidad.
type fakeRemote struct {
	mu      sync.Mutex
	nextID  int64
	records map[clinic.Entity][]fields.Record
	fail    map[clinic.Entity]error
	creates map[clinic.Entity][]fields.Record
	calls   int
	// omitID: responde solo {mensaje}, sin el id asignado
	omitID bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		nextID:  100,
		records: map[clinic.Entity][]fields.Record{},
		fail:    map[clinic.Entity]error{},
		creates: map[clinic.Entity][]fields.Record{},
	}
}

func (f *fakeRemote) seed(e clinic.Entity, recs ...fields.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[e] = append(f.records[e], recs...)
}

func (f *fakeRemote) List(_ context.Context, e clinic.Entity) ([]fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.fail[e]; err != nil {
		return nil, err
	}
	out := make([]fields.Record, 0, len(f.records[e]))
	out = append(out, f.records[e]...)
	return out, nil
}

func (f *fakeRemote) Get(_ context.Context, e clinic.Entity, id int64) (fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, r := range f.records[e] {
		if fields.Int(r, e.IDField()) == id {
			return r, nil
		}
	}
	return nil, clinic.NewError(clinic.ErrNotFound, 404, "", nil)
}

func (f *fakeRemote) Create(_ context.Context, e clinic.Entity, payload fields.Record) (fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.fail[e]; err != nil {
		return nil, err
	}
	id := f.nextID
	f.nextID++

	stored := fields.Record{}
	for k, v := range payload {
		stored[k] = v
	}
	idKey := fields.Aliases(e.IDField())
	stored[idKey[0]] = id
	f.records[e] = append(f.records[e], stored)
	f.creates[e] = append(f.creates[e], payload)

	if f.omitID {
		return fields.Record{"mensaje": "Registro creado"}, nil
	}
	return fields.Record{"Mensaje": "Registro creado", idKey[1]: id}, nil
}

func (f *fakeRemote) Update(_ context.Context, e clinic.Entity, id int64, payload fields.Record) (fields.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.fail[e]; err != nil {
		return nil, err
	}
	for i, r := range f.records[e] {
		if fields.Int(r, e.IDField()) == id {
			f.records[e][i] = payload
			return nil, nil
		}
	}
	return nil, clinic.NewError(clinic.ErrNotFound, 404, "", nil)
}

func (f *fakeRemote) Delete(_ context.Context, e clinic.Entity, id int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.fail[e]; err != nil {
		return "", err
	}
	kept := make([]fields.Record, 0, len(f.records[e]))
	for _, r := range f.records[e] {
		if fields.Int(r, e.IDField()) != id {
			kept = append(kept, r)
		}
	}
	f.records[e] = kept
	return "", nil
}
