package console

import (
	"context"
	"sync/atomic"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/domain/mutations"
	"vet-clinic-admin/internal/platform/fields"
)

// collection es la parte no genérica de cada colección, para que el
// workspace despache por entidad sin un switch por operación.
type collection interface {
	Reload(ctx context.Context) error
	Loaded() bool
	Len() int
	create(ctx context.Context, rec fields.Record, dir *clinic.Directory) (int64, error)
	update(ctx context.Context, id int64, rec fields.Record, dir *clinic.Directory) error
	remove(ctx context.Context, id int64) (string, error)
}

type binding[T clinic.Identifiable] struct {
	*mutations.Coordinator[T]
	codec clinic.Codec[T]
	repo  *clinic.Repository[T]
	// input decodifica lo que manda el usuario; por defecto codec.Decode.
	input func(fields.Record) T
	// loaded: hubo al menos una recarga completa desde el servidor.
	loaded atomic.Bool
}

func newBinding[T clinic.Identifiable](repo *clinic.Repository[T], codec clinic.Codec[T], strategy mutations.Strategy, w *Workspace) *binding[T] {
	b := &binding[T]{codec: codec, repo: repo, input: codec.Decode}
	b.Coordinator = mutations.NewCoordinator(
		mutations.NewList[T](),
		repo.List,
		strategy,
		w.log.With(map[string]any{"entity": string(codec.Entity)}),
	)
	return b
}

func (b *binding[T]) Reload(ctx context.Context) error {
	if err := b.Coordinator.Reload(ctx); err != nil {
		return err
	}
	b.loaded.Store(true)
	return nil
}

func (b *binding[T]) Loaded() bool { return b.loaded.Load() }

func (b *binding[T]) Len() int { return b.List().Len() }

func (b *binding[T]) items() []T { return b.List().Items() }

func (b *binding[T]) create(ctx context.Context, rec fields.Record, dir *clinic.Directory) (int64, error) {
	item := b.codec.WithID(b.input(rec), 0)
	created, err := b.SubmitCreate(ctx, func(ctx context.Context) (T, error) {
		return b.repo.Create(ctx, item, dir)
	})
	if err != nil {
		return 0, err
	}
	return created.RecordID(), nil
}

// update manda la representación completa; el id sale de la ruta, no del cuerpo.
func (b *binding[T]) update(ctx context.Context, id int64, rec fields.Record, dir *clinic.Directory) error {
	item := b.codec.WithID(b.input(rec), id)
	_, err := b.SubmitUpdate(ctx, func(ctx context.Context) (T, error) {
		return b.repo.Update(ctx, item, dir)
	})
	return err
}

func (b *binding[T]) remove(ctx context.Context, id int64) (string, error) {
	return b.SubmitDelete(ctx, id, func(ctx context.Context) (string, error) {
		return b.repo.Delete(ctx, id)
	})
}

// fetch busca primero en la lista y si no, en el servidor.
func (b *binding[T]) fetch(ctx context.Context, id int64) (T, error) {
	if it, ok := b.List().Find(id); ok {
		return it, nil
	}
	return b.repo.GetByID(ctx, id)
}
