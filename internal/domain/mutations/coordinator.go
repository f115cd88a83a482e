package mutations

import (
	"context"
	"fmt"
	"strings"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/platform/logger"
)

// Strategy define qué pasa con la lista local después de una escritura exitosa.
type Strategy string

const (
	// Optimistic aplica el cambio en memoria sin volver a pedir la colección.
	Optimistic Strategy = "optimistic"
	// Refetch recarga la colección completa después de cada escritura.
	Refetch Strategy = "refetch"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Optimistic:
		return Optimistic, nil
	case Refetch:
		return Refetch, nil
	}
	return "", fmt.Errorf("unknown mutation strategy %q", s)
}

// Coordinator ejecuta la llamada remota y, solo si terminó bien, actualiza la
// lista. Ante error la lista queda intacta y el error vuelve sin cambios.
// Pedir confirmación antes de borrar es cosa del caller.
type Coordinator[T clinic.Identifiable] struct {
	list     *List[T]
	reload   func(ctx context.Context) ([]T, error)
	strategy Strategy
	log      logger.Logger
}

func NewCoordinator[T clinic.Identifiable](
	list *List[T],
	reload func(ctx context.Context) ([]T, error),
	strategy Strategy,
	log logger.Logger,
) *Coordinator[T] {
	if strategy == "" {
		strategy = Optimistic
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator[T]{
		list:     list,
		reload:   reload,
		strategy: strategy,
		log:      log,
	}
}

func (c *Coordinator[T]) Strategy() Strategy { return c.strategy }

func (c *Coordinator[T]) List() *List[T] { return c.list }

// Submit es la forma general: call contra el backend, update sobre la lista.
// update corre de forma síncrona antes de retornar.
func (c *Coordinator[T]) Submit(
	ctx context.Context,
	call func(ctx context.Context) (T, error),
	update func(l *List[T], result T),
) (T, error) {
	res, err := call(ctx)
	if err != nil {
		return res, err
	}

	if c.strategy == Refetch {
		c.refresh(ctx)
		return res, nil
	}
	update(c.list, res)
	return res, nil
}

// SubmitCreate antepone el creado. Si la respuesta no trajo id no hay cómo
// deduplicar, así que recarga la colección.
func (c *Coordinator[T]) SubmitCreate(ctx context.Context, call func(ctx context.Context) (T, error)) (T, error) {
	return c.Submit(ctx, call, func(l *List[T], created T) {
		if created.RecordID() <= 0 {
			c.log.Debug("create without id, reloading", nil)
			c.refresh(ctx)
			return
		}
		l.Prepend(created)
	})
}

// SubmitUpdate reemplaza en su lugar.
func (c *Coordinator[T]) SubmitUpdate(ctx context.Context, call func(ctx context.Context) (T, error)) (T, error) {
	return c.Submit(ctx, call, func(l *List[T], updated T) {
		if !l.Replace(updated) {
			c.log.Debug("updated record not in list", map[string]any{"id": updated.RecordID()})
		}
	})
}

// SubmitDelete filtra el id borrado. Devuelve el mensaje del servidor.
func (c *Coordinator[T]) SubmitDelete(ctx context.Context, id int64, call func(ctx context.Context) (string, error)) (string, error) {
	var msg string
	_, err := c.Submit(ctx,
		func(ctx context.Context) (T, error) {
			var zero T
			m, err := call(ctx)
			msg = m
			return zero, err
		},
		func(l *List[T], _ T) { l.Remove(id) },
	)
	return msg, err
}

// Reload reemplaza la lista con lo que diga el servidor.
func (c *Coordinator[T]) Reload(ctx context.Context) error {
	items, err := c.reload(ctx)
	if err != nil {
		return err
	}
	c.list.Reset(items)
	return nil
}

// refresh: la escritura ya se confirmó; si la recarga falla la lista queda
// como estaba hasta el próximo montaje.
func (c *Coordinator[T]) refresh(ctx context.Context) {
	if c.reload == nil {
		return
	}
	if err := c.Reload(ctx); err != nil {
		c.log.Warn("reload after write failed", map[string]any{"err": err})
	}
}
