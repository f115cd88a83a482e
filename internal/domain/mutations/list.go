package mutations

import (
	"sync"

	"vet-clinic-admin/internal/domain/clinic"
)

// List es el estado en memoria de una colección de una vista.
// Puede divergir del servidor hasta el próximo Reset (recarga completa).
type List[T clinic.Identifiable] struct {
	mu    sync.RWMutex
	items []T
}

func NewList[T clinic.Identifiable]() *List[T] {
	return &List[T]{}
}

// Items devuelve una copia en el orden actual.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List[T]) Reset(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]T, len(items))
	copy(l.items, items)
}

// Prepend agrega al inicio; si ya había un registro con el mismo id, lo quita
// (nunca quedan duplicados por id).
func (l *List[T]) Prepend(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, 0, len(l.items)+1)
	out = append(out, item)
	for _, it := range l.items {
		if item.RecordID() > 0 && it.RecordID() == item.RecordID() {
			continue
		}
		out = append(out, it)
	}
	l.items = out
}

// Replace sustituye en su lugar el registro con el mismo id. false si no estaba.
func (l *List[T]) Replace(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, it := range l.items {
		if it.RecordID() == item.RecordID() {
			l.items[i] = item
			return true
		}
	}
	return false
}

func (l *List[T]) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, it := range l.items {
		if it.RecordID() == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *List[T]) Find(id int64) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, it := range l.items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
