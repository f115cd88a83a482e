package views

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vet-clinic-admin/internal/domain/clinic"
)

// State del ciclo de carga de una vista.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "pending"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Dependencies: colecciones que necesita cada vista, la propia primero.
var Dependencies = map[clinic.Entity][]clinic.Entity{
	clinic.Pets:          {clinic.Pets, clinic.Owners},
	clinic.Owners:        {clinic.Owners},
	clinic.Vets:          {clinic.Vets},
	clinic.Consultations: {clinic.Consultations, clinic.Vets, clinic.Pets, clinic.Owners},
	clinic.Medications:   {clinic.Medications},
	clinic.Prescriptions: {clinic.Prescriptions, clinic.Consultations, clinic.Medications, clinic.Pets},
	clinic.Histories:     {clinic.Histories, clinic.Pets, clinic.Owners},
	clinic.Admins:        {clinic.Admins},
}

// Load corre todas las tareas a la vez y espera a que terminen todas.
// Sin contexto derivado: una falla no cancela a las demás. Devuelve la primera falla.
func Load(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	var g errgroup.Group
	for _, task := range tasks {
		g.Go(func() error { return task(ctx) })
	}
	return g.Wait()
}

type Status struct {
	Entity   clinic.Entity `json:"entity"`
	MountID  string        `json:"mount_id,omitempty"`
	State    State         `json:"state"`
	Error    string        `json:"error,omitempty"`
	LoadedAt *time.Time    `json:"loaded_at,omitempty"`

	err error
}

func (s Status) Err() error { return s.err }

// Tracker guarda el estado de la última carga de una vista. Un montaje nuevo
// deja obsoletos los anteriores: sus resultados se ignoran.
type Tracker struct {
	mu     sync.RWMutex
	status Status
	now    func() time.Time
}

func NewTracker(entity clinic.Entity) *Tracker {
	return &Tracker{
		status: Status{Entity: entity, State: Pending},
		now:    time.Now,
	}
}

// Begin abre un montaje y devuelve su id.
func (t *Tracker) Begin() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	mountID := uuid.NewString()
	t.status = Status{Entity: t.status.Entity, MountID: mountID, State: Pending}
	return mountID
}

// Settle cierra el montaje. false si ya había uno más nuevo.
func (t *Tracker) Settle(mountID string, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.MountID != mountID {
		return false
	}
	if err != nil {
		t.status.State = Failed
		t.status.Error = err.Error()
		t.status.err = err
		return true
	}
	at := t.now()
	t.status.State = Ready
	t.status.LoadedAt = &at
	return true
}

func (t *Tracker) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}
