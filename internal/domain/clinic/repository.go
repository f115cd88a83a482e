package clinic

import (
	"context"
	"time"

	"vet-clinic-admin/internal/platform/fields"
	"vet-clinic-admin/internal/platform/logger"
)

// Repository envuelve el backend para un tipo de entidad y devuelve registros
// normalizados. La validación local corre antes de cualquier llamada remota.
type Repository[T Identifiable] struct {
	remote Remote
	codec  Codec[T]
	log    logger.Logger
	now    func() time.Time
}

func NewRepository[T Identifiable](remote Remote, codec Codec[T], log logger.Logger) *Repository[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository[T]{
		remote: remote,
		codec:  codec,
		log:    log.With(map[string]any{"entity": string(codec.Entity)}),
		now:    time.Now,
	}
}

func (r *Repository[T]) Entity() Entity { return r.codec.Entity }

// List respeta el orden del servidor.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	recs, err := r.remote.List(ctx, r.codec.Entity)
	if err != nil {
		r.log.Warn("list failed", map[string]any{"err": err})
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.codec.Decode(rec))
	}
	return out, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T
	if id <= 0 {
		return zero, NewError(ErrNotFound, 0, r.codec.Entity.Singular()+" no encontrado", nil)
	}
	rec, err := r.remote.Get(ctx, r.codec.Entity, id)
	if err != nil {
		return zero, err
	}
	return r.codec.Decode(rec), nil
}

// Create valida, arma el envelope con snapshots tomados de dir y hace POST.
// Si la respuesta trae el registro completo se usa; si solo trae id, se le
// asigna al item enviado; si no trae nada, el item vuelve con ID 0.
func (r *Repository[T]) Create(ctx context.Context, item T, dir *Directory) (T, error) {
	var zero T
	if err := r.codec.Validate(item, OpCreate, r.now()); err != nil {
		return zero, err
	}

	rec, err := r.remote.Create(ctx, r.codec.Entity, r.codec.Encode(item, dir))
	if err != nil {
		r.log.Warn("create failed", map[string]any{"err": err})
		return zero, err
	}

	created := r.merge(item, rec)
	r.log.Info("created", map[string]any{
		"id":      created.RecordID(),
		"message": fields.String(rec, fields.Message),
	})
	return created, nil
}

// Update manda la representación completa (PUT reemplaza, no parchea).
func (r *Repository[T]) Update(ctx context.Context, item T, dir *Directory) (T, error) {
	var zero T
	if item.RecordID() <= 0 {
		return zero, &ValidationError{
			Entity:   r.codec.Entity,
			Problems: []Problem{{Field: "id", Message: "No se proporcionó un ID válido"}},
		}
	}
	if err := r.codec.Validate(item, OpUpdate, r.now()); err != nil {
		return zero, err
	}

	rec, err := r.remote.Update(ctx, r.codec.Entity, item.RecordID(), r.codec.Encode(item, dir))
	if err != nil {
		r.log.Warn("update failed", map[string]any{"id": item.RecordID(), "err": err})
		return zero, err
	}

	updated := r.merge(item, rec)
	if updated.RecordID() != item.RecordID() {
		updated = r.codec.WithID(updated, item.RecordID())
	}
	r.log.Info("updated", map[string]any{"id": item.RecordID()})
	return updated, nil
}

// Delete devuelve el mensaje del servidor, si lo hubo.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", &ValidationError{
			Entity:   r.codec.Entity,
			Problems: []Problem{{Field: "id", Message: "No se proporcionó un ID válido"}},
		}
	}
	msg, err := r.remote.Delete(ctx, r.codec.Entity, id)
	if err != nil {
		r.log.Warn("delete failed", map[string]any{"id": id, "err": err})
		return "", err
	}
	r.log.Info("deleted", map[string]any{"id": id})
	return msg, nil
}

func (r *Repository[T]) merge(sent T, rec fields.Record) T {
	if rec == nil {
		return sent
	}
	id := fields.Int(rec, r.codec.Entity.IDField())
	if id <= 0 {
		return sent
	}
	if fields.Has(rec, r.codec.Key) {
		return r.codec.Decode(rec)
	}
	return r.codec.WithID(sent, id)
}

// Repositories agrupa los ocho repositorios sobre el mismo Remote.
type Repositories struct {
	Pets          *Repository[Pet]
	Owners        *Repository[Owner]
	Vets          *Repository[Vet]
	Consultations *Repository[Consultation]
	Medications   *Repository[Medication]
	Prescriptions *Repository[Prescription]
	Histories     *Repository[MedicalHistory]
	Admins        *Repository[Administrator]
}

func NewRepositories(remote Remote, log logger.Logger) *Repositories {
	return &Repositories{
		Pets:          NewRepository(remote, PetCodec, log),
		Owners:        NewRepository(remote, OwnerCodec, log),
		Vets:          NewRepository(remote, VetCodec, log),
		Consultations: NewRepository(remote, ConsultationCodec, log),
		Medications:   NewRepository(remote, MedicationCodec, log),
		Prescriptions: NewRepository(remote, PrescriptionCodec, log),
		Histories:     NewRepository(remote, MedicalHistoryCodec, log),
		Admins:        NewRepository(remote, AdministratorCodec, log),
	}
}
