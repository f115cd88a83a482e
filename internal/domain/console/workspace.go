// Package console junta repositorios, caché de imágenes, vistas y
// coordinadores en un workspace con una vista por entidad.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/domain/images"
	"vet-clinic-admin/internal/domain/mutations"
	"vet-clinic-admin/internal/domain/views"
	"vet-clinic-admin/internal/platform/fields"
	"vet-clinic-admin/internal/platform/logger"
	"vet-clinic-admin/internal/platform/report"
)

// petImage: campo opcional con un data URI al crear o editar una mascota.
const petImage fields.Field = "imagen"

var (
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrImageNotStored: el registro sí se guardó en el servidor, la imagen local no.
	ErrImageNotStored = errors.New("pet image not stored")
)

type Workspace struct {
	images   *images.Cache
	builder  *views.Builder
	exporter *report.Exporter
	log      logger.Logger

	pets          *binding[clinic.Pet]
	owners        *binding[clinic.Owner]
	vets          *binding[clinic.Vet]
	consultations *binding[clinic.Consultation]
	medications   *binding[clinic.Medication]
	prescriptions *binding[clinic.Prescription]
	histories     *binding[clinic.MedicalHistory]
	admins        *binding[clinic.Administrator]

	collections map[clinic.Entity]collection
	trackers    map[clinic.Entity]*views.Tracker
}

type Options struct {
	Repos    *clinic.Repositories
	Images   *images.Cache
	Builder  *views.Builder
	Exporter *report.Exporter
	Strategy mutations.Strategy
	Log      logger.Logger
}

func NewWorkspace(opts Options) *Workspace {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Builder == nil {
		opts.Builder = views.NewBuilder(nil)
	}
	if opts.Exporter == nil {
		opts.Exporter = report.NewExporter("vetadmin")
	}

	w := &Workspace{
		images:   opts.Images,
		builder:  opts.Builder,
		exporter: opts.Exporter,
		log:      opts.Log,
		trackers: make(map[clinic.Entity]*views.Tracker, len(clinic.All)),
	}

	r := opts.Repos
	w.pets = newBinding(r.Pets, clinic.PetCodec, opts.Strategy, w)
	w.owners = newBinding(r.Owners, clinic.OwnerCodec, opts.Strategy, w)
	w.vets = newBinding(r.Vets, clinic.VetCodec, opts.Strategy, w)
	w.consultations = newBinding(r.Consultations, clinic.ConsultationCodec, opts.Strategy, w)
	w.medications = newBinding(r.Medications, clinic.MedicationCodec, opts.Strategy, w)
	w.prescriptions = newBinding(r.Prescriptions, clinic.PrescriptionCodec, opts.Strategy, w)
	w.histories = newBinding(r.Histories, clinic.MedicalHistoryCodec, opts.Strategy, w)
	w.admins = newBinding(r.Admins, clinic.AdministratorCodec, opts.Strategy, w)

	// la contraseña no se lee del servidor pero sí del formulario
	w.admins.input = func(rec fields.Record) clinic.Administrator {
		a := clinic.DecodeAdministrator(rec)
		a.Password = fields.String(rec, fields.Password)
		return a
	}

	w.collections = map[clinic.Entity]collection{
		clinic.Pets:          w.pets,
		clinic.Owners:        w.owners,
		clinic.Vets:          w.vets,
		clinic.Consultations: w.consultations,
		clinic.Medications:   w.medications,
		clinic.Prescriptions: w.prescriptions,
		clinic.Histories:     w.histories,
		clinic.Admins:        w.admins,
	}
	for _, e := range clinic.All {
		w.trackers[e] = views.NewTracker(e)
	}
	return w
}

// Mount vuelve a pedir todas las colecciones de la vista, en paralelo.
// La vista queda Ready solo si todas llegaron; si alguna falla queda Failed.
func (w *Workspace) Mount(ctx context.Context, e clinic.Entity) (views.Status, error) {
	deps, ok := views.Dependencies[e]
	if !ok {
		return views.Status{}, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}
	tracker := w.trackers[e]
	mountID := tracker.Begin()
	log := w.log.With(map[string]any{"entity": string(e), "mount_id": mountID})

	tasks := make([]func(context.Context) error, 0, len(deps))
	for _, dep := range deps {
		tasks = append(tasks, w.collections[dep].Reload)
	}
	err := views.Load(ctx, tasks...)

	if !tracker.Settle(mountID, err) {
		log.Debug("stale mount discarded", nil)
	}
	if err != nil {
		log.Warn("mount failed", map[string]any{"err": err})
		return tracker.Status(), err
	}
	log.Debug("mounted", map[string]any{"rows": w.collections[e].Len()})
	return tracker.Status(), nil
}

func (w *Workspace) Status(e clinic.Entity) (views.Status, error) {
	t, ok := w.trackers[e]
	if !ok {
		return views.Status{}, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}
	return t.Status(), nil
}

// Rows devuelve las filas con el estado en memoria (incluye cambios optimistas).
func (w *Workspace) Rows(ctx context.Context, e clinic.Entity) ([]views.Row, error) {
	switch e {
	case clinic.Pets:
		return w.petRows(ctx, w.pets.items())
	case clinic.Owners:
		return asRows(w.builder.Owners(w.owners.items())), nil
	case clinic.Vets:
		return asRows(w.builder.Vets(w.vets.items())), nil
	case clinic.Consultations:
		return w.consultationRows(w.consultations.items()), nil
	case clinic.Medications:
		return asRows(w.builder.Medications(w.medications.items())), nil
	case clinic.Prescriptions:
		return w.prescriptionRows(w.prescriptions.items()), nil
	case clinic.Histories:
		return w.historyRows(w.histories.items()), nil
	case clinic.Admins:
		return asRows(w.builder.Admins(w.admins.items())), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
}

// Row busca un registro: primero en la lista cargada, si no en el servidor.
// Las colecciones que cruza la vista se cargan antes si nunca se cargaron.
func (w *Workspace) Row(ctx context.Context, e clinic.Entity, id int64) (views.Row, error) {
	deps, ok := views.Dependencies[e]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}
	if err := w.ensureLoaded(ctx, deps[1:]); err != nil {
		return nil, err
	}

	var (
		rows []views.Row
		err  error
	)
	switch e {
	case clinic.Pets:
		rows, err = one(ctx, w.pets, id, func(p clinic.Pet) ([]views.Row, error) {
			return w.petRows(ctx, []clinic.Pet{p})
		})
	case clinic.Owners:
		rows, err = one(ctx, w.owners, id, func(o clinic.Owner) ([]views.Row, error) {
			return asRows(w.builder.Owners([]clinic.Owner{o})), nil
		})
	case clinic.Vets:
		rows, err = one(ctx, w.vets, id, func(v clinic.Vet) ([]views.Row, error) {
			return asRows(w.builder.Vets([]clinic.Vet{v})), nil
		})
	case clinic.Consultations:
		rows, err = one(ctx, w.consultations, id, func(c clinic.Consultation) ([]views.Row, error) {
			return w.consultationRows([]clinic.Consultation{c}), nil
		})
	case clinic.Medications:
		rows, err = one(ctx, w.medications, id, func(m clinic.Medication) ([]views.Row, error) {
			return asRows(w.builder.Medications([]clinic.Medication{m})), nil
		})
	case clinic.Prescriptions:
		rows, err = one(ctx, w.prescriptions, id, func(p clinic.Prescription) ([]views.Row, error) {
			return w.prescriptionRows([]clinic.Prescription{p}), nil
		})
	case clinic.Histories:
		rows, err = one(ctx, w.histories, id, func(h clinic.MedicalHistory) ([]views.Row, error) {
			return w.historyRows([]clinic.MedicalHistory{h}), nil
		})
	case clinic.Admins:
		rows, err = one(ctx, w.admins, id, func(a clinic.Administrator) ([]views.Row, error) {
			return asRows(w.builder.Admins([]clinic.Administrator{a})), nil
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

// Create normaliza el JSON (cualquier casing), valida y envía. Devuelve el id
// asignado; 0 si el servidor no lo informó (la lista ya se recargó).
// Con ErrImageNotStored el registro quedó creado pero sin imagen local.
func (w *Workspace) Create(ctx context.Context, e clinic.Entity, raw []byte) (int64, error) {
	d, err := w.prepare(e, raw)
	if err != nil {
		return 0, err
	}
	id, err := d.coll.create(ctx, d.rec, w.directory())
	if err != nil {
		return 0, err
	}
	if d.image != nil {
		return id, w.storeImage(ctx, id, d.image)
	}
	return id, nil
}

func (w *Workspace) Update(ctx context.Context, e clinic.Entity, id int64, raw []byte) error {
	d, err := w.prepare(e, raw)
	if err != nil {
		return err
	}
	if err := d.coll.update(ctx, id, d.rec, w.directory()); err != nil {
		return err
	}
	if d.image != nil {
		return w.storeImage(ctx, id, d.image)
	}
	return nil
}

// Delete borra en el servidor y, si es una mascota, también su imagen local.
func (w *Workspace) Delete(ctx context.Context, e clinic.Entity, id int64) (string, error) {
	c, ok := w.collections[e]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}
	msg, err := c.remove(ctx, id)
	if err != nil {
		return "", err
	}
	if e == clinic.Pets && w.images != nil {
		if err := w.images.Remove(ctx, id); err != nil {
			w.log.Warn("pet image not removed", map[string]any{"id": id, "err": err})
		}
	}
	return msg, nil
}

// ExportList escribe el PDF de la vista con las filas en memoria.
func (w *Workspace) ExportList(ctx context.Context, out io.Writer, e clinic.Entity) (int, error) {
	rows, err := w.Rows(ctx, e)
	if err != nil {
		return 0, err
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Cells())
	}
	return w.exporter.ExportList(out, e.Plural(), Columns(e), cells)
}

func (w *Workspace) ExportSingle(ctx context.Context, out io.Writer, e clinic.Entity, id int64) (int, error) {
	row, err := w.Row(ctx, e, id)
	if err != nil {
		return 0, err
	}
	cols, cells := Columns(e), row.Cells()
	fs := make([]report.Field, 0, len(cols))
	for i, c := range cols {
		fs = append(fs, report.Field{Label: c.Header, Value: cells[i]})
	}
	return w.exporter.ExportSingle(out, fmt.Sprintf("%s #%d", e.Singular(), id), fs)
}

// Columns devuelve las columnas fijas de la vista.
func Columns(e clinic.Entity) []report.Column {
	switch e {
	case clinic.Pets:
		return views.PetColumns
	case clinic.Owners:
		return views.OwnerColumns
	case clinic.Vets:
		return views.VetColumns
	case clinic.Consultations:
		return views.ConsultationColumns
	case clinic.Medications:
		return views.MedicationColumns
	case clinic.Prescriptions:
		return views.PrescriptionColumns
	case clinic.Histories:
		return views.HistoryColumns
	case clinic.Admins:
		return views.AdminColumns
	}
	return nil
}

// draft es un cuerpo ya decodificado y listo para enviar.
type draft struct {
	coll  collection
	rec   fields.Record
	image []byte // solo mascotas que traen "imagen"
}

func (w *Workspace) prepare(e clinic.Entity, raw []byte) (draft, error) {
	c, ok := w.collections[e]
	if !ok {
		return draft{}, fmt.Errorf("%w: %q", ErrUnknownEntity, e)
	}
	rec, err := fields.DecodeRecord(raw)
	if err != nil {
		return draft{}, &clinic.ValidationError{
			Entity:   e,
			Problems: []clinic.Problem{{Field: "body", Message: "El cuerpo debe ser un objeto JSON"}},
		}
	}
	if rec == nil {
		rec = fields.Record{}
	}
	d := draft{coll: c, rec: rec}
	if e != clinic.Pets || noImage(rec) {
		return d, nil
	}
	// la imagen se valida igual que el resto: antes de tocar el servidor
	data, problem := w.checkImage(rec)
	if problem != "" {
		return draft{}, &clinic.ValidationError{
			Entity:   e,
			Problems: []clinic.Problem{{Field: string(petImage), Message: problem}},
		}
	}
	d.image = data
	return d, nil
}

// checkImage decodifica el data URI y aplica las reglas de la caché.
// Devuelve el mensaje para el usuario si no es válida.
func (w *Workspace) checkImage(rec fields.Record) ([]byte, string) {
	if w.images == nil {
		return nil, "No hay caché de imágenes configurada"
	}
	v, _ := fields.Lookup(rec, petImage)
	uri, _ := v.(string)
	_, data, err := images.DecodeDataURI(strings.TrimSpace(uri))
	if err != nil {
		return nil, "La imagen debe ser un data URI en base64"
	}
	if _, err := w.images.Check(data); err != nil {
		switch {
		case errors.Is(err, images.ErrEmpty):
			return nil, "La imagen está vacía"
		case errors.Is(err, images.ErrTooLarge):
			return nil, fmt.Sprintf("La imagen supera el máximo de %d bytes", w.images.MaxBytes())
		default:
			return nil, "La imagen debe ser PNG, JPEG, GIF o WebP"
		}
	}
	return data, ""
}

// noImage: sin "imagen", null o texto en blanco. Cualquier otro valor se valida.
func noImage(rec fields.Record) bool {
	v, ok := fields.Lookup(rec, petImage)
	if !ok {
		return true
	}
	s, isText := v.(string)
	return isText && strings.TrimSpace(s) == ""
}

func (w *Workspace) storeImage(ctx context.Context, petID int64, data []byte) error {
	if petID <= 0 {
		w.log.Warn("pet image not stored: server returned no id", nil)
		return fmt.Errorf("%w: el servidor no devolvió el id de la mascota", ErrImageNotStored)
	}
	if _, err := w.images.Set(ctx, petID, data); err != nil {
		w.log.Warn("pet image not stored", map[string]any{"id": petID, "err": err})
		return fmt.Errorf("%w: %v", ErrImageNotStored, err)
	}
	return nil
}

// ensureLoaded recarga en paralelo las colecciones que nunca se cargaron.
func (w *Workspace) ensureLoaded(ctx context.Context, entities []clinic.Entity) error {
	var tasks []func(context.Context) error
	for _, e := range entities {
		if c := w.collections[e]; !c.Loaded() {
			tasks = append(tasks, c.Reload)
		}
	}
	if len(tasks) == 0 {
		return nil
	}
	return views.Load(ctx, tasks...)
}

func (w *Workspace) petRows(ctx context.Context, pets []clinic.Pet) ([]views.Row, error) {
	if w.images != nil {
		merged, err := w.images.MergeInto(ctx, pets)
		if err != nil {
			return nil, err
		}
		pets = merged
	}
	return asRows(w.builder.Pets(pets, w.owners.items())), nil
}

func (w *Workspace) consultationRows(cs []clinic.Consultation) []views.Row {
	return asRows(w.builder.Consultations(cs, w.vets.items(), w.pets.items(), w.owners.items()))
}

func (w *Workspace) prescriptionRows(ps []clinic.Prescription) []views.Row {
	return asRows(w.builder.Prescriptions(ps, w.consultations.items(), w.medications.items(), w.pets.items()))
}

func (w *Workspace) historyRows(hs []clinic.MedicalHistory) []views.Row {
	return asRows(w.builder.Histories(hs, w.pets.items(), w.owners.items()))
}

func one[T clinic.Identifiable](ctx context.Context, b *binding[T], id int64, build func(T) ([]views.Row, error)) ([]views.Row, error) {
	item, err := b.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return build(item)
}

func asRows[R views.Row](rs []R) []views.Row {
	out := make([]views.Row, 0, len(rs))
	for _, r := range rs {
		out = append(out, r)
	}
	return out
}
