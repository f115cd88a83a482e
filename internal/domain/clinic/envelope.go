package clinic

import (
	"sync"

	"vet-clinic-admin/internal/platform/fields"
)

const (
	wireDate     = "2006-01-02"
	wireDateTime = "2006-01-02T15:04:05"
	wireUTC      = "2006-01-02T15:04:05Z"

	// relleno que exige el backend cuando no se conoce la entidad referenciada
	placeholderText = "string"
)

// Directory indexa por id las colecciones cargadas por una vista.
// Solo se usa para armar snapshots al enviar; nunca como fuente de verdad.
type Directory struct {
	mu            sync.RWMutex
	owners        map[int64]Owner
	pets          map[int64]Pet
	vets          map[int64]Vet
	consultations map[int64]Consultation
	medications   map[int64]Medication
}

func NewDirectory() *Directory {
	return &Directory{
		owners:        map[int64]Owner{},
		pets:          map[int64]Pet{},
		vets:          map[int64]Vet{},
		consultations: map[int64]Consultation{},
		medications:   map[int64]Medication{},
	}
}

func (d *Directory) AddOwners(items ...Owner) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		d.owners[it.ID] = it
	}
}

func (d *Directory) AddPets(items ...Pet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		d.pets[it.ID] = it
	}
}

func (d *Directory) AddVets(items ...Vet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		d.vets[it.ID] = it
	}
}

func (d *Directory) AddConsultations(items ...Consultation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		d.consultations[it.ID] = it
	}
}

func (d *Directory) AddMedications(items ...Medication) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		d.medications[it.ID] = it
	}
}

func (d *Directory) Owner(id int64) (Owner, bool) {
	if d == nil {
		return Owner{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.owners[id]
	return v, ok
}

func (d *Directory) Pet(id int64) (Pet, bool) {
	if d == nil {
		return Pet{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.pets[id]
	return v, ok
}

func (d *Directory) Vet(id int64) (Vet, bool) {
	if d == nil {
		return Vet{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.vets[id]
	return v, ok
}

func (d *Directory) Consultation(id int64) (Consultation, bool) {
	if d == nil {
		return Consultation{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.consultations[id]
	return v, ok
}

func (d *Directory) Medication(id int64) (Medication, bool) {
	if d == nil {
		return Medication{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.medications[id]
	return v, ok
}

// ---- envelopes (payload completo para POST/PUT) ----

func EncodeOwner(o Owner) fields.Record {
	return fields.Record{
		"idPropietario": o.ID,
		"nombre":        o.Name,
		"apellidos":     o.Surnames,
		"teléfono":      o.Phone,
		"dirección":     o.Address,
	}
}

func EncodeVet(v Vet) fields.Record {
	return fields.Record{
		"idVeterinario":   v.ID,
		"nombre":          v.Name,
		"apellidos":       v.Surnames,
		"especialidad":    v.Specialty,
		"fechaDeContrato": v.ContractDate.Format(wireDate),
	}
}

func EncodePet(p Pet, dir *Directory) fields.Record {
	return fields.Record{
		"idMascota":     p.ID,
		"nombre":        p.Name,
		"especie":       p.Species,
		"raza":          p.Breed,
		"edad":          p.Age,
		"genero":        string(p.Gender),
		"idPropietario": p.OwnerID,
		"propietario":   ownerSnapshot(p.OwnerID, dir),
	}
}

func EncodeConsultation(c Consultation, dir *Directory) fields.Record {
	return fields.Record{
		"idConsulta":    c.ID,
		"fecha":         c.Date.Format(wireDate),
		"hora":          c.Hour.Format(wireDateTime),
		"idVeterinario": c.VetID,
		"veterinario":   vetSnapshot(c.VetID, dir),
		"idMascota":     c.PetID,
		"mascota":       petSnapshot(c.PetID, dir),
		"diagnóstico":   c.Diagnosis,
		"tratamiento":   c.Treatment,
	}
}

func EncodeMedication(m Medication) fields.Record {
	return fields.Record{
		"idMedicamento": m.ID,
		"nombre":        m.Name,
		"descripcion":   m.Description,
		"precio":        m.Price,
	}
}

func EncodePrescription(p Prescription, dir *Directory) fields.Record {
	return fields.Record{
		"idReceta":          p.ID,
		"idConsulta":        p.ConsultationID,
		"consulta":          consultationSnapshot(p.ConsultationID, dir),
		"idMedicamento":     p.MedicationID,
		"medicamento":       medicationSnapshot(p.MedicationID, dir),
		"dosis":             p.Dosage,
		"indicaciones":      p.Instructions,
		"fechaPrescripcion": p.PrescribedAt.Format(wireDate),
	}
}

func EncodeMedicalHistory(h MedicalHistory, dir *Directory) fields.Record {
	return fields.Record{
		"idHistorial": h.ID,
		"idMascota":   h.PetID,
		"mascota":     petSnapshot(h.PetID, dir),
		"fecha":       h.Date.Format(wireDate),
		"descripcion": h.Description,
	}
}

// EncodeAdministrator omite la contraseña vacía (update sin cambio de clave)
// y fecha_registro mientras el servidor no la haya asignado.
func EncodeAdministrator(a Administrator) fields.Record {
	out := fields.Record{
		"idAdministrador": a.ID,
		"nombre":          a.Name,
		"correo":          a.Email,
		"estado":          a.Active,
	}
	if a.Phone != "" {
		out["telefono"] = a.Phone
	} else {
		out["telefono"] = nil
	}
	if a.Password != "" {
		out["contraseña"] = a.Password
	}
	if !a.RegisteredAt.IsZero() {
		out["fecha_registro"] = a.RegisteredAt.UTC().Format(wireUTC)
	}
	return out
}

// ---- snapshots ----

func ownerSnapshot(id int64, dir *Directory) fields.Record {
	if o, ok := dir.Owner(id); ok {
		return EncodeOwner(o)
	}
	return fields.Record{
		"idPropietario": 0,
		"nombre":        placeholderText,
		"apellidos":     placeholderText,
		"teléfono":      "stringst",
		"dirección":     "stringstri",
	}
}

func vetSnapshot(id int64, dir *Directory) fields.Record {
	if v, ok := dir.Vet(id); ok {
		return EncodeVet(v)
	}
	return fields.Record{
		"idVeterinario":   0,
		"nombre":          placeholderText,
		"apellidos":       placeholderText,
		"especialidad":    placeholderText,
		"fechaDeContrato": "2025-04-01",
	}
}

func petSnapshot(id int64, dir *Directory) fields.Record {
	if p, ok := dir.Pet(id); ok {
		return EncodePet(p, dir)
	}
	return fields.Record{
		"idMascota":     0,
		"nombre":        placeholderText,
		"especie":       placeholderText,
		"raza":          placeholderText,
		"edad":          50,
		"genero":        placeholderText,
		"idPropietario": 0,
		"propietario":   ownerSnapshot(0, nil),
	}
}

func consultationSnapshot(id int64, dir *Directory) fields.Record {
	if c, ok := dir.Consultation(id); ok {
		return EncodeConsultation(c, dir)
	}
	return fields.Record{
		"idConsulta":    0,
		"fecha":         "2025-04-01",
		"hora":          "2025-03-28T15:30:00",
		"idVeterinario": 0,
		"veterinario":   vetSnapshot(0, nil),
		"idMascota":     0,
		"mascota":       petSnapshot(0, nil),
		"diagnóstico":   "stringstri",
		"tratamiento":   "stringstri",
	}
}

func medicationSnapshot(id int64, dir *Directory) fields.Record {
	if m, ok := dir.Medication(id); ok {
		return EncodeMedication(m)
	}
	return fields.Record{
		"idMedicamento": 0,
		"nombre":        placeholderText,
		"descripcion":   "stringstri",
		"precio":        MaxPrice,
	}
}
