package clinic

import (
	"strings"

	"vet-clinic-admin/internal/platform/fields"
)

// Entity identifica un tipo de registro del backend por su slug de consola.
type Entity string

const (
	Pets          Entity = "pets"
	Owners        Entity = "owners"
	Vets          Entity = "vets"
	Consultations Entity = "consultations"
	Medications   Entity = "medications"
	Prescriptions Entity = "prescriptions"
	Histories     Entity = "histories"
	Admins        Entity = "admins"
)

var All = []Entity{Pets, Owners, Vets, Consultations, Medications, Prescriptions, Histories, Admins}

type entityInfo struct {
	resource string
	idField  fields.Field
	plural   string
	singular string
}

var entities = map[Entity]entityInfo{
	Pets:          {"Mascota", fields.PetID, "Mascotas", "Mascota"},
	Owners:        {"Propietario", fields.OwnerID, "Propietarios", "Propietario"},
	Vets:          {"Veterinario", fields.VetID, "Veterinarios", "Veterinario"},
	Consultations: {"Consulta", fields.ConsultationID, "Consultas", "Consulta"},
	Medications:   {"Medicamento", fields.MedicationID, "Medicamentos", "Medicamento"},
	Prescriptions: {"Receta", fields.PrescriptionID, "Recetas", "Receta"},
	Histories:     {"HistorialMedico", fields.HistoryID, "Historial médico", "Historial"},
	Admins:        {"Administrador", fields.AdminID, "Administradores", "Administrador"},
}

// ParseEntity acepta el slug de consola o el nombre del recurso remoto.
func ParseEntity(s string) (Entity, bool) {
	s = strings.TrimSpace(s)
	if _, ok := entities[Entity(strings.ToLower(s))]; ok {
		return Entity(strings.ToLower(s)), true
	}
	for e, info := range entities {
		if strings.EqualFold(info.resource, s) {
			return e, true
		}
	}
	return "", false
}

// Resource es el nombre del recurso en la API remota (/api/<Resource>).
func (e Entity) Resource() string { return entities[e].resource }

func (e Entity) IDField() fields.Field { return entities[e].idField }

func (e Entity) Plural() string { return entities[e].plural }

func (e Entity) Singular() string { return entities[e].singular }

func (e Entity) Valid() bool {
	_, ok := entities[e]
	return ok
}
