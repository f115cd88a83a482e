package clinic

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinPrice = 0.01
	MaxPrice = 10000
	MaxAge   = 50
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Op distingue alta de modificación: algunas reglas cambian (p.ej. contraseña).
type Op int

const (
	OpCreate Op = iota
	OpUpdate
)

func (o Op) String() string {
	if o == OpUpdate {
		return "update"
	}
	return "create"
}

func ValidatePet(p Pet) error {
	v := problems{entity: Pets}
	textLen(&v, "nombre", p.Name, 2, 50, true)
	textLen(&v, "especie", p.Species, 3, 50, true)
	textLen(&v, "raza", p.Breed, 3, 50, true)
	if p.Age < 0 || p.Age > MaxAge {
		v.add("edad", fmt.Sprintf("La edad debe estar entre 0 y %d", MaxAge))
	}
	if !p.Gender.Valid() {
		v.add("genero", "El género debe ser Macho o Hembra")
	}
	if p.OwnerID <= 0 {
		v.add("idPropietario", "Debe seleccionar un propietario")
	}
	return v.err()
}

func ValidateOwner(o Owner) error {
	v := problems{entity: Owners}
	textLen(&v, "nombre", o.Name, 2, 50, true)
	textLen(&v, "apellidos", o.Surnames, 3, 100, true)
	textLen(&v, "teléfono", o.Phone, 8, 20, false)
	textLen(&v, "dirección", o.Address, 10, 200, true)
	return v.err()
}

func ValidateVet(x Vet) error {
	v := problems{entity: Vets}
	required(&v, "nombre", x.Name)
	required(&v, "apellidos", x.Surnames)
	required(&v, "especialidad", x.Specialty)
	if x.ContractDate.IsZero() {
		v.add("fechaDeContrato", "La fecha de contrato es obligatoria")
	}
	return v.err()
}

func ValidateConsultation(c Consultation) error {
	v := problems{entity: Consultations}
	if c.Date.IsZero() {
		v.add("fecha", "La fecha es obligatoria")
	}
	if c.Hour.IsZero() {
		v.add("hora", "La hora es obligatoria")
	}
	if c.VetID <= 0 {
		v.add("idVeterinario", "Debe seleccionar tanto un veterinario como una mascota")
	}
	if c.PetID <= 0 {
		v.add("idMascota", "Debe seleccionar tanto un veterinario como una mascota")
	}
	required(&v, "diagnóstico", c.Diagnosis)
	required(&v, "tratamiento", c.Treatment)
	return v.err()
}

func ValidateMedication(m Medication) error {
	v := problems{entity: Medications}
	textLen(&v, "nombre", m.Name, 3, 100, true)
	textLen(&v, "descripcion", m.Description, 10, 500, true)
	if m.Price < MinPrice || m.Price > MaxPrice {
		v.add("precio", fmt.Sprintf("El precio debe estar entre %.2f y %.0f", MinPrice, float64(MaxPrice)))
	}
	return v.err()
}

func ValidatePrescription(p Prescription) error {
	v := problems{entity: Prescriptions}
	if p.ConsultationID <= 0 {
		v.add("idConsulta", "Debe seleccionar tanto una consulta como un medicamento")
	}
	if p.MedicationID <= 0 {
		v.add("idMedicamento", "Debe seleccionar tanto una consulta como un medicamento")
	}
	required(&v, "dosis", p.Dosage)
	required(&v, "indicaciones", p.Instructions)
	if p.PrescribedAt.IsZero() {
		v.add("fechaPrescripcion", "La fecha de prescripción es obligatoria")
	}
	return v.err()
}

// ValidateMedicalHistory compara la fecha por día calendario contra now.
func ValidateMedicalHistory(h MedicalHistory, now time.Time) error {
	v := problems{entity: Histories}
	if h.PetID <= 0 {
		v.add("idMascota", "Debe seleccionar una mascota")
	}
	switch {
	case h.Date.IsZero():
		v.add("fecha", "La fecha es obligatoria")
	case dayOf(h.Date).After(dayOf(now)):
		v.add("fecha", "La fecha no puede ser futura")
	}
	n := utf8.RuneCountInString(strings.TrimSpace(h.Description))
	switch {
	case n < 10:
		v.add("descripcion", "La descripción debe tener al menos 10 caracteres")
	case n > 500:
		v.add("descripcion", "La descripción no puede superar 500 caracteres")
	}
	return v.err()
}

// ValidateAdministrator: la contraseña es obligatoria solo en el alta.
func ValidateAdministrator(a Administrator, op Op) error {
	v := problems{entity: Admins}
	textLen(&v, "nombre", a.Name, 3, 100, true)
	switch {
	case strings.TrimSpace(a.Email) == "":
		v.add("correo", "El correo es obligatorio")
	case !emailRe.MatchString(a.Email):
		v.add("correo", "Por favor ingrese un correo electrónico válido")
	}
	if op == OpCreate || a.Password != "" {
		if utf8.RuneCountInString(a.Password) < 6 {
			v.add("contraseña", "La contraseña debe tener al menos 6 caracteres")
		}
	}
	if utf8.RuneCountInString(a.Phone) > 15 {
		v.add("telefono", "El teléfono no puede superar 15 caracteres")
	}
	return v.err()
}

func required(v *problems, field, s string) {
	if strings.TrimSpace(s) == "" {
		v.add(field, fmt.Sprintf("El campo %s es obligatorio", field))
	}
}

// textLen valida longitud en caracteres (no bytes). Vacío y opcional => ok.
func textLen(v *problems, field, s string, min, max int, mandatory bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		if mandatory {
			v.add(field, fmt.Sprintf("El campo %s es obligatorio", field))
		}
		return
	}
	n := utf8.RuneCountInString(s)
	if n < min || n > max {
		v.add(field, fmt.Sprintf("El campo %s debe tener entre %d y %d caracteres", field, min, max))
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
