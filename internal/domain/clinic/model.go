package clinic

import "time"

// Gender de la mascota; los valores son los que acepta el backend.
type Gender string

const (
	GenderMale   Gender = "Macho"
	GenderFemale Gender = "Hembra"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Pet es la mascota normalizada. No guarda el snapshot del propietario:
// se reconstruye al enviar. Image vive solo en la caché local.
type Pet struct {
	ID      int64
	Name    string
	Species string
	Breed   string
	Age     int
	Gender  Gender
	OwnerID int64

	Image string // data URI, nunca se envía al servidor
}

type Owner struct {
	ID       int64
	Name     string
	Surnames string
	Phone    string // opcional
	Address  string
}

type Vet struct {
	ID           int64
	Name         string
	Surnames     string
	Specialty    string
	ContractDate time.Time
}

// Consultation guarda fecha y hora por separado como el backend;
// Hour es el instante completo (fecha+hora) que se envía en "hora".
type Consultation struct {
	ID        int64
	Date      time.Time
	Hour      time.Time
	VetID     int64
	PetID     int64
	Diagnosis string
	Treatment string
}

type Medication struct {
	ID          int64
	Name        string
	Description string
	Price       float64
}

type Prescription struct {
	ID             int64
	ConsultationID int64
	MedicationID   int64
	Dosage         string
	Instructions   string
	PrescribedAt   time.Time
}

type MedicalHistory struct {
	ID          int64
	PetID       int64
	Date        time.Time
	Description string
}

// Administrator: Password es solo de escritura; nunca se llena al leer.
type Administrator struct {
	ID           int64
	Name         string
	Email        string
	Password     string
	Phone        string
	Active       bool
	RegisteredAt time.Time
}

func (p Pet) RecordID() int64            { return p.ID }
func (o Owner) RecordID() int64          { return o.ID }
func (v Vet) RecordID() int64            { return v.ID }
func (c Consultation) RecordID() int64   { return c.ID }
func (m Medication) RecordID() int64     { return m.ID }
func (p Prescription) RecordID() int64   { return p.ID }
func (h MedicalHistory) RecordID() int64 { return h.ID }
func (a Administrator) RecordID() int64  { return a.ID }

// Identifiable es lo mínimo que necesitan listas y repositorios.
type Identifiable interface {
	RecordID() int64
}

func (o Owner) FullName() string { return joinName(o.Name, o.Surnames) }
func (v Vet) FullName() string   { return joinName(v.Name, v.Surnames) }

func joinName(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
