// Package fields resuelve campos lógicos sobre registros JSON crudos del backend.
//
// El backend expone el mismo campo con distintas grafías (nombre / Nombre,
// teléfono / Telefono, fecha_registro / FechaRegistro). Todo acceso a un registro
// crudo pasa por este paquete: una tabla explícita de alias por campo y funciones
// puras que nunca fallan, devuelven un fallback documentado.
package fields

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Record es un objeto JSON decodificado (idealmente con UseNumber).
type Record map[string]any

// Field es un nombre lógico de campo.
type Field string

const (
	PetID          Field = "petId"
	OwnerID        Field = "ownerId"
	VetID          Field = "vetId"
	ConsultationID Field = "consultationId"
	MedicationID   Field = "medicationId"
	PrescriptionID Field = "prescriptionId"
	HistoryID      Field = "historyId"
	AdminID        Field = "adminId"

	Name         Field = "name"
	Surnames     Field = "surnames"
	Phone        Field = "phone"
	Address      Field = "address"
	Species      Field = "species"
	Breed        Field = "breed"
	Age          Field = "age"
	Gender       Field = "gender"
	Specialty    Field = "specialty"
	ContractDate Field = "contractDate"
	Date         Field = "date"
	Hour         Field = "hour"
	Diagnosis    Field = "diagnosis"
	Treatment    Field = "treatment"
	Description  Field = "description"
	Price        Field = "price"
	Dosage       Field = "dosage"
	Instructions Field = "instructions"
	PrescribedAt Field = "prescribedAt"
	Email        Field = "email"
	Password     Field = "password"
	Active       Field = "active"
	RegisteredAt Field = "registeredAt"
	Message      Field = "message"
	Title        Field = "title"
	Errors       Field = "errors"

	// Snapshots embebidos.
	Owner        Field = "owner"
	Pet          Field = "pet"
	Vet          Field = "vet"
	Consultation Field = "consultation"
	Medication   Field = "medication"
)

// aliases: orden = camelCase, PascalCase, variantes con/sin acento, snake_case.
var aliases = map[Field][]string{
	PetID:          {"idMascota", "IdMascota"},
	OwnerID:        {"idPropietario", "IdPropietario"},
	VetID:          {"idVeterinario", "IdVeterinario"},
	ConsultationID: {"idConsulta", "IdConsulta"},
	MedicationID:   {"idMedicamento", "IdMedicamento"},
	PrescriptionID: {"idReceta", "IdReceta"},
	HistoryID:      {"idHistorial", "IdHistorial"},
	AdminID:        {"idAdministrador", "IdAdministrador"},

	Name:         {"nombre", "Nombre"},
	Surnames:     {"apellidos", "Apellidos"},
	Phone:        {"teléfono", "Teléfono", "telefono", "Telefono"},
	Address:      {"dirección", "Dirección", "direccion", "Direccion"},
	Species:      {"especie", "Especie"},
	Breed:        {"raza", "Raza"},
	Age:          {"edad", "Edad"},
	Gender:       {"genero", "Genero", "género", "Género"},
	Specialty:    {"especialidad", "Especialidad"},
	ContractDate: {"fechaDeContrato", "FechaDeContrato"},
	Date:         {"fecha", "Fecha"},
	Hour:         {"hora", "Hora"},
	Diagnosis:    {"diagnóstico", "Diagnóstico", "diagnostico", "Diagnostico"},
	Treatment:    {"tratamiento", "Tratamiento"},
	Description:  {"descripcion", "Descripcion", "descripción", "Descripción"},
	Price:        {"precio", "Precio"},
	Dosage:       {"dosis", "Dosis"},
	Instructions: {"indicaciones", "Indicaciones"},
	PrescribedAt: {"fechaPrescripcion", "FechaPrescripcion", "fechaPrescripción", "FechaPrescripción"},
	Email:        {"correo", "Correo"},
	Password:     {"contraseña", "Contraseña", "contrasena", "Contrasena"},
	Active:       {"estado", "Estado"},
	RegisteredAt: {"fechaRegistro", "FechaRegistro", "fecha_registro", "Fecha_registro"},
	Message:      {"mensaje", "Mensaje", "message", "Message"},
	Title:        {"title", "Title"},
	Errors:       {"errors", "Errors"},

	Owner:        {"propietario", "Propietario"},
	Pet:          {"mascota", "Mascota"},
	Vet:          {"veterinario", "Veterinario"},
	Consultation: {"consulta", "Consulta"},
	Medication:   {"medicamento", "Medicamento"},
}

// Aliases devuelve las claves candidatas de f en orden de resolución.
// Para campos no registrados usa el propio nombre y su forma Pascal.
func Aliases(f Field) []string {
	if a, ok := aliases[f]; ok {
		out := make([]string, len(a))
		copy(out, a)
		return out
	}
	name := string(f)
	if name == "" {
		return nil
	}
	pascal := upperFirst(name)
	if pascal == name {
		return []string{name}
	}
	return []string{name, pascal}
}

// Lookup devuelve el primer valor presente (clave existente y no null) entre los
// alias de cada tramo del path. Un objeto intermedio ausente equivale a "no está".
func Lookup(r Record, path ...Field) (any, bool) {
	if len(path) == 0 || r == nil {
		return nil, false
	}
	cur := r
	for i, f := range path {
		v, ok := lookupOne(cur, f)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := asRecord(v)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func lookupOne(r Record, f Field) (any, bool) {
	for _, key := range Aliases(f) {
		v, ok := r[key]
		if ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has indica si el campo existe bajo alguno de sus alias.
func Has(r Record, path ...Field) bool {
	_, ok := Lookup(r, path...)
	return ok
}

// String resuelve a texto. Fallback: "".
func String(r Record, path ...Field) string {
	v, ok := Lookup(r, path...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Int resuelve a entero (ids, edad). Fallback: 0.
func Int(r Record, path ...Field) int64 {
	v, ok := Lookup(r, path...)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return truncInt(f)
		}
	case float64:
		return truncInt(t)
	case int:
		return int64(t)
	case int64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncInt(f)
		}
	}
	return 0
}

// truncInt trunca hacia cero; fuera del rango de int64 (o NaN/Inf) => 0.
func truncInt(f float64) int64 {
	f = math.Trunc(f)
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// Float resuelve a decimal (precio). Fallback: 0.
func Float(r Record, path ...Field) float64 {
	v, ok := Lookup(r, path...)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return 0
}

// Bool resuelve banderas; acepta true/false, 0/1 y sus formas texto. Fallback: false.
func Bool(r Record, path ...Field) bool {
	v, ok := Lookup(r, path...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	return false
}

// layouts que devuelve el backend para fechas/horas.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time resuelve fechas ISO. Fallback: time.Time{} y false.
func Time(r Record, path ...Field) (time.Time, bool) {
	s := strings.TrimSpace(String(r, path...))
	if s == "" {
		return time.Time{}, false
	}
	return ParseTime(s)
}

// ParseTime prueba los formatos conocidos del backend.
func ParseTime(s string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Nested devuelve el objeto embebido bajo f, o nil.
func Nested(r Record, path ...Field) Record {
	v, ok := Lookup(r, path...)
	if !ok {
		return nil
	}
	out, _ := asRecord(v)
	return out
}

func asRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]any:
		return Record(t), true
	default:
		return nil, false
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
