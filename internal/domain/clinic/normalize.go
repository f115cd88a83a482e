package clinic

import (
	"strings"
	"time"

	"vet-clinic-admin/internal/platform/fields"
)

// Decode* arman registros normalizados desde JSON crudo en cualquier casing.
// Los snapshots embebidos se ignoran salvo para recuperar una FK ausente.

func DecodePet(r fields.Record) Pet {
	ownerID := fields.Int(r, fields.OwnerID)
	if ownerID == 0 {
		ownerID = fields.Int(r, fields.Owner, fields.OwnerID)
	}
	return Pet{
		ID:      fields.Int(r, fields.PetID),
		Name:    fields.String(r, fields.Name),
		Species: fields.String(r, fields.Species),
		Breed:   fields.String(r, fields.Breed),
		Age:     int(fields.Int(r, fields.Age)),
		Gender:  ParseGender(fields.String(r, fields.Gender)),
		OwnerID: ownerID,
	}
}

func DecodeOwner(r fields.Record) Owner {
	return Owner{
		ID:       fields.Int(r, fields.OwnerID),
		Name:     fields.String(r, fields.Name),
		Surnames: fields.String(r, fields.Surnames),
		Phone:    fields.String(r, fields.Phone),
		Address:  fields.String(r, fields.Address),
	}
}

func DecodeVet(r fields.Record) Vet {
	cd, _ := fields.Time(r, fields.ContractDate)
	return Vet{
		ID:           fields.Int(r, fields.VetID),
		Name:         fields.String(r, fields.Name),
		Surnames:     fields.String(r, fields.Surnames),
		Specialty:    fields.String(r, fields.Specialty),
		ContractDate: cd,
	}
}

func DecodeConsultation(r fields.Record) Consultation {
	date, _ := fields.Time(r, fields.Date)
	vetID := fields.Int(r, fields.VetID)
	if vetID == 0 {
		vetID = fields.Int(r, fields.Vet, fields.VetID)
	}
	petID := fields.Int(r, fields.PetID)
	if petID == 0 {
		petID = fields.Int(r, fields.Pet, fields.PetID)
	}
	return Consultation{
		ID:        fields.Int(r, fields.ConsultationID),
		Date:      date,
		Hour:      parseHour(fields.String(r, fields.Hour), date),
		VetID:     vetID,
		PetID:     petID,
		Diagnosis: fields.String(r, fields.Diagnosis),
		Treatment: fields.String(r, fields.Treatment),
	}
}

func DecodeMedication(r fields.Record) Medication {
	return Medication{
		ID:          fields.Int(r, fields.MedicationID),
		Name:        fields.String(r, fields.Name),
		Description: fields.String(r, fields.Description),
		Price:       fields.Float(r, fields.Price),
	}
}

func DecodePrescription(r fields.Record) Prescription {
	at, _ := fields.Time(r, fields.PrescribedAt)
	consID := fields.Int(r, fields.ConsultationID)
	if consID == 0 {
		consID = fields.Int(r, fields.Consultation, fields.ConsultationID)
	}
	medID := fields.Int(r, fields.MedicationID)
	if medID == 0 {
		medID = fields.Int(r, fields.Medication, fields.MedicationID)
	}
	return Prescription{
		ID:             fields.Int(r, fields.PrescriptionID),
		ConsultationID: consID,
		MedicationID:   medID,
		Dosage:         fields.String(r, fields.Dosage),
		Instructions:   fields.String(r, fields.Instructions),
		PrescribedAt:   at,
	}
}

func DecodeMedicalHistory(r fields.Record) MedicalHistory {
	date, _ := fields.Time(r, fields.Date)
	petID := fields.Int(r, fields.PetID)
	if petID == 0 {
		petID = fields.Int(r, fields.Pet, fields.PetID)
	}
	return MedicalHistory{
		ID:          fields.Int(r, fields.HistoryID),
		PetID:       petID,
		Date:        date,
		Description: fields.String(r, fields.Description),
	}
}

func DecodeAdministrator(r fields.Record) Administrator {
	reg, _ := fields.Time(r, fields.RegisteredAt)
	return Administrator{
		ID:           fields.Int(r, fields.AdminID),
		Name:         fields.String(r, fields.Name),
		Email:        fields.String(r, fields.Email),
		Phone:        fields.String(r, fields.Phone),
		Active:       fields.Bool(r, fields.Active),
		RegisteredAt: reg,
	}
}

// ParseGender acepta "macho"/"HEMBRA" etc.; otro valor se conserva tal cual
// para que la validación lo rechace.
func ParseGender(s string) Gender {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(GenderMale)):
		return GenderMale
	case strings.EqualFold(s, string(GenderFemale)):
		return GenderFemale
	}
	return Gender(s)
}

// parseHour: "hora" llega como instante ISO o como "HH:MM[:SS]" del formulario,
// que se combina con la fecha de la consulta.
func parseHour(s string, date time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, ok := fields.ParseTime(s); ok {
		return t
	}
	if date.IsZero() {
		t, _ := clockTime(s)
		return t
	}
	t, _ := CombineDateTime(date.Format(wireDate), s)
	return t
}

// CombineDateTime arma el instante de la consulta a partir de "YYYY-MM-DD" y "HH:MM[:SS]".
func CombineDateTime(date, hour string) (time.Time, bool) {
	date, hour = strings.TrimSpace(date), strings.TrimSpace(hour)
	if date == "" {
		return time.Time{}, false
	}
	day, ok := fields.ParseTime(date)
	if !ok {
		return time.Time{}, false
	}
	if hour == "" {
		return day, true
	}
	clock, ok := clockTime(hour)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location()), true
}

func clockTime(s string) (time.Time, bool) {
	for _, l := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
