package clinic

import (
	"time"

	"vet-clinic-admin/internal/platform/fields"
)

// Codec describe cómo un tipo normalizado se lee, valida y envía.
type Codec[T Identifiable] struct {
	Entity Entity
	// Key: campo visible que indica que una respuesta trae el registro completo.
	Key      fields.Field
	Decode   func(fields.Record) T
	Validate func(item T, op Op, now time.Time) error
	Encode   func(item T, dir *Directory) fields.Record
	WithID   func(item T, id int64) T
}

var (
	PetCodec = Codec[Pet]{
		Entity:   Pets,
		Key:      fields.Name,
		Decode:   DecodePet,
		Validate: func(p Pet, _ Op, _ time.Time) error { return ValidatePet(p) },
		Encode:   EncodePet,
		WithID:   func(p Pet, id int64) Pet { p.ID = id; return p },
	}

	OwnerCodec = Codec[Owner]{
		Entity:   Owners,
		Key:      fields.Name,
		Decode:   DecodeOwner,
		Validate: func(o Owner, _ Op, _ time.Time) error { return ValidateOwner(o) },
		Encode:   func(o Owner, _ *Directory) fields.Record { return EncodeOwner(o) },
		WithID:   func(o Owner, id int64) Owner { o.ID = id; return o },
	}

	VetCodec = Codec[Vet]{
		Entity:   Vets,
		Key:      fields.Name,
		Decode:   DecodeVet,
		Validate: func(v Vet, _ Op, _ time.Time) error { return ValidateVet(v) },
		Encode:   func(v Vet, _ *Directory) fields.Record { return EncodeVet(v) },
		WithID:   func(v Vet, id int64) Vet { v.ID = id; return v },
	}

	ConsultationCodec = Codec[Consultation]{
		Entity:   Consultations,
		Key:      fields.Diagnosis,
		Decode:   DecodeConsultation,
		Validate: func(c Consultation, _ Op, _ time.Time) error { return ValidateConsultation(c) },
		Encode:   EncodeConsultation,
		WithID:   func(c Consultation, id int64) Consultation { c.ID = id; return c },
	}

	MedicationCodec = Codec[Medication]{
		Entity:   Medications,
		Key:      fields.Name,
		Decode:   DecodeMedication,
		Validate: func(m Medication, _ Op, _ time.Time) error { return ValidateMedication(m) },
		Encode:   func(m Medication, _ *Directory) fields.Record { return EncodeMedication(m) },
		WithID:   func(m Medication, id int64) Medication { m.ID = id; return m },
	}

	PrescriptionCodec = Codec[Prescription]{
		Entity:   Prescriptions,
		Key:      fields.Dosage,
		Decode:   DecodePrescription,
		Validate: func(p Prescription, _ Op, _ time.Time) error { return ValidatePrescription(p) },
		Encode:   EncodePrescription,
		WithID:   func(p Prescription, id int64) Prescription { p.ID = id; return p },
	}

	MedicalHistoryCodec = Codec[MedicalHistory]{
		Entity:   Histories,
		Key:      fields.Description,
		Decode:   DecodeMedicalHistory,
		Validate: func(h MedicalHistory, _ Op, now time.Time) error { return ValidateMedicalHistory(h, now) },
		Encode:   EncodeMedicalHistory,
		WithID:   func(h MedicalHistory, id int64) MedicalHistory { h.ID = id; return h },
	}

	AdministratorCodec = Codec[Administrator]{
		Entity:   Admins,
		Key:      fields.Email,
		Decode:   DecodeAdministrator,
		Validate: func(a Administrator, op Op, _ time.Time) error { return ValidateAdministrator(a, op) },
		Encode:   func(a Administrator, _ *Directory) fields.Record { return EncodeAdministrator(a) },
		WithID:   func(a Administrator, id int64) Administrator { a.ID = id; return a },
	}
)
