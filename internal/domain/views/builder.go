// Package views arma las filas de cada listado cruzando colecciones ya
// normalizadas. Nunca modifica las colecciones que recibe.
package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/platform/format"
)

type Builder struct {
	fmt *format.Formatter
}

func NewBuilder(f *format.Formatter) *Builder {
	if f == nil {
		f = format.New(format.DefaultLocale, format.DefaultCurrencySymbol)
	}
	return &Builder{fmt: f}
}

func (b *Builder) Pets(pets []clinic.Pet, owners []clinic.Owner) []PetRow {
	byOwner := index(owners)
	out := make([]PetRow, 0, len(pets))
	for _, p := range pets {
		row := PetRow{
			ID:       p.ID,
			Name:     p.Name,
			Species:  p.Species,
			Breed:    p.Breed,
			Age:      b.fmt.Number(int64(p.Age)),
			Gender:   string(p.Gender),
			Owner:    Unspecified,
			OwnerID:  p.OwnerID,
			Image:    p.Image,
			HasImage: p.Image != "",
		}
		if o, ok := byOwner[p.OwnerID]; ok {
			row.Owner = orDefault(o.FullName(), Unspecified)
		}
		out = append(out, row)
	}
	return out
}

func (b *Builder) Owners(owners []clinic.Owner) []OwnerRow {
	out := make([]OwnerRow, 0, len(owners))
	for _, o := range owners {
		out = append(out, OwnerRow{
			ID:       o.ID,
			Name:     o.Name,
			Surnames: o.Surnames,
			Phone:    orDefault(o.Phone, Unspecified),
			Address:  o.Address,
		})
	}
	return out
}

func (b *Builder) Vets(vets []clinic.Vet) []VetRow {
	out := make([]VetRow, 0, len(vets))
	for _, v := range vets {
		out = append(out, VetRow{
			ID:           v.ID,
			Name:         v.Name,
			Surnames:     v.Surnames,
			Specialty:    v.Specialty,
			ContractDate: b.date(v.ContractDate),
		})
	}
	return out
}

func (b *Builder) Consultations(cs []clinic.Consultation, vets []clinic.Vet, pets []clinic.Pet, owners []clinic.Owner) []ConsultationRow {
	byVet, byPet, byOwner := index(vets), index(pets), index(owners)
	out := make([]ConsultationRow, 0, len(cs))
	for _, c := range cs {
		row := ConsultationRow{
			ID:        c.ID,
			DateTime:  orDefault(b.fmt.DateTime(c.Date, c.Hour), NotAvailable),
			Vet:       NotAvailable,
			Pet:       NotAvailable,
			Owner:     NotAvailable,
			Diagnosis: c.Diagnosis,
			Treatment: c.Treatment,
		}
		if v, ok := byVet[c.VetID]; ok {
			row.Vet = orDefault(v.FullName(), NotAvailable)
		}
		if p, ok := byPet[c.PetID]; ok {
			row.Pet = orDefault(p.Name, NotAvailable)
			if o, ok := byOwner[p.OwnerID]; ok {
				row.Owner = orDefault(o.FullName(), NotAvailable)
			}
		}
		out = append(out, row)
	}
	return out
}

func (b *Builder) Medications(meds []clinic.Medication) []MedicationRow {
	out := make([]MedicationRow, 0, len(meds))
	for _, m := range meds {
		out = append(out, MedicationRow{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Price:       b.fmt.Currency(m.Price),
		})
	}
	return out
}

func (b *Builder) Prescriptions(ps []clinic.Prescription, cs []clinic.Consultation, meds []clinic.Medication, pets []clinic.Pet) []PrescriptionRow {
	byCons, byMed, byPet := index(cs), index(meds), index(pets)
	out := make([]PrescriptionRow, 0, len(ps))
	for _, p := range ps {
		row := PrescriptionRow{
			ID:           p.ID,
			Consultation: NotAvailable,
			Pet:          NotAvailable,
			Medication:   NotAvailable,
			Dosage:       p.Dosage,
			Instructions: p.Instructions,
			PrescribedAt: b.date(p.PrescribedAt),
		}
		if c, ok := byCons[p.ConsultationID]; ok {
			row.Consultation = fmt.Sprintf("Consulta #%d", c.ID)
			if pet, ok := byPet[c.PetID]; ok {
				row.Pet = orDefault(pet.Name, NotAvailable)
			}
		}
		if m, ok := byMed[p.MedicationID]; ok {
			row.Medication = orDefault(m.Name, NotAvailable)
		}
		out = append(out, row)
	}
	return out
}

func (b *Builder) Histories(hs []clinic.MedicalHistory, pets []clinic.Pet, owners []clinic.Owner) []HistoryRow {
	byPet, byOwner := index(pets), index(owners)
	out := make([]HistoryRow, 0, len(hs))
	for _, h := range hs {
		row := HistoryRow{
			ID:          h.ID,
			Pet:         NotAvailable,
			Owner:       NotAvailable,
			Date:        b.date(h.Date),
			Description: h.Description,
		}
		if p, ok := byPet[h.PetID]; ok {
			row.Pet = orDefault(p.Name, NotAvailable)
			if o, ok := byOwner[p.OwnerID]; ok {
				row.Owner = orDefault(o.FullName(), NotAvailable)
			}
		}
		out = append(out, row)
	}
	return out
}

func (b *Builder) Admins(admins []clinic.Administrator) []AdminRow {
	out := make([]AdminRow, 0, len(admins))
	for _, a := range admins {
		status := StatusInactive
		if a.Active {
			status = StatusActive
		}
		out = append(out, AdminRow{
			ID:           a.ID,
			Name:         a.Name,
			Email:        a.Email,
			Phone:        orDefault(a.Phone, NotAvailable),
			RegisteredAt: b.date(a.RegisteredAt),
			Status:       status,
		})
	}
	return out
}

func (b *Builder) date(t time.Time) string {
	return orDefault(b.fmt.Date(t), NotAvailable)
}

func index[T clinic.Identifiable](items []T) map[int64]T {
	m := make(map[int64]T, len(items))
	for _, it := range items {
		if id := it.RecordID(); id > 0 {
			m[id] = it
		}
	}
	return m
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func id(v int64) string { return strconv.FormatInt(v, 10) }
