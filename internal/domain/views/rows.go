package views

import "vet-clinic-admin/internal/platform/report"

// Textos fijos para referencias que no se pudieron resolver.
const (
	NotAvailable = "N/A"
	Unspecified  = "No especificado"
	NoImage      = "Sin imagen"

	StatusActive   = "Activo"
	StatusInactive = "Inactivo"
)

// Row es una fila de solo lectura lista para pintar o exportar.
type Row interface {
	RowID() int64
	Cells() []string
}

type PetRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Species  string `json:"especie"`
	Breed    string `json:"raza"`
	Age      string `json:"edad"`
	Gender   string `json:"genero"`
	Owner    string `json:"propietario"`
	OwnerID  int64  `json:"id_propietario,omitempty"`
	Image    string `json:"imagen,omitempty"`
	HasImage bool   `json:"tiene_imagen"`
}

type OwnerRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Surnames string `json:"apellidos"`
	Phone    string `json:"telefono"`
	Address  string `json:"direccion"`
}

type VetRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"nombre"`
	Surnames     string `json:"apellidos"`
	Specialty    string `json:"especialidad"`
	ContractDate string `json:"fecha_contrato"`
}

type ConsultationRow struct {
	ID        int64  `json:"id"`
	DateTime  string `json:"fecha_hora"`
	Vet       string `json:"veterinario"`
	Pet       string `json:"mascota"`
	Owner     string `json:"propietario"`
	Diagnosis string `json:"diagnostico"`
	Treatment string `json:"tratamiento"`
}

type MedicationRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Price       string `json:"precio"`
}

type PrescriptionRow struct {
	ID           int64  `json:"id"`
	Consultation string `json:"consulta"`
	Pet          string `json:"mascota"`
	Medication   string `json:"medicamento"`
	Dosage       string `json:"dosis"`
	Instructions string `json:"indicaciones"`
	PrescribedAt string `json:"fecha_prescripcion"`
}

type HistoryRow struct {
	ID          int64  `json:"id"`
	Pet         string `json:"mascota"`
	Owner       string `json:"propietario"`
	Date        string `json:"fecha"`
	Description string `json:"descripcion"`
}

type AdminRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"nombre"`
	Email        string `json:"correo"`
	Phone        string `json:"telefono"`
	RegisteredAt string `json:"fecha_registro"`
	Status       string `json:"estado"`
}

func (r PetRow) RowID() int64          { return r.ID }
func (r OwnerRow) RowID() int64        { return r.ID }
func (r VetRow) RowID() int64          { return r.ID }
func (r ConsultationRow) RowID() int64 { return r.ID }
func (r MedicationRow) RowID() int64   { return r.ID }
func (r PrescriptionRow) RowID() int64 { return r.ID }
func (r HistoryRow) RowID() int64      { return r.ID }
func (r AdminRow) RowID() int64        { return r.ID }

func (r PetRow) Cells() []string {
	return []string{id(r.ID), r.Name, r.Species, r.Breed, r.Age, r.Gender, r.Owner}
}

func (r OwnerRow) Cells() []string {
	return []string{id(r.ID), r.Name, r.Surnames, r.Phone, r.Address}
}

func (r VetRow) Cells() []string {
	return []string{id(r.ID), r.Name, r.Surnames, r.Specialty, r.ContractDate}
}

func (r ConsultationRow) Cells() []string {
	return []string{id(r.ID), r.DateTime, r.Vet, r.Pet, r.Owner, r.Diagnosis, r.Treatment}
}

func (r MedicationRow) Cells() []string {
	return []string{id(r.ID), r.Name, r.Description, r.Price}
}

func (r PrescriptionRow) Cells() []string {
	return []string{id(r.ID), r.Consultation, r.Pet, r.Medication, r.Dosage, r.Instructions, r.PrescribedAt}
}

func (r HistoryRow) Cells() []string {
	return []string{id(r.ID), r.Pet, r.Owner, r.Date, r.Description}
}

func (r AdminRow) Cells() []string {
	return []string{id(r.ID), r.Name, r.Email, r.Phone, r.RegisteredAt, r.Status}
}

// Las columnas van en el mismo orden que Cells().
var (
	PetColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Nombre", Width: 32}, {Header: "Especie", Width: 26},
		{Header: "Raza", Width: 28}, {Header: "Edad", Width: 14}, {Header: "Género", Width: 22},
		{Header: "Propietario"},
	}
	OwnerColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Nombre", Width: 35}, {Header: "Apellidos", Width: 40},
		{Header: "Teléfono", Width: 30}, {Header: "Dirección"},
	}
	VetColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Nombre", Width: 35}, {Header: "Apellidos", Width: 40},
		{Header: "Especialidad"}, {Header: "Fecha de Contrato", Width: 32},
	}
	ConsultationColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Fecha y Hora", Width: 32}, {Header: "Veterinario", Width: 38},
		{Header: "Mascota", Width: 28}, {Header: "Propietario", Width: 38}, {Header: "Diagnóstico"},
		{Header: "Tratamiento"},
	}
	MedicationColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Nombre", Width: 40}, {Header: "Descripción"},
		{Header: "Precio", Width: 25},
	}
	PrescriptionColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Consulta", Width: 28}, {Header: "Mascota", Width: 28},
		{Header: "Medicamento", Width: 35}, {Header: "Dosis", Width: 30}, {Header: "Indicaciones"},
		{Header: "Fecha Prescripción", Width: 32},
	}
	HistoryColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Mascota", Width: 30}, {Header: "Propietario", Width: 40},
		{Header: "Fecha", Width: 24}, {Header: "Descripción"},
	}
	AdminColumns = []report.Column{
		{Header: "ID", Width: 14}, {Header: "Nombre", Width: 35}, {Header: "Correo"},
		{Header: "Teléfono", Width: 28}, {Header: "Fecha Registro", Width: 28}, {Header: "Estado", Width: 20},
	}
)
