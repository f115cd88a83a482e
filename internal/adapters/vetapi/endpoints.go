package vetapi

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"vet-clinic-admin/internal/domain/clinic"
)

// Endpoint son las rutas (relativas a la base /api) de una entidad.
// {id} se reemplaza por el id del registro. El backend no es consistente:
// algunas entidades usan id en el path y otras en query string, con nombres
// de parámetro distintos. Se conserva tal cual.
type Endpoint struct {
	List   string `yaml:"list"`
	Get    string `yaml:"get"`
	Create string `yaml:"create"`
	Update string `yaml:"update"`
	Delete string `yaml:"delete"`
}

type Table struct {
	Login    string                     `yaml:"login"`
	Entities map[clinic.Entity]Endpoint `yaml:"entities"`
}

func DefaultTable() Table {
	byPath := func(res string) Endpoint {
		return Endpoint{
			List:   "/" + res,
			Get:    "/" + res + "/{id}",
			Create: "/" + res,
			Update: "/" + res + "/{id}",
			Delete: "/" + res + "/{id}",
		}
	}

	pets := byPath("Mascota")
	pets.Get = "/Mascota/IdMascota?IdMascota={id}"
	pets.Update = "/Mascota/IdMascota?IdMascota={id}"
	pets.Delete = "/Mascota/IdMascota?id={id}"

	owners := byPath("Propietario")
	owners.Update = "/Propietario/IdPropietario?id={id}"
	owners.Delete = "/Propietario/IdPropietario?id={id}"

	vets := byPath("Veterinario")
	vets.Get = "/Veterinario/IdVeterinario?id={id}"
	vets.Update = vets.Get
	vets.Delete = vets.Get

	consultations := byPath("Consulta")
	consultations.Get = "/Consulta/idConsulta?idConsulta={id}"
	consultations.Update = consultations.Get
	consultations.Delete = "/Consulta/idConsulta?id={id}"

	prescriptions := byPath("Receta")
	prescriptions.List = "/Receta?include=consulta,medicamento"

	histories := byPath("HistorialMedico")
	histories.Delete = "/HistorialMedico/IdHistorial?id={id}"

	return Table{
		Login: "/Administrador/Login",
		Entities: map[clinic.Entity]Endpoint{
			clinic.Pets:          pets,
			clinic.Owners:        owners,
			clinic.Vets:          vets,
			clinic.Consultations: consultations,
			clinic.Medications:   byPath("Medicamento"),
			clinic.Prescriptions: prescriptions,
			clinic.Histories:     histories,
			clinic.Admins:        byPath("Administrador"),
		},
	}
}

// LoadTable parte de DefaultTable y pisa solo las rutas presentes en el YAML.
// path vacío => defaults.
func LoadTable(path string) (Table, error) {
	t := DefaultTable()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("vetapi: read endpoints: %w", err)
	}

	var over Table
	if err := yaml.Unmarshal(raw, &over); err != nil {
		return Table{}, fmt.Errorf("vetapi: parse endpoints: %w", err)
	}

	if s := strings.TrimSpace(over.Login); s != "" {
		t.Login = s
	}
	for e, ep := range over.Entities {
		if !e.Valid() {
			return Table{}, fmt.Errorf("vetapi: unknown entity %q in %s", e, path)
		}
		cur := t.Entities[e]
		cur.List = pick(ep.List, cur.List)
		cur.Get = pick(ep.Get, cur.Get)
		cur.Create = pick(ep.Create, cur.Create)
		cur.Update = pick(ep.Update, cur.Update)
		cur.Delete = pick(ep.Delete, cur.Delete)
		t.Entities[e] = cur
	}
	return t, nil
}

func (t Table) endpoint(e clinic.Entity) (Endpoint, error) {
	ep, ok := t.Entities[e]
	if !ok {
		return Endpoint{}, fmt.Errorf("vetapi: no endpoints for entity %q", e)
	}
	return ep, nil
}

func withID(tpl string, id int64) string {
	return strings.ReplaceAll(tpl, "{id}", strconv.FormatInt(id, 10))
}

func pick(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}
