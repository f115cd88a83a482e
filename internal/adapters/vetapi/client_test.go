package vetapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/platform/fields"
	"vet-clinic-admin/internal/platform/httpclient"
	"vet-clinic-admin/internal/ports/auth"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	hc, err := httpclient.NewWithBaseURL(ts.URL+"/api", time.Second)
	require.NoError(t, err)
	return New(hc, DefaultTable(), nil)
}

func TestDelete_AcceptsThreeSuccessShapes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		ctype  string
		body   string
		want   string
	}{
		{"204 empty", http.StatusNoContent, "", "", ""},
		{"200 json", http.StatusOK, "application/json", `{"mensaje":"Mascota eliminada"}`, "Mascota eliminada"},
		{"200 text", http.StatusOK, "text/plain", "Mascota eliminada correctamente", "Mascota eliminada correctamente"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/Mascota/IdMascota", r.URL.Path)
				assert.Equal(t, "7", r.URL.Query().Get("id"))
				if tc.ctype != "" {
					w.Header().Set("Content-Type", tc.ctype)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			msg, err := c.Delete(context.Background(), clinic.Pets, 7)
			require.NoError(t, err)
			assert.Equal(t, tc.want, msg)
		})
	}
}

func TestAddressing_PerEntity(t *testing.T) {
	cases := []struct {
		entity clinic.Entity
		call   string
		want   string
	}{
		{clinic.Owners, "get", "/api/Propietario/5"},
		{clinic.Owners, "update", "/api/Propietario/IdPropietario?id=5"},
		{clinic.Vets, "delete", "/api/Veterinario/IdVeterinario?id=5"},
		{clinic.Consultations, "get", "/api/Consulta/idConsulta?idConsulta=5"},
		{clinic.Consultations, "delete", "/api/Consulta/idConsulta?id=5"},
		{clinic.Medications, "update", "/api/Medicamento/5"},
		{clinic.Histories, "delete", "/api/HistorialMedico/IdHistorial?id=5"},
		{clinic.Pets, "update", "/api/Mascota/IdMascota?IdMascota=5"},
		{clinic.Prescriptions, "list", "/api/Receta?include=consulta,medicamento"},
	}
	for _, tc := range cases {
		t.Run(string(tc.entity)+"/"+tc.call, func(t *testing.T) {
			var got string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.RequestURI()
				w.Header().Set("Content-Type", "application/json")
				if tc.call == "list" {
					_, _ = w.Write([]byte(`[]`))
					return
				}
				_, _ = w.Write([]byte(`{"id":5}`))
			})

			ctx := context.Background()
			var err error
			switch tc.call {
			case "list":
				_, err = c.List(ctx, tc.entity)
			case "get":
				_, err = c.Get(ctx, tc.entity, 5)
			case "update":
				_, err = c.Update(ctx, tc.entity, 5, fields.Record{})
			case "delete":
				_, err = c.Delete(ctx, tc.entity, 5)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreate_FlattensFieldErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{
			"title": "One or more validation errors occurred.",
			"errors": {"Precio": ["El precio debe ser mayor a 0"], "Nombre": ["El nombre es obligatorio"]}
		}`))
	})

	_, err := c.Create(context.Background(), clinic.Medications, fields.Record{"nombre": ""})

	require.ErrorIs(t, err, clinic.ErrAPIValidation)
	assert.Equal(t, "El nombre es obligatorio\nEl precio debe ser mayor a 0", err.Error())

	var ce *clinic.Error
	require.True(t, errors.As(err, &ce))
	assert.Len(t, ce.Fields, 2)
}

func TestCreate_ErrorMessageShapes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		ctype  string
		body   string
		kind   error
		want   string
	}{
		{"title", 400, "application/json", `{"title":"Bad Request"}`, clinic.ErrServer, "Bad Request"},
		{"message", 500, "application/json", `{"message":"Error interno"}`, clinic.ErrServer, "Error interno"},
		{"mensaje", 409, "application/json", `{"mensaje":"Duplicado"}`, clinic.ErrServer, "Duplicado"},
		{"plain text", 500, "text/plain", "Object reference not set", clinic.ErrServer, "Object reference not set"},
		{"empty", 503, "", "", clinic.ErrServer, "Service Unavailable"},
		{"not found", 404, "", "", clinic.ErrNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				if tc.ctype != "" {
					w.Header().Set("Content-Type", tc.ctype)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.Create(context.Background(), clinic.Owners, fields.Record{})
			require.ErrorIs(t, err, tc.kind)
			if tc.want != "" {
				assert.Equal(t, tc.want, err.Error())
			}
		})
	}
}

func TestCreate_SuccessBodies(t *testing.T) {
	body := `{"mensaje":"Medicamento creado","idMedicamento":12}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if body[0] == '{' {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "text/plain")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(body))
	})

	rec, err := c.Create(context.Background(), clinic.Medications, fields.Record{"nombre": "Amoxicilina"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), fields.Int(rec, fields.MedicationID))

	body = "Medicamento creado"
	rec, err = c.Create(context.Background(), clinic.Medications, fields.Record{})
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCreate_MalformedJSONIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"idMascota": `))
	})

	_, err := c.Create(context.Background(), clinic.Pets, fields.Record{})
	assert.ErrorIs(t, err, clinic.ErrNetwork)
}

func TestGet_EmptyBodyIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Get(context.Background(), clinic.Owners, 3)
	assert.ErrorIs(t, err, clinic.ErrNotFound)
}

func TestGet_NullBodyAndNon2xxAreNotFound(t *testing.T) {
	status := http.StatusOK
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`null`))
	})

	_, err := c.Get(context.Background(), clinic.Vets, 3)
	assert.ErrorIs(t, err, clinic.ErrNotFound)

	status = http.StatusBadRequest
	_, err = c.Get(context.Background(), clinic.Vets, 3)
	assert.ErrorIs(t, err, clinic.ErrNotFound)
}

func TestGet_DecodesRecordAndRejectsNonObjects(t *testing.T) {
	body := `{"IdVeterinario": 3, "Nombre": "Luis"}`
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	rec, err := c.Get(context.Background(), clinic.Vets, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), fields.Int(rec, fields.VetID))
	assert.Equal(t, "Luis", fields.String(rec, fields.Name))

	body = `[{"IdVeterinario": 3}]`
	_, err = c.Get(context.Background(), clinic.Vets, 3)
	assert.ErrorIs(t, err, clinic.ErrNetwork)
}

func TestList_Non2xxAndTransportAreNetworkErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.List(context.Background(), clinic.Pets)
	assert.ErrorIs(t, err, clinic.ErrNetwork)

	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()
	hc, err := httpclient.NewWithBaseURL(base+"/api", time.Second)
	require.NoError(t, err)
	_, err = New(hc, DefaultTable(), nil).List(context.Background(), clinic.Pets)
	assert.ErrorIs(t, err, clinic.ErrNetwork)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Administrador/Login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("contraseña") != "secreto" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`"Correo o contraseña incorrectos"`))
			return
		}
		assert.Equal(t, "ana@vet.mx", r.URL.Query().Get("correo"))
		_, _ = w.Write([]byte(`{"IdAdministrador":3,"Nombre":"Ana","Correo":"ana@vet.mx","Estado":true}`))
	})

	p, err := c.Login(context.Background(), "ana@vet.mx", "secreto")
	require.NoError(t, err)
	assert.Equal(t, auth.Profile{ID: 3, Name: "Ana", Email: "ana@vet.mx"}, p)

	_, err = c.Login(context.Background(), "ana@vet.mx", "mal")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, "Correo o contraseña incorrectos", err.Error())
}

func TestLoadTable_OverridesOnlyGivenRoutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
login: /Auth/Login
entities:
  pets:
    delete: /Mascota/{id}
`), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "/Auth/Login", table.Login)
	assert.Equal(t, "/Mascota/{id}", table.Entities[clinic.Pets].Delete)
	assert.Equal(t, "/Mascota/IdMascota?IdMascota={id}", table.Entities[clinic.Pets].Update)
	assert.Equal(t, DefaultTable().Entities[clinic.Owners], table.Entities[clinic.Owners])
}

func TestLoadTable_UnknownEntity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities:\n  facturas:\n    list: /Factura\n"), 0o600))

	_, err := LoadTable(path)
	assert.Error(t, err)
}
