package console

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/domain/mutations"
	"vet-clinic-admin/internal/middleware"
	"vet-clinic-admin/internal/platform/fields"
	"vet-clinic-admin/internal/platform/logger"
	"vet-clinic-admin/internal/ports/auth"
)

func newServer(t *testing.T) (*httptest.Server, *fixture) {
	t.Helper()
	fx := newFixture(t, mutations.Optimistic)
	r := chi.NewRouter()
	RegisterRoutes(r, fx.ws)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, fx
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHTTP_MountAndCreate(t *testing.T) {
	ts, fx := newServer(t)
	fx.remote.seed(clinic.Medications, fields.Record{"IdMedicamento": 1, "Nombre": "Meloxicam", "Precio": 80})

	resp := do(t, http.MethodGet, ts.URL+"/views/medications", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view struct {
		Status struct {
			State string `json:"state"`
		} `json:"status"`
		Rows []map[string]any `json:"rows"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "ready", view.Status.State)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "$80.00", view.Rows[0]["precio"])

	resp = do(t, http.MethodPost, ts.URL+"/views/Medicamento",
		`{"Nombre":"Amoxicilina","Descripcion":"Antibiótico de amplio espectro","Precio":25.5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID  int64          `json:"id"`
		Row map[string]any `json:"row"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(100), created.ID)
	assert.Equal(t, "Amoxicilina", created.Row["nombre"])

	resp = do(t, http.MethodGet, ts.URL+"/views/medications/rows", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Rows, 2)
}

func TestHTTP_ValidationIs422WithFields(t *testing.T) {
	ts, _ := newServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/views/owners", `{"nombre":"A"}`)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Fields, "nombre")
	assert.Contains(t, body.Fields, "dirección")
}

func TestHTTP_ErrorMapping(t *testing.T) {
	ts, fx := newServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/views/unicorns", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/views/vets/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/views/vets/9", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	fx.remote.fail[clinic.Vets] = clinic.NewError(clinic.ErrNetwork, 0, "No se pudo conectar con el servidor", nil)
	resp = do(t, http.MethodGet, ts.URL+"/views/vets", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	fx.remote.fail[clinic.Owners] = &clinic.Error{
		Kind:    clinic.ErrAPIValidation,
		Status:  400,
		Message: "El nombre ya existe",
		Fields:  map[string][]string{"Nombre": {"El nombre ya existe"}},
	}
	resp = do(t, http.MethodPost, ts.URL+"/views/owners",
		`{"nombre":"Ana","apellidos":"López","dirección":"Av. Siempre Viva 742"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"El nombre ya existe"}, body.Fields["Nombre"])
}

func TestHTTP_DeleteWithoutMessageIs204(t *testing.T) {
	ts, fx := newServer(t)
	fx.remote.seed(clinic.Histories, fields.Record{"idHistorial": 4, "descripcion": "Control anual"})

	resp := do(t, http.MethodGet, ts.URL+"/views/histories", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodDelete, ts.URL+"/views/histories/4", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHTTP_ExportPDF(t *testing.T) {
	ts, _ := newServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/views/admins/export.pdf", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "admins.pdf")
}

func TestHTTP_Statuses(t *testing.T) {
	ts, _ := newServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/views", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, len(clinic.All))
	assert.Equal(t, "pending", out[0]["state"])
}

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

type staticProfile auth.Profile

func (s staticProfile) CurrentProfile(context.Context) (auth.Profile, error) {
	return auth.Profile(s), nil
}

func TestHTTP_MutationsLogAdminID(t *testing.T) {
	fx := newFixture(t, mutations.Optimistic)
	var logs lockedBuffer
	fx.ws.log = logger.New(logger.Options{Level: logger.Info, Format: logger.FormatJSON, Out: &logs})

	r := chi.NewRouter()
	r.Use(middleware.RequireSession(staticProfile{ID: 7, Name: "Ana", Email: "ana@vet.mx"}))
	RegisterRoutes(r, fx.ws)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp := do(t, http.MethodPost, ts.URL+"/views/medications",
		`{"nombre":"Amoxicilina","descripcion":"Antibiótico de amplio espectro","precio":25.5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, http.MethodDelete, ts.URL+"/views/medications/100", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var ops []string
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if entry["message"] != "mutation" {
			continue
		}
		assert.Equal(t, float64(7), entry["admin_id"])
		assert.Equal(t, "medications", entry["entity"])
		ops = append(ops, entry["op"].(string))
	}
	assert.Equal(t, []string{"create", "delete"}, ops)
}

func TestHTTP_CreatedWithoutImageCarriesWarning(t *testing.T) {
	ts, fx := newServer(t)
	fx.remote.omitID = true
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	resp := do(t, http.MethodPost, ts.URL+"/views/pets",
		`{"nombre":"Luna","especie":"Gato","raza":"Siamés","edad":2,"genero":"hembra","idPropietario":5,"imagen":"`+uri+`"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID      int64  `json:"id"`
		Warning string `json:"warning"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Zero(t, created.ID)
	assert.Contains(t, created.Warning, "pet image not stored")
}

func TestHTTP_InvalidImageIs422(t *testing.T) {
	ts, fx := newServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/views/pets",
		`{"nombre":"Luna","especie":"Gato","raza":"Siamés","edad":2,"genero":"hembra","idPropietario":5,"imagen":"garbage"}`)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Fields map[string][]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"La imagen debe ser un data URI en base64"}, body.Fields["imagen"])
	assert.Zero(t, fx.remote.calls)
}
