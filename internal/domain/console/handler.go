package console

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/domain/views"
	"vet-clinic-admin/internal/middleware"
)

const maxBody = 1 << 20

func RegisterRoutes(r chi.Router, ws *Workspace) {
	r.Route("/views", func(vr chi.Router) {
		vr.Get("/", statusesHandler(ws))
		vr.Route("/{entity}", func(er chi.Router) {
			er.Get("/", mountHandler(ws))
			er.Post("/", createHandler(ws))
			er.Get("/rows", rowsHandler(ws))
			er.Get("/export.pdf", exportListHandler(ws))
			er.Get("/{id}", rowHandler(ws))
			er.Put("/{id}", updateHandler(ws))
			er.Delete("/{id}", deleteHandler(ws))
			er.Get("/{id}/export.pdf", exportSingleHandler(ws))
		})
	})
}

type viewResponse struct {
	Status views.Status `json:"status"`
	Rows   []views.Row  `json:"rows"`
}

type createdResponse struct {
	ID  int64     `json:"id"`
	Row views.Row `json:"row,omitempty"`
	// Warning: el registro se guardó pero la imagen local no.
	Warning string `json:"warning,omitempty"`
}

type deletedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// statusesHandler godoc
// @Summary Estado de carga de todas las vistas
// @Tags views
// @Produce json
// @Success 200 {array} views.Status
// @Failure 401 {object} errorResponse
// @Router /views [get]
func statusesHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]views.Status, 0, len(clinic.All))
		for _, e := range clinic.All {
			st, _ := ws.Status(e)
			out = append(out, st)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// mountHandler godoc
// @Summary Montar una vista
// @Description Vuelve a pedir al servidor todas las colecciones de la vista en paralelo y devuelve las filas. Si alguna colección falla la vista queda en estado failed.
// @Tags views
// @Produce json
// @Param entity path string true "pets, owners, vets, consultations, medications, prescriptions, histories o admins"
// @Success 200 {object} viewResponse
// @Failure 404 {object} errorResponse "entidad desconocida"
// @Failure 502 {object} errorResponse "el servidor remoto falló"
// @Router /views/{entity} [get]
func mountHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := entityParam(w, r)
		if !ok {
			return
		}
		st, err := ws.Mount(r.Context(), e)
		if err != nil {
			writeFailure(w, err)
			return
		}
		rows, err := ws.Rows(r.Context(), e)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, viewResponse{Status: st, Rows: rows})
	}
}

// rowsHandler godoc
// @Summary Filas en memoria de una vista
// @Description Devuelve las filas sin volver a pedirlas; incluye los cambios aplicados después de cada escritura.
// @Tags views
// @Produce json
// @Param entity path string true "Entidad"
// @Success 200 {object} viewResponse
// @Failure 404 {object} errorResponse
// @Router /views/{entity}/rows [get]
func rowsHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := entityParam(w, r)
		if !ok {
			return
		}
		rows, err := ws.Rows(r.Context(), e)
		if err != nil {
			writeFailure(w, err)
			return
		}
		st, _ := ws.Status(e)
		writeJSON(w, http.StatusOK, viewResponse{Status: st, Rows: rows})
	}
}

// rowHandler godoc
// @Summary Un registro de la vista
// @Tags views
// @Produce json
// @Param entity path string true "Entidad"
// @Param id path int true "ID del registro"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errorResponse
// @Router /views/{entity}/{id} [get]
func rowHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, ok := entityAndID(w, r)
		if !ok {
			return
		}
		row, err := ws.Row(r.Context(), e, id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, row)
	}
}

// createHandler godoc
// @Summary Crear un registro
// @Description Acepta el JSON con las claves en cualquier casing (nombre, Nombre...). Valida localmente antes de llamar al servidor. Para mascotas acepta además "imagen" con un data URI que se guarda en la caché local.
// @Tags views
// @Accept json
// @Produce json
// @Param entity path string true "Entidad"
// @Param payload body object true "Registro"
// @Success 201 {object} createdResponse "warning presente si la imagen no se pudo guardar"
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse "validación local o del servidor"
// @Failure 502 {object} errorResponse
// @Router /views/{entity} [post]
func createHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := entityParam(w, r)
		if !ok {
			return
		}
		raw, ok := readBody(w, r)
		if !ok {
			return
		}

		id, err := ws.Create(r.Context(), e, raw)
		resp := createdResponse{ID: id}
		switch {
		case errors.Is(err, ErrImageNotStored):
			resp.Warning = err.Error()
		case err != nil:
			writeFailure(w, err)
			return
		}
		audit(ws, r, "create", e, id)

		if id > 0 {
			if row, err := ws.Row(r.Context(), e, id); err == nil {
				resp.Row = row
			}
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

// updateHandler godoc
// @Summary Actualizar un registro
// @Description PUT reemplaza el registro completo: mandar todos los campos.
// @Tags views
// @Accept json
// @Produce json
// @Param entity path string true "Entidad"
// @Param id path int true "ID del registro"
// @Param payload body object true "Registro completo"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /views/{entity}/{id} [put]
func updateHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, ok := entityAndID(w, r)
		if !ok {
			return
		}
		raw, ok := readBody(w, r)
		if !ok {
			return
		}

		var warning string
		if err := ws.Update(r.Context(), e, id, raw); errors.Is(err, ErrImageNotStored) {
			warning = err.Error()
		} else if err != nil {
			writeFailure(w, err)
			return
		}
		audit(ws, r, "update", e, id)

		row, err := ws.Row(r.Context(), e, id)
		if err != nil || warning != "" {
			resp := createdResponse{ID: id, Warning: warning}
			if err == nil {
				resp.Row = row
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}
		writeJSON(w, http.StatusOK, row)
	}
}

// deleteHandler godoc
// @Summary Eliminar un registro
// @Description La confirmación la pide el cliente antes de llamar. Al eliminar una mascota también se borra su imagen local.
// @Tags views
// @Produce json
// @Param entity path string true "Entidad"
// @Param id path int true "ID del registro"
// @Success 200 {object} deletedResponse
// @Success 204
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /views/{entity}/{id} [delete]
func deleteHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, ok := entityAndID(w, r)
		if !ok {
			return
		}
		msg, err := ws.Delete(r.Context(), e, id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		audit(ws, r, "delete", e, id)
		if msg == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, deletedResponse{ID: id, Message: msg})
	}
}

// exportListHandler godoc
// @Summary Exportar la vista a PDF
// @Description Usa las filas en memoria; montar la vista antes para datos frescos.
// @Tags views
// @Produce application/pdf
// @Param entity path string true "Entidad"
// @Success 200 {file} file
// @Failure 404 {object} errorResponse
// @Router /views/{entity}/export.pdf [get]
func exportListHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := entityParam(w, r)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if _, err := ws.ExportList(r.Context(), &buf, e); err != nil {
			writeFailure(w, err)
			return
		}
		writePDF(w, string(e)+".pdf", buf.Bytes())
	}
}

// exportSingleHandler godoc
// @Summary Exportar un registro a PDF
// @Tags views
// @Produce application/pdf
// @Param entity path string true "Entidad"
// @Param id path int true "ID del registro"
// @Success 200 {file} file
// @Failure 404 {object} errorResponse
// @Router /views/{entity}/{id}/export.pdf [get]
func exportSingleHandler(ws *Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, id, ok := entityAndID(w, r)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if _, err := ws.ExportSingle(r.Context(), &buf, e, id); err != nil {
			writeFailure(w, err)
			return
		}
		writePDF(w, fmt.Sprintf("%s-%d.pdf", e, id), buf.Bytes())
	}
}

func entityParam(w http.ResponseWriter, r *http.Request) (clinic.Entity, bool) {
	e, ok := clinic.ParseEntity(chi.URLParam(r, "entity"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown entity"})
		return "", false
	}
	return e, true
}

func entityAndID(w http.ResponseWriter, r *http.Request) (clinic.Entity, int64, bool) {
	e, ok := entityParam(w, r)
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return "", 0, false
	}
	return e, id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return nil, false
	}
	return raw, true
}

// writeFailure traduce la taxonomía de errores a HTTP.
func writeFailure(w http.ResponseWriter, err error) {
	var (
		verr *clinic.ValidationError
		cerr *clinic.Error
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Error(), Fields: verr.FieldMap()})
	case errors.Is(err, clinic.ErrAPIValidation):
		resp := errorResponse{Error: err.Error()}
		if errors.As(err, &cerr) {
			resp.Fields = cerr.Fields
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, ErrUnknownEntity), errors.Is(err, clinic.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, clinic.ErrNetwork), errors.Is(err, clinic.ErrServer):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// audit registra cada escritura con el administrador de la sesión.
func audit(ws *Workspace, r *http.Request, op string, e clinic.Entity, id int64) {
	fs := map[string]any{"op": op, "entity": string(e), "id": id}
	if p, ok := middleware.GetProfile(r.Context()); ok {
		fs["admin_id"] = p.ID
	}
	ws.log.Info("mutation", fs)
}

func writePDF(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
