package images

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /pets/{petID}/image. No hay DELETE: la imagen solo se
// borra al eliminar la mascota (ver console).
func RegisterRoutes(r chi.Router, cache *Cache) {
	r.Route("/pets/{petID}/image", func(ir chi.Router) {
		ir.Put("/", putImageHandler(cache))
		ir.Get("/", getImageHandler(cache))
	})
}

type imageResponse struct {
	PetID   int64  `json:"pet_id"`
	DataURI string `json:"data_uri"`
}

// putImageHandler godoc
// @Summary Guardar la imagen local de una mascota
// @Description Acepta el binario crudo o multipart con campo "imagen". PNG, JPEG, GIF o WebP. La imagen nunca se envía al servidor remoto.
// @Tags images
// @Accept image/png,image/jpeg,image/gif,image/webp,multipart/form-data
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} imageResponse
// @Failure 413 {object} map[string]string "imagen demasiado grande"
// @Failure 415 {object} map[string]string "tipo no soportado"
// @Router /pets/{petID}/image [put]
func putImageHandler(cache *Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := petIDParam(w, r)
		if !ok {
			return
		}

		data, err := readImage(r, cache.MaxBytes())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		uri, err := cache.Set(r.Context(), petID, data)
		switch {
		case err == nil:
		case errors.Is(err, ErrTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		case errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrEmpty):
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, imageResponse{PetID: petID, DataURI: uri})
	}
}

// getImageHandler godoc
// @Summary Imagen local de una mascota
// @Tags images
// @Produce image/png,image/jpeg,image/gif,image/webp,json
// @Param petID path int true "ID de la mascota"
// @Param format query string false "datauri para recibir JSON"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /pets/{petID}/image [get]
func getImageHandler(cache *Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := petIDParam(w, r)
		if !ok {
			return
		}

		uri, found, err := cache.Get(r.Context(), petID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		// ?format=datauri para clientes que lo pegan directo en <img src>
		if r.URL.Query().Get("format") == "datauri" {
			writeJSON(w, http.StatusOK, imageResponse{PetID: petID, DataURI: uri})
			return
		}

		mt, data, err := DecodeDataURI(uri)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", mt)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// readImage lee hasta max+1 bytes para que Set pueda rechazar (no truncar).
func readImage(r *http.Request, max int) ([]byte, error) {
	limit := int64(max) + 1

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mt, "multipart/") {
		if err := r.ParseMultipartForm(limit); err != nil {
			return nil, errors.New("invalid multipart body")
		}
		f, _, err := r.FormFile("imagen")
		if err != nil {
			return nil, errors.New(`multipart field "imagen" required`)
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, limit))
	}

	return io.ReadAll(io.LimitReader(r.Body, limit))
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid pet id")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
