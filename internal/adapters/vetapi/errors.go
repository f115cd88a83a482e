package vetapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/platform/fields"
	"vet-clinic-admin/internal/platform/httpclient"
)

const msgUnreachable = "No se pudo conectar con el servidor"

// transportErr clasifica fallas sin respuesta.
func transportErr(err error) error {
	var te *httpclient.TransportError
	if errors.As(err, &te) {
		return clinic.NewError(clinic.ErrNetwork, 0, msgUnreachable, err)
	}
	// request inválido (url mal armada, etc.)
	return clinic.NewError(clinic.ErrNetwork, 0, "", err)
}

// failure mapea una respuesta no-2xx de create/update/delete.
// - {errors:{campo:[...]}} con 4xx => ErrAPIValidation
// - 404 => ErrNotFound
// - resto => ErrServer con mensaje de {message|mensaje|title}, string JSON o texto plano
func failure(resp *httpclient.Response) error {
	if fe := fieldErrors(resp); len(fe) > 0 && resp.StatusCode < 500 {
		e := clinic.NewError(clinic.ErrAPIValidation, resp.StatusCode, clinic.FlattenFieldErrors(fe), nil)
		e.Fields = fe
		return e
	}

	msg := bodyMessage(resp)
	if resp.StatusCode == http.StatusNotFound {
		return clinic.NewError(clinic.ErrNotFound, resp.StatusCode, msg, nil)
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return clinic.NewError(clinic.ErrServer, resp.StatusCode, msg, nil)
}

// fieldErrors lee {errors:{campo:[mensajes]}}; acepta también mensaje suelto por campo.
func fieldErrors(resp *httpclient.Response) map[string][]string {
	if resp.Empty() || !resp.IsJSON() {
		return nil
	}
	rec, err := fields.DecodeRecord(resp.Body)
	if err != nil || rec == nil {
		return nil
	}
	errs := fields.Nested(rec, fields.Errors)
	if len(errs) == 0 {
		return nil
	}

	out := make(map[string][]string, len(errs))
	for k, v := range errs {
		switch t := v.(type) {
		case string:
			out[k] = append(out[k], t)
		case []any:
			for _, it := range t {
				if s, ok := it.(string); ok {
					out[k] = append(out[k], s)
				}
			}
		}
	}
	return out
}

// bodyMessage extrae un texto legible del body, sea JSON o texto plano.
func bodyMessage(resp *httpclient.Response) string {
	if resp.Empty() {
		return ""
	}
	if resp.IsJSON() {
		var s string
		if err := json.Unmarshal(resp.Body, &s); err == nil {
			return strings.TrimSpace(s)
		}
		rec, err := fields.DecodeRecord(resp.Body)
		if err != nil || rec == nil {
			return ""
		}
		for _, f := range []fields.Field{fields.Message, fields.Title} {
			if m := strings.TrimSpace(fields.String(rec, f)); m != "" {
				return m
			}
		}
		return ""
	}
	return strings.TrimSpace(string(resp.Body))
}
