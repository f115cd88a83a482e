// Package vetapi habla con el backend REST de la clínica (/api/<Recurso>).
package vetapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/platform/fields"
	"vet-clinic-admin/internal/platform/httpclient"
	"vet-clinic-admin/internal/platform/logger"
	"vet-clinic-admin/internal/ports/auth"
)

type Client struct {
	http  *httpclient.Client
	table Table
	log   logger.Logger
}

var (
	_ clinic.Remote      = (*Client)(nil)
	_ auth.Authenticator = (*Client)(nil)
)

// New recibe un httpclient con BaseURL apuntando a .../api.
func New(hc *httpclient.Client, table Table, log logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		http:  hc,
		table: table,
		log:   log.With(map[string]any{"component": "vetapi"}),
	}
}

// List: cualquier no-2xx es ErrNetwork; el orden es el del servidor.
func (c *Client) List(ctx context.Context, e clinic.Entity) ([]fields.Record, error) {
	ep, err := c.table.endpoint(e)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(ctx, http.MethodGet, ep.List, nil, nil)
	if err != nil {
		return nil, transportErr(err)
	}
	c.trace(http.MethodGet, ep.List, resp.StatusCode)

	if !resp.OK() {
		msg := bodyMessage(resp)
		if msg == "" {
			msg = "Error al cargar " + strings.ToLower(e.Plural())
		}
		return nil, clinic.NewError(clinic.ErrNetwork, resp.StatusCode, msg, nil)
	}

	recs, err := fields.DecodeList(resp.Body)
	if err != nil {
		return nil, clinic.NewError(clinic.ErrNetwork, resp.StatusCode, "Respuesta inválida del servidor", err)
	}
	return recs, nil
}

// Get: no-2xx o body vacío/null => ErrNotFound.
func (c *Client) Get(ctx context.Context, e clinic.Entity, id int64) (fields.Record, error) {
	ep, err := c.table.endpoint(e)
	if err != nil {
		return nil, err
	}
	path := withID(ep.Get, id)
	notFound := e.Singular() + " no encontrado"

	var (
		rec fields.Record
		he  *httpclient.HTTPError
		te  *httpclient.TransportError
	)
	err = c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &rec)
	switch {
	case errors.As(err, &he):
		c.trace(http.MethodGet, path, he.StatusCode)
		return nil, clinic.NewError(clinic.ErrNotFound, he.StatusCode, notFound, nil)
	case errors.As(err, &te):
		return nil, transportErr(err)
	case err != nil:
		return nil, clinic.NewError(clinic.ErrNetwork, http.StatusOK, "Respuesta inválida del servidor", err)
	}
	c.trace(http.MethodGet, path, http.StatusOK)

	if rec == nil {
		return nil, clinic.NewError(clinic.ErrNotFound, http.StatusOK, notFound, nil)
	}
	return rec, nil
}

func (c *Client) Create(ctx context.Context, e clinic.Entity, payload fields.Record) (fields.Record, error) {
	ep, err := c.table.endpoint(e)
	if err != nil {
		return nil, err
	}
	return c.write(ctx, http.MethodPost, ep.Create, payload)
}

func (c *Client) Update(ctx context.Context, e clinic.Entity, id int64, payload fields.Record) (fields.Record, error) {
	ep, err := c.table.endpoint(e)
	if err != nil {
		return nil, err
	}
	return c.write(ctx, http.MethodPut, withID(ep.Update, id), payload)
}

// Delete: 204 vacío, 200 JSON y 200 texto plano son éxito.
func (c *Client) Delete(ctx context.Context, e clinic.Entity, id int64) (string, error) {
	ep, err := c.table.endpoint(e)
	if err != nil {
		return "", err
	}
	path := withID(ep.Delete, id)

	resp, err := c.http.Do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return "", transportErr(err)
	}
	c.trace(http.MethodDelete, path, resp.StatusCode)

	if !resp.OK() {
		return "", failure(resp)
	}
	return bodyMessage(resp), nil
}

// Login manda las credenciales en query string como lo exige el backend.
// Queda expuesto en logs de acceso del servidor; ver DESIGN.md.
func (c *Client) Login(ctx context.Context, email, password string) (auth.Profile, error) {
	q := url.Values{}
	q.Set("correo", email)
	q.Set("contraseña", password)
	path := c.table.Login + "?" + q.Encode()

	resp, err := c.http.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return auth.Profile{}, transportErr(err)
	}
	// sin path: lleva la contraseña
	c.trace(http.MethodGet, c.table.Login, resp.StatusCode)

	if !resp.OK() {
		msg := bodyMessage(resp)
		if msg == "" {
			msg = "Credenciales incorrectas"
		}
		if resp.StatusCode >= 500 {
			return auth.Profile{}, clinic.NewError(clinic.ErrServer, resp.StatusCode, msg, nil)
		}
		return auth.Profile{}, clinic.NewError(auth.ErrInvalidCredentials, resp.StatusCode, msg, nil)
	}

	rec, err := fields.DecodeRecord(resp.Body)
	if err != nil || rec == nil {
		return auth.Profile{}, clinic.NewError(clinic.ErrNetwork, resp.StatusCode, "Respuesta de login inválida", err)
	}
	p := auth.Profile{
		ID:    fields.Int(rec, fields.AdminID),
		Name:  fields.String(rec, fields.Name),
		Email: fields.String(rec, fields.Email),
	}
	if p.ID <= 0 {
		return auth.Profile{}, clinic.NewError(clinic.ErrNetwork, resp.StatusCode, "Respuesta de login inválida", nil)
	}
	return p, nil
}

// write hace POST/PUT y devuelve el body si es un objeto JSON.
// Body vacío, texto plano o JSON no-objeto => (nil, nil).
func (c *Client) write(ctx context.Context, method, path string, payload fields.Record) (fields.Record, error) {
	resp, err := c.http.Do(ctx, method, path, nil, payload)
	if err != nil {
		return nil, transportErr(err)
	}
	c.trace(method, path, resp.StatusCode)

	if !resp.OK() {
		return nil, failure(resp)
	}
	if resp.Empty() {
		return nil, nil
	}

	rec, err := fields.DecodeRecord(resp.Body)
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, fields.ErrNotObject):
		return nil, nil
	case resp.IsJSON() || brokenJSON(resp.Body):
		return nil, clinic.NewError(clinic.ErrNetwork, resp.StatusCode, "Respuesta inválida del servidor", err)
	default:
		// texto plano ("Mascota creada")
		return nil, nil
	}
}

func (c *Client) trace(method, path string, status int) {
	c.log.Debug("vetapi request", map[string]any{
		"method": method,
		"path":   path,
		"status": status,
	})
}

// brokenJSON: parece objeto o arreglo JSON pero no parsea.
func brokenJSON(b []byte) bool {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return false
	}
	return (s[0] == '{' || s[0] == '[') && !json.Valid([]byte(s))
}
