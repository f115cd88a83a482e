package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_ReturnsNon2xxWithoutError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Mascota", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("mal"))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/api/", time.Second)
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), http.MethodGet, "Mascota", nil, nil)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.False(t, resp.IsJSON())
	assert.Equal(t, "mal", string(resp.Body))
}

func TestDo_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(time.Second)
	_, err := c.Do(context.Background(), http.MethodGet, url, nil, nil)

	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestDoJSON_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, ts.URL, nil, nil, nil)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusNotFound, he.StatusCode)
}

func TestDoJSON_KeepsNumbers(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"precio": 25.50, "idMedicamento": 9007199254740993}`))
	}))
	defer ts.Close()

	var out map[string]any
	err := New(time.Second).DoJSON(context.Background(), http.MethodGet, ts.URL, nil, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, json.Number("25.50"), out["precio"])
	assert.Equal(t, json.Number("9007199254740993"), out["idMedicamento"])
}

func TestResponse_IsJSONSniffsBody(t *testing.T) {
	r := &Response{Header: http.Header{}, Body: []byte(` {"a":1}`)}
	assert.True(t, r.IsJSON())

	r = &Response{Header: http.Header{}, Body: []byte(`Mascota eliminada`)}
	assert.False(t, r.IsJSON())

	r = &Response{Header: http.Header{}, Body: nil, StatusCode: http.StatusNoContent}
	assert.True(t, r.Empty())
	assert.True(t, r.OK())
}

func TestResolveURL_RelativeRequiresBase(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/Mascota")
	assert.Error(t, err)
}
