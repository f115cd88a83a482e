package fields

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrNotObject = errors.New("json value is not an object")

// DecodeRecord decodifica un objeto JSON preservando los números (json.Number).
// Un body vacío o "null" devuelve (nil, nil).
func DecodeRecord(raw []byte) (Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var v any
	if err := decode(raw, &v); err != nil {
		return nil, err
	}
	r, ok := asRecord(v)
	if !ok {
		return nil, ErrNotObject
	}
	return r, nil
}

// DecodeList decodifica un arreglo de objetos. Elementos que no son objeto se descartan.
func DecodeList(raw []byte) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Record{}, nil
	}
	var items []any
	if err := decode(raw, &items); err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if r, ok := asRecord(it); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func decode(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(out)
}
