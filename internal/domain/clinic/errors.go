package clinic

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNetwork       = errors.New("network error")
	ErrValidation    = errors.New("validation failed")
	ErrAPIValidation = errors.New("api validation failed")
	ErrNotFound      = errors.New("not found")
	ErrServer        = errors.New("server error")
)

// Error es un fallo remoto ya clasificado. Kind es uno de los sentinels de arriba.
type Error struct {
	Kind    error
	Status  int // 0 = no hubo respuesta
	Message string
	Fields  map[string][]string // solo ErrAPIValidation
	Err     error
}

func NewError(kind error, status int, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Status:  status,
		Message: strings.TrimSpace(message),
		Err:     cause,
	}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Kind.Error() + ": " + e.Err.Error()
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// FlattenFieldErrors: una línea por campo (orden alfabético), mensajes del
// mismo campo separados por espacio, líneas unidas con "\n".
func FlattenFieldErrors(m map[string][]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs := make([]string, 0, len(m[k]))
		for _, s := range m[k] {
			if s = strings.TrimSpace(s); s != "" {
				msgs = append(msgs, s)
			}
		}
		if len(msgs) == 0 {
			continue
		}
		lines = append(lines, strings.Join(msgs, " "))
	}
	return strings.Join(lines, "\n")
}

// Problem es un error de validación local de un campo.
type Problem struct {
	Field   string
	Message string
}

// ValidationError agrupa los problemas encontrados antes de llamar al backend.
type ValidationError struct {
	Entity   Entity
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FieldMap agrupa los mensajes por campo, en el orden en que se detectaron.
func (e *ValidationError) FieldMap() map[string][]string {
	out := make(map[string][]string, len(e.Problems))
	for _, p := range e.Problems {
		out[p.Field] = append(out[p.Field], p.Message)
	}
	return out
}

type problems struct {
	entity Entity
	list   []Problem
}

func (p *problems) add(field, msg string) {
	p.list = append(p.list, Problem{Field: field, Message: msg})
}

func (p *problems) err() error {
	if len(p.list) == 0 {
		return nil
	}
	return &ValidationError{Entity: p.entity, Problems: p.list}
}
