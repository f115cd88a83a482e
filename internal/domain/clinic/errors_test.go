package clinic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenFieldErrors(t *testing.T) {
	got := FlattenFieldErrors(map[string][]string{
		"Precio": {"El precio es requerido"},
		"Nombre": {"El nombre es requerido", "Máximo 100"},
		"Vacio":  {" "},
	})
	assert.Equal(t, "El nombre es requerido Máximo 100\nEl precio es requerido", got)
}

func TestError_IsKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := error(NewError(ErrNetwork, 0, "", cause))

	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrServer)
	assert.Equal(t, "network error: dial tcp: refused", err.Error())
}

func TestParseEntity(t *testing.T) {
	e, ok := ParseEntity("Mascota")
	assert.True(t, ok)
	assert.Equal(t, Pets, e)

	e, ok = ParseEntity("histories")
	assert.True(t, ok)
	assert.Equal(t, "HistorialMedico", e.Resource())

	_, ok = ParseEntity("facturas")
	assert.False(t, ok)
}

func TestValidationError_FieldMapKeepsEveryMessage(t *testing.T) {
	ve := &ValidationError{Entity: Pets, Problems: []Problem{
		{Field: "nombre", Message: "El nombre es obligatorio"},
		{Field: "edad", Message: "La edad debe estar entre 0 y 50"},
		{Field: "nombre", Message: "El nombre debe tener entre 2 y 50 caracteres"},
	}}

	assert.Equal(t, map[string][]string{
		"nombre": {"El nombre es obligatorio", "El nombre debe tener entre 2 y 50 caracteres"},
		"edad":   {"La edad debe estar entre 0 y 50"},
	}, ve.FieldMap())
}
