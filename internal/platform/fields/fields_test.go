package fields

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_ResolvesAnyCasing(t *testing.T) {
	cases := []Record{
		{"nombre": "Rex"},
		{"Nombre": "Rex"},
	}
	for _, r := range cases {
		assert.Equal(t, "Rex", String(r, Name))
	}
}

func TestString_AccentedVariants(t *testing.T) {
	assert.Equal(t, "Otitis", String(Record{"diagnóstico": "Otitis"}, Diagnosis))
	assert.Equal(t, "Otitis", String(Record{"Diagnostico": "Otitis"}, Diagnosis))
	assert.Equal(t, "Calle 1", String(Record{"Direccion": "Calle 1"}, Address))
	assert.Equal(t, "555", String(Record{"Teléfono": "555"}, Phone))
}

func TestLookup_OrderPrefersCamelCase(t *testing.T) {
	r := Record{"Nombre": "Pascal", "nombre": "camel"}
	assert.Equal(t, "camel", String(r, Name))
}

func TestLookup_NullCountsAsAbsent(t *testing.T) {
	r := Record{"nombre": nil, "Nombre": "Rex"}
	assert.Equal(t, "Rex", String(r, Name))
}

func TestFallbacks_WhenEveryAliasMissing(t *testing.T) {
	r := Record{"otro": 1}

	assert.Equal(t, "", String(r, Name))
	assert.Equal(t, int64(0), Int(r, PetID))
	assert.Equal(t, 0.0, Float(r, Price))
	assert.False(t, Bool(r, Active))
	assert.Nil(t, Nested(r, Owner))
	_, ok := Time(r, Date)
	assert.False(t, ok)

	// nil record tampoco falla
	assert.Equal(t, "", String(nil, Name))
}

func TestNestedPath_DegradesWhenParentMissing(t *testing.T) {
	assert.Equal(t, "", String(Record{"nombre": "Rex"}, Owner, Name))
	assert.Equal(t, "", String(Record{"propietario": "no-es-objeto"}, Owner, Name))

	r := Record{"Propietario": map[string]any{"Nombre": "Ana"}}
	assert.Equal(t, "Ana", String(r, Owner, Name))
}

func TestInt_AcceptsNumbersAndStrings(t *testing.T) {
	assert.Equal(t, int64(7), Int(Record{"idMascota": json.Number("7")}, PetID))
	assert.Equal(t, int64(7), Int(Record{"IdMascota": 7.0}, PetID))
	assert.Equal(t, int64(7), Int(Record{"idMascota": "7"}, PetID))
}

func TestInt_OutOfRangeFallsBackToZero(t *testing.T) {
	assert.Equal(t, int64(0), Int(Record{"edad": json.Number("1e20")}, Age))
	assert.Equal(t, int64(0), Int(Record{"edad": -1e19}, Age))
	assert.Equal(t, int64(0), Int(Record{"edad": "9.3e18"}, Age))
	assert.Equal(t, int64(-12), Int(Record{"edad": json.Number("-12.9")}, Age))
	assert.Equal(t, int64(9007199254740992), Int(Record{"edad": 9007199254740992.0}, Age))
}

func TestFloat_Price(t *testing.T) {
	assert.Equal(t, 25.5, Float(Record{"precio": json.Number("25.50")}, Price))
	assert.Equal(t, 25.5, Float(Record{"Precio": "25.5"}, Price))
}

func TestBool_Estado(t *testing.T) {
	assert.True(t, Bool(Record{"estado": true}, Active))
	assert.True(t, Bool(Record{"Estado": json.Number("1")}, Active))
	assert.False(t, Bool(Record{"estado": "false"}, Active))
}

func TestTime_KnownLayouts(t *testing.T) {
	got, ok := Time(Record{"hora": "2025-03-28T15:30:00"}, Hour)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 28, 15, 30, 0, 0, time.UTC), got)

	got, ok = Time(Record{"Fecha_registro": "2025-04-01"}, RegisteredAt)
	require.True(t, ok)
	assert.Equal(t, 2025, got.Year())
}

func TestAliases_UnregisteredField(t *testing.T) {
	assert.Equal(t, []string{"imagenLocal", "ImagenLocal"}, Aliases(Field("imagenLocal")))
}

func TestDecodeRecord(t *testing.T) {
	r, err := DecodeRecord([]byte(`{"precio": 25.50, "Nombre": "Amoxicilina"}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("25.50"), r["precio"])

	r, err = DecodeRecord([]byte("  "))
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = DecodeRecord([]byte(`"texto"`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestDecodeList(t *testing.T) {
	items, err := DecodeList([]byte(`[{"idMascota":1},{"IdMascota":2}, 3]`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), Int(items[1], PetID))
}
