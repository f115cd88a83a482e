package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-admin/internal/domain/clinic"
)

func TestParseEntity(t *testing.T) {
	e, err := parseEntity("Medicamento")
	require.NoError(t, err)
	assert.Equal(t, clinic.Medications, e)

	_, err = parseEntity("unicornios")
	assert.Error(t, err)
}

func TestListRequiresOneArg(t *testing.T) {
	cmd := listCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestLoginRequiresEmail(t *testing.T) {
	cmd := loginCmd()
	cmd.SetArgs([]string{"--password", "x"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
