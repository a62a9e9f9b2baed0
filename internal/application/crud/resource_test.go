package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id    int
	name  string
	admin bool
}

var testResource = Resource[item]{
	Name: "items",
	Columns: []Column[item]{
		{Header: "ID", Value: func(i item) string { return "#" }},
		{Header: "Nombre", Value: func(i item) string { return i.name }},
	},
	Fields: []Field{
		{Name: "name", Label: "Nombre", Type: FieldText, Required: true},
		{Name: "password", Label: "Contraseña", EditLabel: "Contraseña (dejar en blanco para no cambiar)", Type: FieldPassword, Required: true, OptionalOnEdit: true},
		{Name: "roleId", Label: "Rol", Type: FieldSelect, Required: true},
	},
	ID:   func(i item) int { return i.id },
	Warn: func(i item) bool { return i.admin },
}

func TestResource_RowsYHeaders(t *testing.T) {
	rows := testResource.Rows([]item{{id: 3, name: "Ana"}})
	assert.Equal(t, []Row{{ID: 3, Cells: []string{"#", "Ana"}}}, rows)
	assert.Equal(t, []string{"ID", "Nombre"}, testResource.Headers())
	assert.Equal(t, "items-changed", testResource.ChangedEvent())
}

func TestResource_Warns(t *testing.T) {
	assert.True(t, testResource.Warns(item{admin: true}))
	assert.False(t, testResource.Warns(item{}))
	assert.False(t, Resource[item]{}.Warns(item{admin: true}), "sin Warn nunca advierte")
}

func TestBuildFields_AltaPreseleccionaPrimeraOpcion(t *testing.T) {
	opts := map[string][]Option{"roleId": {{Value: "1", Label: "admin"}, {Value: "2", Label: "cliente"}}}

	fields := BuildFields(testResource.Fields, nil, opts, false)

	assert.Equal(t, "1", fields[2].Value)
	assert.True(t, fields[1].Required, "la contraseña es obligatoria al crear")
}

func TestBuildFields_EdicionPasswordOpcionalYVacio(t *testing.T) {
	fields := BuildFields(testResource.Fields, Values{"name": "Ana", "password": "x", "roleId": "2"}, nil, true)

	assert.Equal(t, "Ana", fields[0].Value)
	assert.False(t, fields[1].Required)
	assert.Empty(t, fields[1].Value)
	assert.Equal(t, "Contraseña (dejar en blanco para no cambiar)", fields[1].Label)
	assert.Equal(t, "2", fields[2].Value)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("12")
	assert.True(t, ok)
	assert.Equal(t, 12, id)
	_, ok = ParseID("abc")
	assert.False(t, ok)
	_, ok = ParseID("0")
	assert.False(t, ok)
}
