package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAcceptsStringsAndNumbers(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":42,"c":null}`), &payload))

	assert.Equal(t, ID("abc"), payload.A)
	assert.Equal(t, ID("42"), payload.B)
	assert.True(t, payload.C.IsZero())
}

func TestIDEncodesAsString(t *testing.T) {
	out, err := json.Marshal(EmployeeFields{DepartmentID: "7"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"departmentId":"7"`)
}

func TestEmployeeDisplayHelpers(t *testing.T) {
	e := Employee{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", e.DisplayName())
	assert.Equal(t, "", e.DepartmentName())

	e.Department = &DepartmentSummary{ID: "1", Name: "Eng"}
	assert.Equal(t, "Eng", e.DepartmentName())
	assert.Equal(t, e.FirstName, e.Fields().FirstName)
}
