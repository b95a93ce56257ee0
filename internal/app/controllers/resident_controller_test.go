package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateResidentRequestFlattensContact(t *testing.T) {
	body := `{"name":"Jane Smith","notes":"Away on Tuesdays","contact":{"whatsapp":"+447700900123","sms":"","email":"jane@example.com"}}`

	var req UpdateResidentRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	cols := req.columns()
	assert.Equal(t, "Jane Smith", cols["name"])
	assert.Equal(t, "Away on Tuesdays", cols["notes"])
	assert.Equal(t, "+447700900123", cols["contact_whatsapp"])
	assert.Equal(t, "", cols["contact_sms"])
	assert.Equal(t, "jane@example.com", cols["contact_email"])
	assert.NotContains(t, cols, "contact")
	assert.NotContains(t, cols, "flat_number")
}

func TestUpdateResidentRequestOmittedFieldsStay(t *testing.T) {
	var req UpdateResidentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"flat_number":"3C"}`), &req))

	assert.Equal(t, map[string]interface{}{"flat_number": "3C"}, req.columns())
}

func TestUpdateResidentRequestClearsNotes(t *testing.T) {
	var req UpdateResidentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes":""}`), &req))

	cols := req.columns()
	require.Contains(t, cols, "notes")
	assert.Equal(t, "", cols["notes"])
}

func TestReorderRequestAcceptsResidentList(t *testing.T) {
	body := `{"residents":[
		{"id":"b","name":"Bob","flat_number":"2B","contact":{"sms":"+447700900456"}},
		{"id":"a","name":"Alice","flat_number":"1A"}
	]}`

	var req ReorderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, []string{"b", "a"}, req.orderedIDs())
}
