package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganRequestRoundTrip(t *testing.T) {
	contact := uniqueValue("555")
	request := map[string]string{
		"patient":      "Test Patient",
		"organ_needed": "kidney",
		"blood_group":  "AB-",
		"contact":      contact,
	}

	resp := makeRequest(t, http.MethodPost, "/api/organs/request", request)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

	resp = makeRequest(t, http.MethodGet, "/api/organs/requests", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found map[string]interface{}
	for _, row := range resp.Rows() {
		if row["contact"] == contact {
			found = row
		}
	}
	require.NotNil(t, found, "inserted organ request not listed")
	assert.Equal(t, "Test Patient", found["patient"])
	assert.Equal(t, "kidney", found["organ_needed"])
	assert.Equal(t, "AB-", found["blood_group"])
}

func TestBloodDonation(t *testing.T) {
	resp := makeRequest(t, http.MethodPost, "/api/blood/donate", map[string]string{
		"name":        "Test Donor",
		"blood_group": "O+",
		"contact":     uniqueValue("555"),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))
	assert.True(t, resp.API().Success)

	resp = makeRequest(t, http.MethodPost, "/api/blood/donate", map[string]string{"name": "Test Donor"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Please fill all required fields.", resp.API().Message)
}

func TestReferenceListings(t *testing.T) {
	for _, path := range []string{"/api/doctors", "/api/hospitals", "/api/blood/available", "/api/organs/available"} {
		resp := makeRequest(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
