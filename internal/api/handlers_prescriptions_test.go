package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

type prescriptionList struct {
	Prescriptions []models.Prescription `json:"prescriptions"`
}

func TestPrescriptionsListAndStats(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	client := app.client(t)

	all := prescriptionList{}
	client.json(http.MethodGet, "/api/prescriptions", nil, http.StatusOK, &all)
	require.Len(t, all.Prescriptions, len(models.Prescriptions()))

	stats := services.PrescriptionStats{}
	client.json(http.MethodGet, "/api/prescriptions/stats", nil, http.StatusOK, &stats)
	assert.Equal(t, len(all.Prescriptions), stats.Total)

	active := prescriptionList{}
	client.json(http.MethodGet, "/api/prescriptions?status=active", nil, http.StatusOK, &active)
	assert.Len(t, active.Prescriptions, stats.Active)
	for _, prescription := range active.Prescriptions {
		assert.Equal(t, models.PrescriptionActive, prescription.Status)
	}

	response, body := client.do(http.MethodGet, "/api/prescriptions?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, services.ErrInvalidPrescriptionFilter.Error(), readAPIError(t, body))
}

func TestPrescriptionRefill(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	client := app.client(t)

	var refillable models.Prescription
	for _, prescription := range models.Prescriptions() {
		if prescription.Status != models.PrescriptionExpired && prescription.RefillsRemaining > 0 {
			refillable = prescription
			break
		}
	}
	require.NotEmpty(t, refillable.ID)
	pharmacy := models.RefillPharmacies()[0]

	response, _ := client.do(http.MethodPost, "/api/prescriptions/"+refillable.ID+"/refill", payload{
		"pharmacy":        pharmacy.ID,
		"delivery_option": models.DeliveryHome,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, response.StatusCode)

	confirmation := services.RefillConfirmation{}
	client.json(http.MethodPost, "/api/prescriptions/"+refillable.ID+"/refill", payload{
		"pharmacy":        pharmacy.ID,
		"delivery_option": models.DeliveryPickup,
	}, http.StatusCreated, &confirmation)
	assert.Regexp(t, `^RF-[A-Z0-9]{8}$`, confirmation.RequestID)
	assert.Equal(t, pharmacy.ID, confirmation.Pharmacy.ID)

	response, _ = client.do(http.MethodPost, "/api/prescriptions/rx-missing/refill", payload{"pharmacy": pharmacy.ID})
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}
