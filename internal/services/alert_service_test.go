package services

import (
	"path/filepath"
	"testing"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAlertService(t *testing.T) *AlertService {
	return NewAlertService(filepath.Join(t.TempDir(), "alerts.yaml"))
}

func savedAlert(name string) models.SavedAlert {
	return models.SavedAlert{
		Name:     name,
		Criteria: searchCriteria(50),
		Enabled:  true,
	}
}

func Test_AlertService_CreateAndList(t *testing.T) {

	service := newTestAlertService(t)

	require.NoError(t, service.Create(savedAlert("remote-go")))
	require.NoError(t, service.Create(savedAlert("berlin-backend")))

	alerts, err := service.List()
	require.NoError(t, err)

	require.Len(t, alerts, 2)
	assert.Equal(t, "berlin-backend", alerts[0].Name)
	assert.Equal(t, "remote-go", alerts[1].Name)
	assert.Equal(t, "golang", alerts[0].Criteria.Keywords)
}

func Test_AlertService_RejectsDuplicateName(t *testing.T) {

	service := newTestAlertService(t)

	require.NoError(t, service.Create(savedAlert("remote-go")))
	err := service.Create(savedAlert("remote-go"))
	assert.ErrorIs(t, err, ErrAlertExists)
}

func Test_AlertService_RejectsInvalidCriteria(t *testing.T) {

	service := newTestAlertService(t)

	alert := savedAlert("bad")
	alert.Criteria.MaxResults = 0

	err := service.Create(alert)
	assert.ErrorIs(t, err, models.ErrInvalidCriteria)
}

func Test_AlertService_SetEnabled(t *testing.T) {

	service := newTestAlertService(t)
	require.NoError(t, service.Create(savedAlert("remote-go")))

	require.NoError(t, service.SetEnabled("remote-go", false))

	enabled, err := service.EnabledAlerts()
	require.NoError(t, err)
	assert.Empty(t, enabled)

	assert.ErrorIs(t, service.SetEnabled("missing", true), ErrAlertNotFound)
}

func Test_AlertService_Delete(t *testing.T) {

	service := newTestAlertService(t)
	require.NoError(t, service.Create(savedAlert("remote-go")))

	require.NoError(t, service.Delete("remote-go"))

	alert, err := service.Get("remote-go")
	require.NoError(t, err)
	assert.Nil(t, alert)

	assert.ErrorIs(t, service.Delete("remote-go"), ErrAlertNotFound)
}

func Test_AlertService_MissingFileMeansNoAlerts(t *testing.T) {

	service := newTestAlertService(t)

	alerts, err := service.List()
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
