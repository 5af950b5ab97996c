package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsCreatesDefaults(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo, testReportConfig)
	userID := uuid.New()

	got, err := svc.GetSettings(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "UTC", got.Timezone)
	assert.Equal(t, "monthly", got.DefaultReportPeriod)

	stored, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestUpdateSettings(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo(), testReportConfig)
	userID := uuid.New()

	got, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		UserID:              userID,
		Timezone:            "Africa/Nairobi",
		DefaultReportPeriod: "week",
	})
	require.NoError(t, err)
	assert.Equal(t, "Africa/Nairobi", got.Timezone)
	assert.Equal(t, "weekly", got.DefaultReportPeriod)

	got, err = svc.UpdateSettings(context.Background(), &UpdateSettingsInput{UserID: userID, DefaultReportPeriod: "yearly"})
	require.NoError(t, err)
	assert.Equal(t, "Africa/Nairobi", got.Timezone, "empty fields are kept")
	assert.Equal(t, "yearly", got.DefaultReportPeriod)
}

func TestUpdateSettingsValidation(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo(), testReportConfig)

	_, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		UserID:              uuid.New(),
		Timezone:            "Mars/Olympus_Mons",
		DefaultReportPeriod: "custom",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "timezone", appErr.Errors[0].Field)
	assert.Equal(t, "default_report_period", appErr.Errors[1].Field)
}
