package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVitalService_RecordUsesSessionOwner(t *testing.T) {
	mem := newMemoryStore()
	share := NewShareService(mem, mem, testAppConfig(), logger.Nop())
	svc := NewVitalService(mem, share, logger.Nop())
	hr := 72

	saved, err := svc.Record(context.Background(), 7, models.Vital{VitalID: 99, UserID: 1, HeartRate: &hr})
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.UserID)
	assert.NotEqual(t, int64(99), saved.VitalID)
}

func TestVitalService_ListNewestFirst(t *testing.T) {
	mem := newMemoryStore()
	svc := NewVitalService(mem, NewShareService(mem, mem, testAppConfig(), logger.Nop()), logger.Nop())
	ctx := context.Background()
	a, b := 60, 80

	_, err := svc.Record(ctx, 1, models.Vital{HeartRate: &a})
	require.NoError(t, err)
	_, err = svc.Record(ctx, 1, models.Vital{HeartRate: &b})
	require.NoError(t, err)
	_, err = svc.Record(ctx, 2, models.Vital{HeartRate: &b})
	require.NoError(t, err)

	vitals, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, vitals, 2)
	assert.Equal(t, 80, *vitals[0].HeartRate)
}

func TestVitalService_ListShared(t *testing.T) {
	f := newShareFixture(t)
	svc := NewVitalService(f.mem, f.svc, logger.Nop())
	ctx := context.Background()
	hr := 64

	_, err := svc.Record(ctx, f.alice.UserID, models.Vital{HeartRate: &hr})
	require.NoError(t, err)

	_, err = svc.ListShared(ctx, f.bob.UserID, f.alice.UserID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Grant(ctx, f.alice.UserID, "bob@example.com", nil)
	require.NoError(t, err)

	vitals, err := svc.ListShared(ctx, f.bob.UserID, f.alice.UserID)
	require.NoError(t, err)
	require.Len(t, vitals, 1)
	assert.Equal(t, f.alice.UserID, vitals[0].UserID)

	_, err = f.svc.Grant(ctx, f.alice.UserID, "bob@example.com", &models.Permissions{PDFs: true})
	require.NoError(t, err)
	_, err = svc.ListShared(ctx, f.bob.UserID, f.alice.UserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
