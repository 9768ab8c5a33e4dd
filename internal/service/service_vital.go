package service

import (
	"context"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/models"
)

type vitalService struct {
	vitalRepository store.VitalRepository
	authorizer      ReadAuthorizer

	logger *logger.Logger
}

func NewVitalService(vitalRepository store.VitalRepository, authorizer ReadAuthorizer, logger *logger.Logger) VitalService {
	return &vitalService{
		vitalRepository: vitalRepository,
		authorizer:      authorizer,
		logger:          logger,
	}
}

// Record stores vital for userID. The owner is always taken from the
// session, never from the request body.
func (v *vitalService) Record(ctx context.Context, userID int64, vital models.Vital) (models.Vital, error) {
	vital.VitalID = 0
	vital.UserID = userID

	saved, err := v.vitalRepository.CreateVital(ctx, vital)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*vitalService.Record").Int64("user_id", userID).Msg("saving vital failed")
		return models.Vital{}, storeError("saving vital failed", err)
	}

	return saved, nil
}

func (v *vitalService) List(ctx context.Context, userID int64) ([]models.Vital, error) {
	vitals, err := v.vitalRepository.ListVitals(ctx, userID)
	if err != nil {
		return nil, storeError("listing vitals failed", err)
	}
	return vitals, nil
}

func (v *vitalService) ListShared(ctx context.Context, viewerID, ownerID int64) ([]models.Vital, error) {
	if err := v.authorizer.AuthorizeRead(ctx, viewerID, ownerID, models.CategoryVitals); err != nil {
		return nil, err
	}
	return v.List(ctx, ownerID)
}
