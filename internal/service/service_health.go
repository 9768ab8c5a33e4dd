package service

import (
	"context"

	"github.com/MKhiriev/health-mate/internal/store"
)

type healthService struct {
	checker store.HealthChecker
}

func NewHealthService(checker store.HealthChecker) HealthService {
	return &healthService{checker: checker}
}

func (h *healthService) Check(ctx context.Context) error {
	if err := h.checker.Ping(ctx); err != nil {
		return storeError("database ping failed", err)
	}
	return nil
}
