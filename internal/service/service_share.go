// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/models"
)

// minSearchQueryLength is the shortest trimmed query that reaches the store.
const minSearchQueryLength = 2

// shareService owns the access-grant registry and the read gateway built on
// top of it.
//
// Grants are directed: a grant from A to B lets B read A's data and says
// nothing about A reading B's. Grants are never transitive.
type shareService struct {
	userRepository  store.UserRepository
	grantRepository store.GrantRepository

	searchLimit uint64

	logger *logger.Logger
}

// NewShareService constructs a ShareService. cfg.SearchLimit caps the
// number of users returned by Search.
func NewShareService(userRepository store.UserRepository, grantRepository store.GrantRepository, cfg config.App, logger *logger.Logger) ShareService {
	return &shareService{
		userRepository:  userRepository,
		grantRepository: grantRepository,
		searchLimit:     cfg.SearchLimit,
		logger:          logger,
	}
}

// Grant is idempotent: granting twice leaves a single edge carrying the
// latest permissions.
func (s *shareService) Grant(ctx context.Context, ownerID int64, viewerEmail string, permissions *models.Permissions) (models.AccessGrant, error) {
	log := logger.FromContext(ctx)

	viewer, err := s.userRepository.FindUserByEmail(ctx, strings.TrimSpace(viewerEmail))
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.AccessGrant{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*shareService.Grant").Msg("viewer lookup failed")
		return models.AccessGrant{}, storeError("viewer lookup failed", err)
	}

	if viewer.UserID == ownerID {
		return models.AccessGrant{}, ErrSelfShareForbidden
	}

	perms := models.DefaultPermissions()
	if permissions != nil {
		perms = *permissions
	}

	grant, err := s.grantRepository.UpsertGrant(ctx, models.AccessGrant{
		OwnerID:     ownerID,
		ViewerID:    viewer.UserID,
		Permissions: perms,
	})
	switch {
	case errors.Is(err, store.ErrSelfGrant):
		return models.AccessGrant{}, ErrSelfShareForbidden
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.AccessGrant{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Str("func", "*shareService.Grant").Int64("owner_id", ownerID).Msg("grant upsert failed")
		return models.AccessGrant{}, storeError("grant upsert failed", err)
	}

	log.Info().Int64("owner_id", ownerID).Int64("viewer_id", viewer.UserID).Any("permissions", perms).Msg("access granted")
	return grant, nil
}

func (s *shareService) Revoke(ctx context.Context, ownerID, viewerID int64) error {
	log := logger.FromContext(ctx)

	err := s.grantRepository.DeleteGrant(ctx, ownerID, viewerID)
	if errors.Is(err, store.ErrGrantNotFound) {
		return ErrGrantNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*shareService.Revoke").Int64("owner_id", ownerID).Int64("viewer_id", viewerID).Msg("grant deletion failed")
		return storeError("grant deletion failed", err)
	}

	log.Info().Int64("owner_id", ownerID).Int64("viewer_id", viewerID).Msg("access revoked")
	return nil
}

func (s *shareService) ListGrantedToMe(ctx context.Context, viewerID int64) ([]models.GrantSummary, error) {
	summaries, err := s.grantRepository.ListGrantsByViewer(ctx, viewerID)
	if err != nil {
		return nil, storeError("listing grants by viewer failed", err)
	}
	return summaries, nil
}

func (s *shareService) ListGrantedByMe(ctx context.Context, ownerID int64) ([]models.GrantSummary, error) {
	summaries, err := s.grantRepository.ListGrantsByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeError("listing grants by owner failed", err)
	}
	return summaries, nil
}

// Search finds users to share with. Queries shorter than two characters
// after trimming return nothing without touching the store. The caller is
// never part of the result.
func (s *shareService) Search(ctx context.Context, callerID int64, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryLength {
		return []models.UserSummary{}, nil
	}

	users, err := s.userRepository.SearchUsers(ctx, query, callerID, s.searchLimit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*shareService.Search").Msg("user search failed")
		return nil, storeError("user search failed", err)
	}

	return users, nil
}

// AuthorizeRead consults only the exact (owner, viewer) edge. A missing
// edge, an unknown owner and a disabled category all yield the same
// ErrAccessDenied. Owners may always read their own data.
func (s *shareService) AuthorizeRead(ctx context.Context, viewerID, ownerID int64, category models.Category) error {
	if viewerID == ownerID {
		return nil
	}

	grant, err := s.grantRepository.FindGrant(ctx, ownerID, viewerID)
	if errors.Is(err, store.ErrGrantNotFound) {
		return ErrAccessDenied
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*shareService.AuthorizeRead").
			Int64("owner_id", ownerID).
			Int64("viewer_id", viewerID).
			Msg("grant lookup failed")
		return storeError("grant lookup failed", err)
	}

	if !grant.Permissions.Allows(category) {
		return ErrAccessDenied
	}

	return nil
}
