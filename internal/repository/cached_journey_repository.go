package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gymstack/journey-api/internal/cache"
	"github.com/gymstack/journey-api/internal/models"
)

// cachedJourneyRepository is a read-through decorator: Get serves from the
// cache when possible, every write invalidates the affected journey. Cache
// failures are logged and degrade to the database, never to the caller.
type cachedJourneyRepository struct {
	inner  JourneyRepository
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCachedJourneyRepository(inner JourneyRepository, c cache.Cache, ttl time.Duration, logger zerolog.Logger) JourneyRepository {
	return &cachedJourneyRepository{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger.With().Str("component", "journey_cache").Logger(),
	}
}

func journeyKey(journeyID string) string {
	return "journey:" + journeyID
}

func (r *cachedJourneyRepository) Get(ctx context.Context, journeyID string) (models.Journey, error) {
	if raw, err := r.cache.Get(ctx, journeyKey(journeyID)); err == nil {
		var j models.Journey
		if err := json.Unmarshal(raw, &j); err == nil {
			return j, nil
		}
		// Corrupt entry, fall through to the database.
		_ = r.cache.Delete(ctx, journeyKey(journeyID))
	} else if !errors.Is(err, cache.ErrNotFound) {
		r.logger.Warn().Err(err).Str("journey_id", journeyID).Msg("cache read failed")
	}

	j, err := r.inner.Get(ctx, journeyID)
	if err != nil {
		return models.Journey{}, err
	}
	r.store(ctx, j)
	return j, nil
}

func (r *cachedJourneyRepository) List(ctx context.Context) ([]models.Journey, error) {
	return r.inner.List(ctx)
}

func (r *cachedJourneyRepository) Create(ctx context.Context, name string) (models.Journey, error) {
	return r.inner.Create(ctx, name)
}

func (r *cachedJourneyRepository) Rename(ctx context.Context, journeyID, name string) error {
	if err := r.inner.Rename(ctx, journeyID, name); err != nil {
		return err
	}
	r.invalidate(ctx, journeyID)
	return nil
}

func (r *cachedJourneyRepository) Delete(ctx context.Context, journeyID string) error {
	if err := r.inner.Delete(ctx, journeyID); err != nil {
		return err
	}
	r.invalidate(ctx, journeyID)
	return nil
}

func (r *cachedJourneyRepository) AddAction(ctx context.Context, journeyID string, action models.Action) (models.Action, error) {
	created, err := r.inner.AddAction(ctx, journeyID, action)
	if err != nil {
		return models.Action{}, err
	}
	r.invalidate(ctx, journeyID)
	return created, nil
}

func (r *cachedJourneyRepository) UpdateAction(ctx context.Context, journeyID string, action models.Action) (models.Action, error) {
	updated, err := r.inner.UpdateAction(ctx, journeyID, action)
	if err != nil {
		return models.Action{}, err
	}
	r.invalidate(ctx, journeyID)
	return updated, nil
}

func (r *cachedJourneyRepository) DeleteAction(ctx context.Context, journeyID, actionID string) error {
	if err := r.inner.DeleteAction(ctx, journeyID, actionID); err != nil {
		return err
	}
	r.invalidate(ctx, journeyID)
	return nil
}

func (r *cachedJourneyRepository) ReorderActions(ctx context.Context, journeyID string, actionIDs []string) error {
	if err := r.inner.ReorderActions(ctx, journeyID, actionIDs); err != nil {
		return err
	}
	r.invalidate(ctx, journeyID)
	return nil
}

func (r *cachedJourneyRepository) store(ctx context.Context, j models.Journey) {
	raw, err := json.Marshal(j)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, journeyKey(j.ID), raw, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("journey_id", j.ID).Msg("cache write failed")
	}
}

func (r *cachedJourneyRepository) invalidate(ctx context.Context, journeyID string) {
	if err := r.cache.Delete(ctx, journeyKey(journeyID)); err != nil {
		r.logger.Warn().Err(err).Str("journey_id", journeyID).Msg("cache invalidation failed")
	}
}
