// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eunio Health

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/eunio-health/eunio-sync/internal/adapter"
	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/retry"
	"github.com/eunio-health/eunio-sync/internal/store"
	"github.com/eunio-health/eunio-sync/models"
)

// syncCoordinator drives the full sync cycle: drain the change journal to
// the remote store, pull remote updates per entity type, resolve divergence,
// apply the results transactionally, and advance the cursors. One cycle runs
// per user at a time; concurrent triggers coalesce via singleflight and all
// receive the shared cycle's report.
type syncCoordinator struct {
	entities  store.EntityRepository
	journal   store.JournalRepository
	cursors   store.CursorRepository
	conflicts store.ConflictRepository

	gateway  adapter.RemoteGateway
	resolver *ConflictResolver
	retrier  *retry.Scheduler
	status   *StatusBroadcaster

	batchSize        int
	deviceID         string
	strictInvariants bool

	group  singleflight.Group
	logger *logger.Logger
}

// NewSyncCoordinator wires the coordinator over the local storages and the
// remote gateway. Retry shape and merge policy come from cfg.
func NewSyncCoordinator(storages *store.ClientStorages, gateway adapter.RemoteGateway, cfg config.Sync, log *logger.Logger) SyncCoordinator {
	retrier := retry.NewScheduler(retry.Config{
		BaseDelay:   cfg.RetryBaseDelay,
		MaxDelay:    cfg.RetryMaxDelay,
		MaxAttempts: cfg.RetryMaxAttempts,
	}, adapter.IsRetryable, log)

	return &syncCoordinator{
		entities:         storages.Entities,
		journal:          storages.Journal,
		cursors:          storages.Cursors,
		conflicts:        storages.Conflicts,
		gateway:          gateway,
		resolver:         NewConflictResolver(cfg.NonMergeableTypes),
		retrier:          retrier,
		status:           NewStatusBroadcaster(),
		batchSize:        cfg.BatchSize,
		deviceID:         cfg.DeviceID,
		strictInvariants: cfg.StrictInvariants,
		logger:           log,
	}
}

// Sync implements SyncCoordinator. Triggers arriving while a cycle for the
// same user is in flight do not start a second cycle; they block until the
// running one finishes and share its outcome.
func (c *syncCoordinator) Sync(ctx context.Context, userID int64) (models.SyncReport, error) {
	v, err, _ := c.group.Do(strconv.FormatInt(userID, 10), func() (any, error) {
		return c.runCycle(ctx, userID)
	})

	report, _ := v.(models.SyncReport)
	return report, err
}

// Subscribe implements SyncCoordinator.
func (c *syncCoordinator) Subscribe() (<-chan models.SyncStatus, func()) {
	return c.status.Subscribe()
}

func (c *syncCoordinator) runCycle(ctx context.Context, userID int64) (models.SyncReport, error) {
	log := c.logger.GetChildLogger()
	started := time.Now()
	var report models.SyncReport

	fail := func(stage string, err error) (models.SyncReport, error) {
		report.Duration = time.Since(started)
		c.status.Publish(models.PhaseFailed, err.Error(), report)
		log.Error().Str("func", "runCycle").Int64("userID", userID).Err(err).Msgf("sync failed during %s", stage)
		return report, fmt.Errorf("%s: %w", stage, err)
	}

	c.status.Publish(models.PhasePushing, "", report)
	for _, entityType := range models.EntityTypes {
		if err := c.pushType(ctx, userID, entityType, &report); err != nil {
			return fail("push", err)
		}
	}

	for _, entityType := range models.EntityTypes {
		c.status.Publish(models.PhasePulling, "", report)
		since, err := c.cursors.GetCursor(ctx, userID, entityType)
		if err != nil {
			return fail("pull", err)
		}

		var remotes []models.RemoteEntity
		err = c.retrier.Do(ctx, "pull "+string(entityType), func(ctx context.Context) error {
			var pullErr error
			remotes, pullErr = c.gateway.PullSince(ctx, entityType, since)
			return pullErr
		})
		if err != nil {
			return fail("pull", err)
		}
		report.Pulled += len(remotes)
		if len(remotes) == 0 {
			continue
		}

		c.status.Publish(models.PhaseResolving, "", report)
		applied, newConflicts, rePush, err := c.resolveType(ctx, userID, remotes)
		if err != nil {
			return fail("resolve", err)
		}

		c.status.Publish(models.PhaseAdvancing, "", report)
		if err = c.entities.ApplyMerge(ctx, userID, applied, newConflicts, rePush); err != nil {
			return fail("advance", err)
		}
		report.Merged += len(applied)
		report.Conflicts += len(newConflicts)

		if err = c.advanceCursor(ctx, userID, entityType, remotes); err != nil {
			return fail("advance", err)
		}
	}

	report.Duration = time.Since(started)
	c.status.Publish(models.PhaseComplete, "", report)
	c.status.Publish(models.PhaseIdle, "", report)
	log.Info().
		Int64("userID", userID).
		Int("pushed", report.Pushed).
		Int("pulled", report.Pulled).
		Int("conflicts", report.Conflicts).
		Dur("duration", report.Duration).
		Msg("sync cycle complete")

	return report, nil
}

// pushType drains the journal for one entity type in chunks of batchSize.
// Chunks are sent in journal order; each chunk is retried as a unit, safely,
// because the server applies chunks atomically and upserts idempotently.
func (c *syncCoordinator) pushType(ctx context.Context, userID int64, entityType models.EntityType, report *models.SyncReport) error {
	pending, err := c.journal.PendingSince(ctx, userID, entityType)
	if err != nil {
		return fmt.Errorf("load pending changes: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	for start := 0; start < len(pending); start += c.batchSize {
		end := min(start+c.batchSize, len(pending))

		items, err := c.buildPushItems(ctx, userID, pending[start:end])
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}

		var results []models.PushResult
		err = c.retrier.Do(ctx, "push "+string(entityType), func(ctx context.Context) error {
			var pushErr error
			results, pushErr = c.gateway.PushBatch(ctx, items)
			return pushErr
		})
		if err != nil {
			return fmt.Errorf("push batch: %w", err)
		}
		report.Pushed += len(items)

		if err = c.applyPushResults(ctx, userID, items, results, report); err != nil {
			return err
		}
	}

	return nil
}

// buildPushItems loads the current payload snapshot for each pending change.
// A change whose entity vanished without a delete record is skipped here and
// acknowledged together with the batch it would have joined.
func (c *syncCoordinator) buildPushItems(ctx context.Context, userID int64, pending []models.ChangeRecord) ([]models.PushItem, error) {
	items := make([]models.PushItem, 0, len(pending))
	for _, rec := range pending {
		item := models.PushItem{
			ChangeID:  rec.ChangeID,
			EntityID:  rec.EntityID,
			Type:      rec.Type,
			Operation: rec.Operation,
			UpdatedAt: rec.OccurredAt,
			DeviceID:  rec.DeviceID,
		}

		if rec.Operation != models.OpDelete {
			entity, err := c.entities.GetEntity(ctx, userID, rec.EntityID)
			if errors.Is(err, store.ErrEntityNotFound) {
				if ackErr := c.journal.Acknowledge(ctx, userID, []int64{rec.ChangeID}); ackErr != nil {
					return nil, fmt.Errorf("acknowledge orphaned change: %w", ackErr)
				}
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("load entity for push: %w", err)
			}
			item.Payload = entity.Payload
			item.UpdatedAt = entity.LocalUpdatedAt
		}

		items = append(items, item)
	}

	return items, nil
}

// applyPushResults acknowledges committed records individually and converts
// permanent rejections into conflict records so the data is preserved while
// the poisoned journal entry is removed. Retryable records stay journaled
// for the next cycle.
func (c *syncCoordinator) applyPushResults(ctx context.Context, userID int64, items []models.PushItem, results []models.PushResult, report *models.SyncReport) error {
	log := logger.FromContext(ctx)

	byChangeID := make(map[int64]models.PushItem, len(items))
	for _, it := range items {
		byChangeID[it.ChangeID] = it
	}

	var acked []int64
	var committedOrder []string
	committed := make(map[string]models.PushItem, len(items))

	for _, res := range results {
		item, ok := byChangeID[res.ChangeID]
		if !ok {
			log.Error().Str("func", "applyPushResults").Int64("changeID", res.ChangeID).Msg("push result for unknown change record")
			continue
		}

		switch res.Status {
		case models.PushCommitted:
			// Several committed changes for one entity collapse to the
			// newest snapshot; results follow journal drain order.
			if _, seen := committed[item.EntityID]; !seen {
				committedOrder = append(committedOrder, item.EntityID)
			}
			committed[item.EntityID] = item
			acked = append(acked, res.ChangeID)

		case models.PushRejected:
			conflict := models.ConflictRecord{
				EntityID:       item.EntityID,
				Type:           item.Type,
				LocalPayload:   item.Payload,
				LocalUpdatedAt: item.UpdatedAt,
				DetectedAt:     time.Now(),
			}
			if err := c.conflicts.SaveConflict(ctx, userID, conflict); err != nil {
				return fmt.Errorf("save rejection conflict: %w", err)
			}
			acked = append(acked, res.ChangeID)
			report.Rejected++
			log.Warn().
				Str("func", "applyPushResults").
				Str("entityID", item.EntityID).
				Str("reason", res.Reason).
				Msg("change record rejected by remote store")

		case models.PushRetryable:
			// Left in the journal; the next cycle re-sends it.
		}
	}

	// Clean transition before the journal shrinks: a crash in between
	// leaves the entries journaled and the next cycle re-sends them, which
	// the idempotent upsert absorbs. The acknowledged ids are excluded from
	// the store's guard so a confirmed entry cannot block its own entity.
	for _, entityID := range committedOrder {
		item := committed[entityID]
		if err := c.entities.MarkClean(ctx, userID, item.EntityID, item.UpdatedAt, acked); err != nil {
			return fmt.Errorf("mark entity clean: %w", err)
		}
	}

	if err := c.journal.Acknowledge(ctx, userID, acked); err != nil {
		return fmt.Errorf("acknowledge pushed changes: %w", err)
	}
	report.Acknowledged += len(acked)

	return nil
}

// resolveType runs the resolver over every pulled entity and partitions the
// verdicts into entities to write, conflicts to materialize, and journal
// entries for resolutions that must travel back to the remote store.
func (c *syncCoordinator) resolveType(ctx context.Context, userID int64, remotes []models.RemoteEntity) ([]models.SyncableEntity, []models.ConflictRecord, []models.ChangeRecord, error) {
	now := time.Now()

	var applied []models.SyncableEntity
	var newConflicts []models.ConflictRecord
	var rePush []models.ChangeRecord

	for _, remote := range remotes {
		local, err := c.entities.GetEntity(ctx, userID, remote.ID)
		if errors.Is(err, store.ErrEntityNotFound) {
			e := entityFromRemote(userID, remote)
			applied = append(applied, e)
			continue
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load local entity: %w", err)
		}

		res := c.resolver.Resolve(local, remote, now)
		if res.Conflict != nil {
			newConflicts = append(newConflicts, *res.Conflict)
			marked := local
			marked.SyncState = models.StatePendingConflict
			marked.RemoteUpdatedAt = &remote.RemoteUpdatedAt
			applied = append(applied, marked)
			continue
		}

		applied = append(applied, *res.Entity)
		if res.RequiresPush {
			rePush = append(rePush, models.ChangeRecord{
				EntityID:   remote.ID,
				Type:       remote.Type,
				Operation:  models.OpUpdate,
				OccurredAt: now,
				DeviceID:   c.deviceID,
			})
		}
	}

	return applied, newConflicts, rePush, nil
}

// advanceCursor moves the watermark to the greatest server commit timestamp
// that was applied. The cursor only advances after ApplyMerge committed, so
// a crash between the two re-pulls an already-applied page, which the
// idempotent resolver absorbs.
func (c *syncCoordinator) advanceCursor(ctx context.Context, userID int64, entityType models.EntityType, remotes []models.RemoteEntity) error {
	var maxApplied time.Time
	for _, r := range remotes {
		if r.ServerUpdatedAt.After(maxApplied) {
			maxApplied = r.ServerUpdatedAt
		}
	}
	if maxApplied.IsZero() {
		return nil
	}

	err := c.cursors.Advance(ctx, userID, entityType, maxApplied)
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrCursorRegression) {
		if c.strictInvariants {
			panic(fmt.Sprintf("cursor regression for %s: %v", entityType, err))
		}
		c.logger.Error().
			Str("func", "advanceCursor").
			Str("entityType", string(entityType)).
			Err(err).
			Msg("cursor regression detected, watermark left untouched")
		return nil
	}

	return fmt.Errorf("advance cursor: %w", err)
}
