package engine

import (
	"time"

	"github.com/gymstack/journey-api/internal/models"
)

// Result is the outcome of processing a single event: the action instances
// that changed (in deterministic journey order, subsumed completions
// directly after their trigger) and any notifications that became due.
type Result struct {
	Updated       []models.ActionInstance
	Notifications []models.Notification
}

// ProcessEvent applies one domain event to a journey's runtime state.
//
// Before the journey is anchored only the entry action is eligible: a
// matching event completes it and its completion time becomes the anchor
// (the caller persists the anchor from the returned instance). Once
// anchored, every action listening for the event's type and product is
// updated: OCCURRENCE actions complete immediately, COUNTER actions
// increment and complete when the threshold is reached. Incrementing a
// counter also re-scans the journey for other counter actions on the same
// event type whose threshold the new count now satisfies and completes
// them too (milestone subsumption).
//
// Events that match nothing are a silent no-op: the event stream is
// broadcast style and most events will not concern most journeys. Already
// completed actions are skipped, which makes replays idempotent.
func ProcessEvent(evt models.Event, journey models.Journey, instances []models.ActionInstance, entryAnchor *time.Time, now time.Time, ledger Ledger) Result {
	if entryAnchor == nil {
		return processEntry(evt, journey, instances)
	}

	var res Result
	for _, action := range journey.Actions {
		if action.EventType != evt.EventType || action.Product != evt.Product {
			continue
		}

		inst := findInstance(res.Updated, instances, action, entryAnchor)
		if inst.Completed() {
			continue
		}

		if action.CompletionMode == models.CompletionCounter {
			inst = incrementCounter(inst, evt.OccurredAt)
			res.Updated = upsert(res.Updated, inst)
			res.Updated = subsumeMilestones(res.Updated, instances, journey, action.EventType, inst.CurrentCount, entryAnchor, evt.OccurredAt)
		} else {
			inst = complete(inst, evt.OccurredAt)
			res.Updated = upsert(res.Updated, inst)
		}

		// Surface any reminders that are due on the action's final state.
		final := findInstance(res.Updated, instances, action, entryAnchor)
		res.Notifications = append(res.Notifications, CheckReminders(final, now, ledger)...)
	}
	return res
}

// processEntry handles the unanchored regime: nothing downstream can
// complete before the journey has an anchor.
func processEntry(evt models.Event, journey models.Journey, instances []models.ActionInstance) Result {
	entry := journey.EntryAction()
	if entry == nil || entry.EventType != evt.EventType || entry.Product != evt.Product {
		return Result{}
	}

	inst := findInstance(nil, instances, *entry, &evt.OccurredAt)
	if inst.Completed() {
		return Result{}
	}
	inst.AnchoredAt = &evt.OccurredAt
	inst = complete(inst, evt.OccurredAt)
	return Result{Updated: []models.ActionInstance{inst}}
}

// subsumeMilestones completes every counter action on the same event type
// whose threshold the new count satisfies. One burst of identical events can
// satisfy several differently thresholded actions at once, e.g. "workout x1"
// and "workout x5" both configured on WORKOUT_TRACKED.
func subsumeMilestones(updated []models.ActionInstance, instances []models.ActionInstance, journey models.Journey, eventType string, count int, entryAnchor *time.Time, occurredAt time.Time) []models.ActionInstance {
	for _, action := range journey.Actions {
		if action.EventType != eventType || action.CompletionMode != models.CompletionCounter {
			continue
		}
		required := action.Required()
		if required < 1 || count < required {
			continue
		}

		inst := findInstance(updated, instances, action, entryAnchor)
		if inst.Completed() {
			continue
		}
		updated = upsert(updated, complete(inst, occurredAt))
	}
	return updated
}

// findInstance resolves the working copy of an action's instance: the
// pending update if one exists, the current session instance otherwise, or
// a fresh lazily created instance for actions never touched before.
func findInstance(updated []models.ActionInstance, instances []models.ActionInstance, action models.Action, anchor *time.Time) models.ActionInstance {
	for _, inst := range updated {
		if inst.Action.ID == action.ID {
			return inst
		}
	}
	for _, inst := range instances {
		if inst.Action.ID == action.ID {
			return inst
		}
	}
	return NewInstance(action, anchor)
}

// NewInstance builds the initial runtime instance for an action. The
// deadline is resolved against the anchor when one is known; WITH_PREVIOUS
// deadlines stay nil until the predecessor completes.
func NewInstance(action models.Action, anchor *time.Time) models.ActionInstance {
	inst := models.ActionInstance{
		Action:     action,
		Status:     models.StatusNotDone,
		AnchoredAt: anchor,
	}
	if anchor != nil {
		inst.Deadline = ResolveDeadline(action.TimeRange, *anchor, nil)
	}
	return inst
}

func complete(inst models.ActionInstance, at time.Time) models.ActionInstance {
	inst.CompletedAt = &at
	inst.Status = models.StatusDone
	if inst.CompletionMode == models.CompletionCounter {
		inst.CurrentCount = inst.Required()
	}
	return inst
}

func incrementCounter(inst models.ActionInstance, occurredAt time.Time) models.ActionInstance {
	inst.CurrentCount++
	if required := inst.Required(); required > 0 && inst.CurrentCount >= required {
		return complete(inst, occurredAt)
	}
	inst.Status = Classify(inst.Action, inst.Deadline, occurredAt, inst.CompletedAt, inst.CurrentCount)
	return inst
}

func upsert(list []models.ActionInstance, inst models.ActionInstance) []models.ActionInstance {
	for i := range list {
		if list[i].Action.ID == inst.Action.ID {
			list[i] = inst
			return list
		}
	}
	return append(list, inst)
}
