package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mwaldrep/salesdesk/backend/model"
)

// Bulk action vocabulary. Stage moves use the "stage-" prefix followed
// by the literal stage value, e.g. "stage-Customer".
const (
	ActionArchive = "archive"
	ActionExport  = "export"

	stageActionPrefix = "stage-"
)

var (
	// ErrNoTargets rejects bulk calls with an empty id set.
	ErrNoTargets = errors.New("bulk action requires at least one target id")
	// ErrUnknownAction rejects action names outside the vocabulary.
	// Unknowns used to be silently ignored; surfacing them was the
	// deliberate change here.
	ErrUnknownAction = errors.New("unknown bulk action")
)

// StageAction builds the bulk action name that moves records to stage.
func StageAction(stage string) string {
	return stageActionPrefix + stage
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ApplyBulkContactAction applies a named action to the targeted
// contacts and returns a new collection of the same size and order.
// Ids not present in the collection are skipped. Archiving an already
// archived contact just refreshes its updated_at.
func ApplyBulkContactAction(records []model.Contact, action string, targetIDs []string, now time.Time) ([]model.Contact, error) {
	if len(targetIDs) == 0 {
		return nil, ErrNoTargets
	}
	targets := idSet(targetIDs)

	switch {
	case action == ActionArchive:
		result := make([]model.Contact, len(records))
		for i, c := range records {
			if targets[c.ID] {
				c.IsActive = false
				c.UpdatedAt = now
			}
			result[i] = c
		}
		return result, nil

	case action == ActionExport:
		// Side-channel action; the collection itself is untouched.
		return records, nil

	case strings.HasPrefix(action, stageActionPrefix):
		stage := strings.TrimPrefix(action, stageActionPrefix)
		if !model.ValidContactStage(stage) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		result := make([]model.Contact, len(records))
		for i, c := range records {
			if targets[c.ID] {
				c.Stage = model.ContactStage(stage)
				c.UpdatedAt = now
			}
			result[i] = c
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// ApplyBulkOpportunityAction applies a named action to the targeted
// opportunities. Opportunities have no archive flag (they are hard
// deleted individually), so the vocabulary here is stage moves and
// export.
func ApplyBulkOpportunityAction(records []model.Opportunity, action string, targetIDs []string, now time.Time) ([]model.Opportunity, error) {
	if len(targetIDs) == 0 {
		return nil, ErrNoTargets
	}
	targets := idSet(targetIDs)

	switch {
	case action == ActionExport:
		return records, nil

	case strings.HasPrefix(action, stageActionPrefix):
		stage := strings.TrimPrefix(action, stageActionPrefix)
		if !model.ValidOpportunityStage(stage) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		result := make([]model.Opportunity, len(records))
		for i, o := range records {
			if targets[o.ID] {
				o.Stage = model.OpportunityStage(stage)
				o.UpdatedAt = now
			}
			result[i] = o
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
