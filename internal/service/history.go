// Package service contains the business logic for the engraving service.
package service

import (
	"github.com/guttosm/engraving-service/internal/domain/model"
)

// RecordSnapshot appends a snapshot to a zone's history following the
// linear undo discipline: any entries beyond the current cursor are
// discarded first, then the snapshot is appended and the cursor advances to
// the new end. Appending is skipped when the snapshot is byte-identical to
// the entry at the cursor, so redundant mutation events never grow the
// history. Returns true if the history changed.
//
// Callers must not record while a snapshot is being restored (zone switch,
// undo, redo); the editor session enforces that with its restoring mode.
func RecordSnapshot(zs *model.ZoneState, snap model.Snapshot) bool {
	if len(zs.History) > 0 && snap.Equal(zs.History[zs.HistoryIndex]) {
		return false
	}
	zs.History = append(zs.History[:zs.HistoryIndex+1], snap)
	zs.HistoryIndex = len(zs.History) - 1
	return true
}

// Undo moves the zone's cursor one step back and returns the snapshot to
// restore. No-op at the lower bound.
func Undo(zs *model.ZoneState) (model.Snapshot, bool) {
	if zs.HistoryIndex <= 0 {
		return nil, false
	}
	zs.HistoryIndex--
	return zs.History[zs.HistoryIndex], true
}

// Redo moves the zone's cursor one step forward and returns the snapshot to
// restore. No-op at the upper bound.
func Redo(zs *model.ZoneState) (model.Snapshot, bool) {
	if zs.HistoryIndex >= len(zs.History)-1 {
		return nil, false
	}
	zs.HistoryIndex++
	return zs.History[zs.HistoryIndex], true
}
