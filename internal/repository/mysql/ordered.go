package mysql

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

var (
	ErrCrossScopeReorder   = errors.New("item does not belong to scope")
	ErrDuplicateOrder      = errors.New("duplicate order index")
	ErrPartialReorder      = errors.New("reorder must name every item in scope")
	ErrTargetScopeMismatch = errors.New("target scope is not sibling-compatible")
)

// HasChildrenError blocks a delete until the caller decides where the
// children should go.
type HasChildrenError struct {
	Count int64
}

func (e *HasChildrenError) Error() string {
	return fmt.Sprintf("scope still holds %d children", e.Count)
}

// OrderUpdate is one requested (id, index) pair for a bulk re-sequencing.
type OrderUpdate struct {
	ID       uint64
	OrderIdx int
}

// nextOrderIdx computes MAX(order_idx)+1 within a scope; an empty scope
// yields 0. Must run in the same transaction as the insert that uses it,
// otherwise two concurrent appends can read the same max. order_idx is an
// ordering hint, not a hard uniqueness constraint, so a lost race degrades
// sort stability without corrupting data.
func nextOrderIdx(tx *gorm.DB, mdl any, scopeCol string, scopeID uint64) (int, error) {
	var max *int
	err := tx.Model(mdl).
		Where(scopeCol+" = ?", scopeID).
		Select("MAX(order_idx)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// shiftUpFrom opens a slot at fromIdx by pushing every item at or above it
// one position up, skipping excludeID (the item being moved).
func shiftUpFrom(tx *gorm.DB, mdl any, scopeCol string, scopeID uint64, fromIdx int, excludeID uint64) error {
	return tx.Model(mdl).
		Where(scopeCol+" = ? AND order_idx >= ? AND id <> ?", scopeID, fromIdx, excludeID).
		UpdateColumn("order_idx", gorm.Expr("order_idx + 1")).Error
}

// normalizeOrder validates a requested ordering against the ids actually in
// the scope and returns the ids sorted by requested index. Requested indices
// need not be contiguous; the caller reassigns dense 0..n-1 positions in the
// returned order. The input must cover the scope completely, otherwise the
// renumbering would collide with the items left out.
func normalizeOrder(updates []OrderUpdate, inScope map[uint64]bool) ([]uint64, error) {
	seenIdx := make(map[int]bool, len(updates))
	seenID := make(map[uint64]bool, len(updates))
	for _, u := range updates {
		if !inScope[u.ID] {
			return nil, ErrCrossScopeReorder
		}
		if seenIdx[u.OrderIdx] || seenID[u.ID] {
			return nil, ErrDuplicateOrder
		}
		seenIdx[u.OrderIdx] = true
		seenID[u.ID] = true
	}
	if len(seenID) != len(inScope) {
		return nil, ErrPartialReorder
	}
	sorted := make([]OrderUpdate, len(updates))
	copy(sorted, updates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OrderIdx < sorted[j].OrderIdx })

	ids := make([]uint64, len(sorted))
	for i, u := range sorted {
		ids[i] = u.ID
	}
	return ids, nil
}
