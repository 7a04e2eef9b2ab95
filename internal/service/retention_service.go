package service

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	// ActivityRetention bounds the append-only audit table.
	ActivityRetention = 30 * 24 * time.Hour
	// InvitationTTL: pending invitations older than this flip to expired.
	InvitationTTL = 7 * 24 * time.Hour
)

// RetentionSweeper is the system-level cleanup job: it permanently deletes
// trashed boards/cards past the restore window, expires stale invitations
// and prunes old activity logs. It runs with no role checks.
type RetentionSweeper struct {
	boards      *mysql.BoardRepository
	cards       *mysql.CardRepository
	invitations *mysql.InvitationRepository
	activities  *mysql.ActivityRepository
	interval    time.Duration
	now         func() time.Time
	running     atomic.Bool
}

func NewRetentionSweeper(db *gorm.DB, interval time.Duration) *RetentionSweeper {
	return &RetentionSweeper{
		boards:      &mysql.BoardRepository{DB: db},
		cards:       &mysql.CardRepository{DB: db},
		invitations: &mysql.InvitationRepository{DB: db},
		activities:  &mysql.ActivityRepository{DB: db},
		interval:    interval,
		now:         time.Now,
	}
}

func (s *RetentionSweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.RunOnce()
		}
	}
}

// RunOnce is safe to call while a previous invocation is still finishing:
// the overlap is skipped.
func (s *RetentionSweeper) RunOnce() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer s.running.Store(false)

	now := s.now()
	trashCutoff := now.Add(-TrashRetention)

	boards, err := s.boards.ListTrashedBefore(trashCutoff)
	if err != nil {
		log.Printf("retention board query err: %v", err)
	} else {
		for _, b := range boards {
			if err := s.boards.PermanentDelete(b.ID); err != nil {
				log.Printf("retention board delete %d err: %v", b.ID, err)
			}
		}
	}

	cards, err := s.cards.ListTrashedBefore(trashCutoff)
	if err != nil {
		log.Printf("retention card query err: %v", err)
	} else {
		for _, c := range cards {
			if err := s.cards.PermanentDelete(c.ID); err != nil {
				log.Printf("retention card delete %d err: %v", c.ID, err)
			}
		}
	}

	if _, err := s.invitations.ExpirePendingBefore(now.Add(-InvitationTTL)); err != nil {
		log.Printf("retention invitation expire err: %v", err)
	}
	if _, err := s.activities.DeleteLogsBefore(now.Add(-ActivityRetention)); err != nil {
		log.Printf("retention activity prune err: %v", err)
	}
}
