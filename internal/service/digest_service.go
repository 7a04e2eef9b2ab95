package service

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"flowdeck/internal/model"
	"flowdeck/internal/pkg"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

// DigestScheduler batches unsent notifications into at most one email per
// user per configured cadence. A timer fires RunOnce on a short interval;
// the scheduler itself decides per user whether a digest is due.
type DigestScheduler struct {
	users         *mysql.UserRepository
	notifications *mysql.NotificationRepository
	mailer        pkg.Mailer
	interval      time.Duration
	now           func() time.Time
	running       atomic.Bool
}

func NewDigestScheduler(db *gorm.DB, mailer pkg.Mailer, interval time.Duration) *DigestScheduler {
	return &DigestScheduler{
		users:         &mysql.UserRepository{DB: db},
		notifications: &mysql.NotificationRepository{DB: db},
		mailer:        mailer,
		interval:      interval,
		now:           time.Now,
	}
}

func (s *DigestScheduler) Run(ctx context.Context) {
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

// RunOnce processes all due users. Overlapping ticks are skipped so a slow
// run can never double-send. One user's failure never blocks the rest.
func (s *DigestScheduler) RunOnce() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer s.running.Store(false)

	users, err := s.users.ListDigestCandidates()
	if err != nil {
		log.Printf("digest candidates query err: %v", err)
		return
	}
	runTime := s.now()
	for i := range users {
		if err := s.processUser(&users[i], runTime); err != nil {
			log.Printf("digest for user %d err: %v", users[i].ID, err)
		}
	}
}

func (s *DigestScheduler) processUser(u *model.User, runTime time.Time) error {
	if !digestDue(u, runTime) {
		return nil
	}
	pending, err := s.notifications.ListUnemailed(u.ID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	messages := make([]string, len(pending))
	ids := make([]uint64, len(pending))
	for i, n := range pending {
		messages[i] = n.Message
		ids[i] = n.ID
	}
	// send first; only a successful send marks anything as emailed, so a
	// failed send leaves the batch pending for the next run
	if err := s.mailer(u.Email, "Your Flowdeck updates", pkg.DigestHTML(messages)); err != nil {
		return err
	}
	return s.notifications.MarkDigestSent(u.ID, ids, runTime)
}

// digestDue: never sent yet means due immediately; otherwise the configured
// cadence (1/24/168 hours) must have elapsed.
func digestDue(u *model.User, runTime time.Time) bool {
	hours := u.EmailDigestFrequency.Hours()
	if hours == 0 {
		return false
	}
	if u.LastDigestSentAt == nil {
		return true
	}
	return runTime.Sub(*u.LastDigestSentAt) >= time.Duration(hours)*time.Hour
}
