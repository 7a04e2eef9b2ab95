package service

import (
	"errors"
	"testing"
	"time"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

func digestFixture(t *testing.T) (*gorm.DB, *DigestScheduler, *[]sentMail) {
	db := openTestDB(t)
	var sent []sentMail
	s := NewDigestScheduler(db, func(to, subject, htmlBody string) error {
		sent = append(sent, sentMail{to, subject, htmlBody})
		return nil
	}, time.Minute)
	return db, s, &sent
}

func seedDigestUser(t *testing.T, db *gorm.DB, name string, freq model.DigestFrequency, lastSent *time.Time) *model.User {
	t.Helper()
	u := &model.User{
		Username:             name,
		Password:             "x",
		Email:                name + "@example.com",
		EmailDigestEnabled:   true,
		EmailDigestFrequency: freq,
		LastDigestSentAt:     lastSent,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func addPending(t *testing.T, db *gorm.DB, userID uint64, msg string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Notification{
		ReceiverID: userID,
		Type:       model.NotifyCommentAdded,
		Message:    msg,
	}).Error)
}

func TestDigestCadence(t *testing.T) {
	db, s, sent := digestFixture(t)
	now := time.Now()
	s.now = func() time.Time { return now }

	ago25h := now.Add(-25 * time.Hour)
	ago23h := now.Add(-23 * time.Hour)

	due := seedDigestUser(t, db, "due", model.DigestDaily, &ago25h)
	early := seedDigestUser(t, db, "early", model.DigestDaily, &ago23h)
	fresh := seedDigestUser(t, db, "fresh", model.DigestDaily, nil)
	off := seedDigestUser(t, db, "off", model.DigestNever, nil)

	for _, u := range []*model.User{due, early, fresh, off} {
		addPending(t, db, u.ID, "update for "+u.Username)
	}

	s.RunOnce()

	require.Len(t, *sent, 2)
	got := map[string]bool{}
	for _, m := range *sent {
		got[m.to] = true
		assert.Contains(t, m.body, "update for")
	}
	assert.True(t, got["due@example.com"])
	assert.True(t, got["fresh@example.com"], "never-sent user is due immediately")

	// the elapsed user got stamped; the early one did not
	users := &mysql.UserRepository{DB: db}
	u, err := users.FindByID(due.ID)
	require.NoError(t, err)
	require.NotNil(t, u.LastDigestSentAt)
	u, err = users.FindByID(early.ID)
	require.NoError(t, err)
	assert.True(t, u.LastDigestSentAt.Before(now.Add(-22*time.Hour)))

	// a second run in the same instant sends nothing new
	s.RunOnce()
	assert.Len(t, *sent, 2)
}

func TestDigestNothingPending(t *testing.T) {
	db, s, sent := digestFixture(t)
	seedDigestUser(t, db, "quiet", model.DigestDaily, nil)

	s.RunOnce()

	assert.Empty(t, *sent)
	// no send, no stamp: the user stays immediately due
	users := &mysql.UserRepository{DB: db}
	u, err := users.FindByEmail("quiet@example.com")
	require.NoError(t, err)
	assert.Nil(t, u.LastDigestSentAt)
}

func TestDigestSendFailureKeepsBatch(t *testing.T) {
	db := openTestDB(t)
	s := NewDigestScheduler(db, func(to, subject, htmlBody string) error {
		return errors.New("smtp down")
	}, time.Minute)

	u := seedDigestUser(t, db, "victim", model.DigestDaily, nil)
	addPending(t, db, u.ID, "one")
	addPending(t, db, u.ID, "two")

	s.RunOnce()

	// nothing marked emailed, nothing stamped; the next run retries
	repo := &mysql.NotificationRepository{DB: db}
	pending, err := repo.ListUnemailed(u.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	users := &mysql.UserRepository{DB: db}
	got, err := users.FindByID(u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastDigestSentAt)
}

func TestDigestRunOnceSkipsWhileRunning(t *testing.T) {
	db, s, sent := digestFixture(t)
	u := seedDigestUser(t, db, "due", model.DigestDaily, nil)
	addPending(t, db, u.ID, "update")

	s.running.Store(true)
	s.RunOnce()
	assert.Empty(t, *sent)

	s.running.Store(false)
	s.RunOnce()
	assert.Len(t, *sent, 1)
}

func TestDigestDue(t *testing.T) {
	now := time.Now()
	ago2h := now.Add(-2 * time.Hour)
	ago30m := now.Add(-30 * time.Minute)

	assert.False(t, digestDue(&model.User{EmailDigestFrequency: model.DigestNever}, now))
	assert.True(t, digestDue(&model.User{EmailDigestFrequency: model.DigestHourly}, now))
	assert.True(t, digestDue(&model.User{EmailDigestFrequency: model.DigestHourly, LastDigestSentAt: &ago2h}, now))
	assert.False(t, digestDue(&model.User{EmailDigestFrequency: model.DigestHourly, LastDigestSentAt: &ago30m}, now))
	assert.False(t, digestDue(&model.User{EmailDigestFrequency: model.DigestWeekly, LastDigestSentAt: &ago2h}, now))
}
