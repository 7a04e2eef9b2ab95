package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"flowdeck/internal/model"
	"flowdeck/internal/pkg"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

// ActivityService appends audit rows. Record is fire-and-forget: the caller
// never waits on it and never sees its errors.
type ActivityService struct {
	repo *mysql.ActivityRepository
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{repo: &mysql.ActivityRepository{DB: db}}
}

func (s *ActivityService) Record(userID uint64, action, entityType string, entityID uint64, metadata map[string]any) {
	if s == nil {
		return
	}
	go func() {
		meta, _ := json.Marshal(metadata)
		entry := &model.ActivityLog{
			UserID:     userID,
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			Metadata:   string(meta),
		}
		payload, _ := json.Marshal(map[string]any{
			"event_time":  time.Now().UTC().Format(time.RFC3339Nano),
			"user_id":     userID,
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
			"metadata":    metadata,
		})
		if err := s.repo.Insert(entry, string(payload)); err != nil {
			log.Printf("activity record err: %v", err)
		}
	}()
}

func (s *ActivityService) ListByEntity(entityType string, entityID uint64, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByEntity(entityType, entityID, limit)
}

type Sender func(ctx context.Context, ob *model.ActivityOutbox) error

// ActivityRelayer drains the outbox to Kafka on a fixed interval.
type ActivityRelayer struct {
	repo      *mysql.ActivityRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewActivityRelayer(db *gorm.DB, sender Sender) *ActivityRelayer {
	return &ActivityRelayer{
		repo:      &mysql.ActivityRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *ActivityRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *ActivityRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPendingOutbox(ctx, r.batchSize)
	if err != nil {
		log.Printf("activity outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkOutboxFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkOutboxSent(ctx, ob.ID)
	}
}

// KafkaSender publishes one outbox row to the activity topic.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ActivityOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.UserID), []byte(ob.Payload))
	}
}

// LogSender is the fallback when no broker is configured.
func LogSender(ctx context.Context, ob *model.ActivityOutbox) error {
	log.Printf("ACTIVITY SEND action=%s user=%d payload=%s", ob.Action, ob.UserID, ob.Payload)
	return nil
}
