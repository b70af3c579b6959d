package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/bikeparts/internal/models"
	pgrepo "github.com/yoockh/bikeparts/internal/repositories/postgres"
)

const (
	DefaultAuditStream = "audit:stream"
	DefaultAuditGroup  = "audit-writers"

	entryField = "entry"

	// bounds each insert+ack so a batch still finishes after shutdown
	writeTimeout = 10 * time.Second
)

// AuditQueue appends audit entries to a Redis stream. It satisfies the
// same Insert contract as the Postgres repository, so the audit service can
// write through either.
type AuditQueue struct {
	rdb    *redis.Client
	stream string
}

func NewAuditQueue(rdb *redis.Client, stream string) *AuditQueue {
	if stream == "" {
		stream = DefaultAuditStream
	}
	return &AuditQueue{rdb: rdb, stream: stream}
}

func (q *AuditQueue) Insert(ctx context.Context, e *models.AuditEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{entryField: string(b)},
	}).Err()
}

// AuditWorkerPool drains the audit stream into Postgres.
type AuditWorkerPool struct {
	Redis      *redis.Client
	Repo       pgrepo.AuditRepository
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
	Block          time.Duration

	wg sync.WaitGroup
}

func (p *AuditWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Repo == nil {
		return errors.New("AuditWorkerPool missing dependency: Redis/Repo must be set")
	}
	if p.Stream == "" {
		p.Stream = DefaultAuditStream
	}
	if p.Group == "" {
		p.Group = DefaultAuditGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Block <= 0 {
		p.Block = 5 * time.Second
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	// entries delivered before a crash or an interrupted shutdown
	if n, err := p.reclaimPending(ctx); err != nil {
		p.Logger.WithError(err).Warn("audit reclaim failed")
	} else if n > 0 {
		p.Logger.Infof("reclaimed %d pending audit entries", n)
	}

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.runConsumer(ctx, consumer)
		}()
	}
	return nil
}

// Wait blocks until every consumer has returned after ctx is cancelled.
func (p *AuditWorkerPool) Wait() { p.wg.Wait() }

func (p *AuditWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    p.Block,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}

		// the batch is finished even if ctx is cancelled meanwhile
		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.process(ctx, msg)
			}
		}
	}
}

// reclaimPending claims every entry still pending in the group and writes
// it. It runs once in Start, before any consumer is reading.
func (p *AuditWorkerPool) reclaimPending(ctx context.Context) (int, error) {
	consumer := p.ConsumerPrefix + "-reclaim"
	start := "0-0"
	n := 0
	for {
		msgs, next, err := p.Redis.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   p.Stream,
			Group:    p.Group,
			Consumer: consumer,
			MinIdle:  0,
			Start:    start,
			Count:    50,
		}).Result()
		if err != nil {
			return n, err
		}
		for _, msg := range msgs {
			p.process(ctx, msg)
			n++
		}
		if next == "" || next == "0-0" {
			return n, nil
		}
		start = next
	}
}

// process writes one message and acks it under a context detached from
// shutdown.
func (p *AuditWorkerPool) process(ctx context.Context, msg redis.XMessage) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	p.handleMsg(wctx, msg)
	if err := p.Redis.XAck(wctx, p.Stream, p.Group, msg.ID).Err(); err != nil {
		p.Logger.WithError(err).WithField("redis_id", msg.ID).Warn("audit ack failed")
	}
}

// handleMsg writes one entry. Undecodable messages and failed inserts are
// logged and then acked like any other.
func (p *AuditWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	log := p.Logger.WithField("redis_id", msg.ID)

	raw, _ := msg.Values[entryField].(string)
	if raw == "" {
		log.Warn("audit message without entry")
		return
	}

	var e models.AuditEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		log.WithError(err).Warn("audit entry decode failed")
		return
	}

	if err := p.Repo.Insert(ctx, &e); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"actor":  e.Actor,
			"action": e.Action,
		}).Error("audit write failed")
	}
}
