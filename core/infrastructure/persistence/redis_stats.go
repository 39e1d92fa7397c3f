package persistence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"tingtrainer/common/database"
	"tingtrainer/core/domain/entity"
	"tingtrainer/core/domain/repository"
)

const (
	sessionKeyPrefix = "tingtrainer:session:" // uid -> hash
	playerKeyPrefix  = "tingtrainer:player:"  // player -> set(uid)
)

// RedisStatsRepository 每个会话一个 hash，玩家维度用 set 做索引
type RedisStatsRepository struct {
	redis *database.RedisManager
}

func NewRedisStatsRepository(redis *database.RedisManager) repository.StatsRepository {
	return &RedisStatsRepository{redis: redis}
}

func sessionKey(uid string) string { return sessionKeyPrefix + uid }

func playerKey(player string) string { return playerKeyPrefix + player + ":sessions" }

func (r *RedisStatsRepository) Save(ctx context.Context, record *entity.SessionRecord) error {
	if err := validate(record); err != nil {
		return err
	}
	cli, err := r.redis.GetClient()
	if err != nil {
		return err
	}
	_, err = cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, sessionKey(record.UID), recordToHash(record))
		pipe.SAdd(ctx, playerKey(record.Player), record.UID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("保存练习记录失败: %w", err)
	}
	return nil
}

func (r *RedisStatsRepository) Summary(ctx context.Context, player, mode string) (*entity.PlayerSummary, error) {
	cli, err := r.redis.GetClient()
	if err != nil {
		return nil, err
	}
	uids, err := cli.SMembers(ctx, playerKey(player)).Result()
	if err != nil {
		return nil, fmt.Errorf("查询玩家会话失败: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, 0, len(uids))
	_, err = cli.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, uid := range uids {
			cmds = append(cmds, pipe.HGetAll(ctx, sessionKey(uid)))
		}
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("查询练习记录失败: %w", err)
	}

	summary := &entity.PlayerSummary{Player: player, Mode: mode}
	for _, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		rec, ok := hashToRecord(fields)
		if !ok || (mode != "" && rec.Mode != mode) {
			continue
		}
		summary.Add(rec.Correct, rec.Total, rec.AvgTime)
	}
	return summary, nil
}

func (r *RedisStatsRepository) Close() error {
	return r.redis.Close()
}

func recordToHash(record *entity.SessionRecord) map[string]interface{} {
	return map[string]interface{}{
		"uid":        record.UID,
		"player":     record.Player,
		"mode":       record.Mode,
		"started_at": record.StartedAt.Format(time.RFC3339),
		"correct":    record.Correct,
		"total":      record.Total,
		"avg_time":   strconv.FormatFloat(record.AvgTime, 'f', -1, 64),
	}
}

func hashToRecord(fields map[string]string) (*entity.SessionRecord, bool) {
	correct, err1 := strconv.Atoi(fields["correct"])
	total, err2 := strconv.Atoi(fields["total"])
	avg, err3 := strconv.ParseFloat(fields["avg_time"], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}
	started, _ := time.Parse(time.RFC3339, fields["started_at"])
	return &entity.SessionRecord{
		UID:       fields["uid"],
		Player:    fields["player"],
		Mode:      fields["mode"],
		StartedAt: started,
		Correct:   correct,
		Total:     total,
		AvgTime:   avg,
	}, true
}
