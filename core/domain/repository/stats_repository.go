package repository

import (
	"context"

	"tingtrainer/core/domain/entity"
)

// StatsRepository 练习成绩仓储
type StatsRepository interface {
	// Save 按 UID 覆盖写入，同一会话只有一条记录
	Save(ctx context.Context, record *entity.SessionRecord) error

	// Summary 聚合玩家历史成绩，mode 为空时统计全部模式
	Summary(ctx context.Context, player, mode string) (*entity.PlayerSummary, error)

	Close() error
}
