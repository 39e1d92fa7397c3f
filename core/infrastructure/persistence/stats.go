package persistence

import (
	"context"
	"fmt"
	"strings"

	"tingtrainer/common/config"
	"tingtrainer/common/database"
	"tingtrainer/common/log"
	"tingtrainer/core/domain/repository"
)

// NewStatsRepository 按 stats.driver 选择存储：file | sqlite | redis | mongo
func NewStatsRepository(ctx context.Context, conf *config.Config) (repository.StatsRepository, error) {
	driver := strings.ToLower(conf.StatsConf.Driver)
	switch driver {
	case "", "file":
		log.Info("练习记录写入文件 %s", conf.StatsConf.Path)
		return NewFileStatsRepository(conf.StatsConf.Path), nil
	case "sqlite":
		log.Info("练习记录写入 sqlite %s", conf.StatsConf.Path)
		return NewSqliteStatsRepository(conf.StatsConf.Path)
	case "redis":
		redis, err := database.NewRedis(ctx, conf.DatabaseConf.RedisConf)
		if err != nil {
			return nil, err
		}
		log.Info("练习记录写入 redis")
		return NewRedisStatsRepository(redis), nil
	case "mongo":
		mongo, err := database.NewMongo(ctx, conf.DatabaseConf.MongoConf)
		if err != nil {
			return nil, err
		}
		log.Info("练习记录写入 mongodb %s", conf.DatabaseConf.MongoConf.Db)
		return NewMongoStatsRepository(mongo), nil
	default:
		return nil, fmt.Errorf("%w: %q", repository.ErrUnknownDriver, conf.StatsConf.Driver)
	}
}
