package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tingtrainer/common/database"
	"tingtrainer/common/log"
	"tingtrainer/core/domain/entity"
	"tingtrainer/core/domain/repository"
)

const sessionCollection = "training_sessions"

type MongoStatsRepository struct {
	mongo *database.MongoManager
}

func NewMongoStatsRepository(mongo *database.MongoManager) repository.StatsRepository {
	repo := &MongoStatsRepository{mongo: mongo}
	repo.initIndexes()
	return repo
}

func (r *MongoStatsRepository) collection() *mongo.Collection {
	return r.mongo.Db.Collection(sessionCollection)
}

// initIndexes 按玩家 + 模式聚合
func (r *MongoStatsRepository) initIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "player", Value: 1}, {Key: "mode", Value: 1}},
			Options: options.Index().SetName("idx_player_mode"),
		},
	}
	if _, err := r.collection().Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("创建 %s 索引失败: %v", sessionCollection, err)
	}
}

func (r *MongoStatsRepository) Save(ctx context.Context, record *entity.SessionRecord) error {
	if err := validate(record); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection().ReplaceOne(ctx, bson.M{"_id": record.UID}, record, opts); err != nil {
		log.Error("保存练习记录失败: %v", err)
		return fmt.Errorf("保存练习记录失败: %w", err)
	}
	return nil
}

func (r *MongoStatsRepository) Summary(ctx context.Context, player, mode string) (*entity.PlayerSummary, error) {
	filter := bson.M{"player": player}
	if mode != "" {
		filter["mode"] = mode
	}
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("查询练习记录失败: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entity.SessionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("解析练习记录失败: %w", err)
	}
	summary := &entity.PlayerSummary{Player: player, Mode: mode}
	for _, rec := range records {
		summary.Add(rec.Correct, rec.Total, rec.AvgTime)
	}
	return summary, nil
}

func (r *MongoStatsRepository) Close() error {
	return r.mongo.Close()
}
