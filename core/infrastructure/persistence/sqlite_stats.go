package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tingtrainer/core/domain/entity"
	"tingtrainer/core/domain/repository"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS training_sessions (
	uid        TEXT PRIMARY KEY,
	player     TEXT NOT NULL,
	mode       TEXT NOT NULL,
	started_at TEXT NOT NULL,
	correct    INTEGER NOT NULL,
	total      INTEGER NOT NULL,
	avg_time   REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_player_mode ON training_sessions(player, mode);`

// SqliteStatsRepository 单机部署时不想维护 CSV 的选择
type SqliteStatsRepository struct {
	db *sql.DB
}

// NewSqliteStatsRepository 不存在则创建库文件和表
func NewSqliteStatsRepository(dsn string) (repository.StatsRepository, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化 sqlite 表失败: %w", err)
	}
	return &SqliteStatsRepository{db: db}, nil
}

func (r *SqliteStatsRepository) Save(ctx context.Context, record *entity.SessionRecord) error {
	if err := validate(record); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO training_sessions (uid, player, mode, started_at, correct, total, avg_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			correct = excluded.correct,
			total = excluded.total,
			avg_time = excluded.avg_time`,
		record.UID, record.Player, record.Mode, record.StartedAt.Format(time.RFC3339),
		record.Correct, record.Total, record.AvgTime,
	)
	if err != nil {
		return fmt.Errorf("保存练习记录失败: %w", err)
	}
	return nil
}

func (r *SqliteStatsRepository) Summary(ctx context.Context, player, mode string) (*entity.PlayerSummary, error) {
	query := `SELECT correct, total, avg_time FROM training_sessions WHERE player = ?`
	args := []any{player}
	if mode != "" {
		query += ` AND mode = ?`
		args = append(args, mode)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询练习记录失败: %w", err)
	}
	defer rows.Close()

	summary := &entity.PlayerSummary{Player: player, Mode: mode}
	for rows.Next() {
		var correct, total int
		var avg float64
		if err := rows.Scan(&correct, &total, &avg); err != nil {
			return nil, err
		}
		summary.Add(correct, total, avg)
	}
	return summary, rows.Err()
}

func (r *SqliteStatsRepository) Close() error {
	return r.db.Close()
}
