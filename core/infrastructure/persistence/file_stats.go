package persistence

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"tingtrainer/common/log"
	"tingtrainer/core/domain/entity"
	"tingtrainer/core/domain/repository"
)

var statsHeader = []string{"UID", "名字", "模式", "日期", "正确率", "平均耗时"}

// FileStatsRepository CSV 文件存储：UID,名字,模式,日期,正确率,平均耗时
// 兼容两种旧格式：5 列（没有模式，视为 Uniform）和 4 列（名字,日期,正确率,平均耗时）
type FileStatsRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileStatsRepository(path string) repository.StatsRepository {
	return &FileStatsRepository{path: path}
}

func (r *FileStatsRepository) Save(_ context.Context, record *entity.SessionRecord) error {
	if err := validate(record); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.readRows()
	if err != nil {
		return err
	}

	line := []string{
		record.UID,
		record.Player,
		record.Mode,
		record.StartedAt.Format(time.DateTime),
		record.Accuracy(),
		strconv.FormatFloat(record.AvgTime, 'f', 2, 64),
	}

	out := make([][]string, 0, len(rows)+2)
	out = append(out, statsHeader)
	found := false
	for _, row := range rows {
		if isHeader(row) {
			continue
		}
		if len(row) >= 1 && row[0] == record.UID {
			out = append(out, line)
			found = true
			continue
		}
		// 5 列旧数据在名字后补模式
		if len(row) == 5 {
			row = append([]string{row[0], row[1], entity.ModeUniform}, row[2:]...)
		}
		out = append(out, row)
	}
	if !found {
		out = append(out, line)
	}
	return r.writeRows(out)
}

func (r *FileStatsRepository) Summary(_ context.Context, player, mode string) (*entity.PlayerSummary, error) {
	r.mu.Lock()
	rows, err := r.readRows()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	summary := &entity.PlayerSummary{Player: player, Mode: mode}
	for _, row := range rows {
		if isHeader(row) {
			continue
		}
		var name, rowMode, acc, avg string
		rowMode = entity.ModeUniform
		switch len(row) {
		case 6:
			name, rowMode, acc, avg = row[1], row[2], row[4], row[5]
		case 5:
			name, acc, avg = row[1], row[3], row[4]
		case 4:
			name, acc, avg = row[0], row[2], row[3]
		default:
			continue
		}
		if name != player || (mode != "" && rowMode != mode) {
			continue
		}
		correct, total, ok := parseAccuracy(acc)
		if !ok {
			continue
		}
		avgTime, err := strconv.ParseFloat(strings.TrimSpace(avg), 64)
		if err != nil {
			continue
		}
		summary.Add(correct, total, avgTime)
	}
	return summary, nil
}

func (r *FileStatsRepository) Close() error { return nil }

func (r *FileStatsRepository) readRows() ([][]string, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取成绩文件失败: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("成绩文件 %s 存在无法解析的行: %v", r.path, err)
			continue
		}
		if len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], "\ufeff")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeRows 先写临时文件再改名，写一半失败不会破坏原文件
func (r *FileStatsRepository) writeRows(rows [][]string) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建成绩目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".stats-*.csv")
	if err != nil {
		return fmt.Errorf("写入成绩文件失败: %w", err)
	}
	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("写入成绩文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("写入成绩文件失败: %w", err)
	}
	return os.Rename(tmp.Name(), r.path)
}

func isHeader(row []string) bool {
	return len(row) > 0 && (row[0] == "UID" || (len(row) > 1 && row[1] == "名字") || row[0] == "名字")
}

func parseAccuracy(text string) (correct, total int, ok bool) {
	c, t, found := strings.Cut(strings.TrimSpace(text), "/")
	if !found {
		return 0, 0, false
	}
	correct, err1 := strconv.Atoi(c)
	total, err2 := strconv.Atoi(t)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return correct, total, true
}

func validate(record *entity.SessionRecord) error {
	if record == nil || record.UID == "" || record.Player == "" {
		return repository.ErrInvalidRecord
	}
	if strings.ContainsAny(record.Player, ",\n") {
		return fmt.Errorf("%w: player name %q", repository.ErrInvalidRecord, record.Player)
	}
	return nil
}
