package entity

import (
	"strconv"
	"time"
)

const (
	ModeUniform   = "Uniform"
	ModeHongZhong = "HongZhong"
)

// SessionRecord 一次练习会话的成绩，每个会话只保留一行，按 UID 覆盖
type SessionRecord struct {
	UID       string    `bson:"_id"`
	Player    string    `bson:"player"`
	Mode      string    `bson:"mode"`
	StartedAt time.Time `bson:"started_at"`
	Correct   int       `bson:"correct"`
	Total     int       `bson:"total"`
	AvgTime   float64   `bson:"avg_time"` // 平均每题耗时（秒）
}

// Accuracy 形如 "3/5"
func (r *SessionRecord) Accuracy() string {
	return strconv.Itoa(r.Correct) + "/" + strconv.Itoa(r.Total)
}

// PlayerSummary 某玩家历史成绩的汇总
type PlayerSummary struct {
	Player  string  `json:"player"`
	Mode    string  `json:"mode,omitempty"`
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	AvgTime float64 `json:"avgTime"`
}

// Add 按题数加权累计平均耗时
func (s *PlayerSummary) Add(correct, total int, avgTime float64) {
	if total <= 0 {
		return
	}
	sum := s.AvgTime*float64(s.Total) + avgTime*float64(total)
	s.Total += total
	s.Correct += correct
	s.AvgTime = sum / float64(s.Total)
}

// Rate 正确率，0-100
func (s *PlayerSummary) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Total)
}
