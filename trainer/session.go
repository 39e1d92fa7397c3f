package trainer

import (
	"time"

	"github.com/google/uuid"

	"tingtrainer/core/domain/entity"
)

// Session 一次练习会话，同一会话只对应一条成绩记录
type Session struct {
	UID       string
	Player    string
	Mode      string
	StartedAt time.Time
	Correct   int
	Total     int
	Elapsed   time.Duration
}

func NewSession(player, mode string, now time.Time) *Session {
	return &Session{
		UID:       uuid.NewString(),
		Player:    player,
		Mode:      mode,
		StartedAt: now,
	}
}

func (s *Session) Add(v Verdict) {
	s.Total++
	if v.Correct {
		s.Correct++
	}
	s.Elapsed += v.Elapsed
}

// AvgTime 平均每题耗时（秒）
func (s *Session) AvgTime() float64 {
	if s.Total == 0 {
		return 0
	}
	return s.Elapsed.Seconds() / float64(s.Total)
}

func (s *Session) Record() *entity.SessionRecord {
	return &entity.SessionRecord{
		UID:       s.UID,
		Player:    s.Player,
		Mode:      s.Mode,
		StartedAt: s.StartedAt,
		Correct:   s.Correct,
		Total:     s.Total,
		AvgTime:   s.AvgTime(),
	}
}
