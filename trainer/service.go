package trainer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tingtrainer/common/log"
	"tingtrainer/core/domain/entity"
	"tingtrainer/core/domain/repository"
)

// Result 一次作答的判题结果与会话累计
type Result struct {
	Verdict Verdict
	Session Session
}

// Service 发题、判题、记成绩。每个玩家每种模式一个会话，进程内有效
type Service struct {
	dealer *Dealer
	store  QuestionStore
	stats  repository.StatsRepository
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(dealer *Dealer, store QuestionStore, stats repository.StatsRepository) *Service {
	return &Service{
		dealer:   dealer,
		store:    store,
		stats:    stats,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (s *Service) Deal(player, mode string) (*Question, error) {
	q, err := s.dealer.Deal(player, mode)
	if err != nil {
		return nil, err
	}
	if !s.store.Put(q) {
		log.Warn("题目 %s 未能写入缓存", q.ID)
	}
	return q, nil
}

// Question 只能取到自己的题
func (s *Service) Question(player, id string) (*Question, error) {
	q, ok := s.store.Get(id)
	if !ok || q.Player != player {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
	}
	return q, nil
}

// Answer 判题并落库。答案无法解析时题目保留，可以重答。
// 取题、判题、删题在同一把锁内完成，同一题并发作答只有一次生效
func (s *Service) Answer(ctx context.Context, player, id, answer string) (*Result, error) {
	s.mu.Lock()
	q, err := s.Question(player, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	v, err := q.Judge(answer)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	v.Elapsed = s.now().Sub(q.DealtAt)
	s.store.Delete(id)

	key := player + "|" + q.Mode
	sess, ok := s.sessions[key]
	if !ok {
		sess = NewSession(player, q.Mode, q.DealtAt)
		s.sessions[key] = sess
	}
	sess.Add(v)
	snapshot := *sess
	s.mu.Unlock()

	if err := s.stats.Save(ctx, snapshot.Record()); err != nil {
		// 成绩写失败不影响本题结果
		log.Error("保存练习记录失败: %v", err)
	}
	return &Result{Verdict: v, Session: snapshot}, nil
}

func (s *Service) Summary(ctx context.Context, player, mode string) (*entity.PlayerSummary, error) {
	return s.stats.Summary(ctx, player, mode)
}
