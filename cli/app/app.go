package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tingtrainer/common/config"
	"tingtrainer/common/log"
	"tingtrainer/core/domain/entity"
	"tingtrainer/core/infrastructure/persistence"
	"tingtrainer/engines/mahjong"
	"tingtrainer/trainer"
)

// Run 组装依赖后进入答题循环，输入 q 或 EOF 退出
func Run(ctx context.Context, conf *config.Config, mode, player string, in io.Reader, out io.Writer) error {
	stats, err := persistence.NewStatsRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer stats.Close()

	store, err := trainer.NewCacheStore(conf.QuizConf.MaxCost, conf.QuizConf.TTL)
	if err != nil {
		return err
	}
	defer store.Close()

	agari, err := trainer.NewBoundedAgariCache(conf.EngineConf.AgariCacheSize)
	if err != nil {
		return err
	}
	defer agari.Close()

	searcher := mahjong.NewSearcher(
		mahjong.WithCostCache(mahjong.NewMemoCache()),
		mahjong.WithAgariCache(agari),
	)
	svc := trainer.NewService(trainer.NewDealer(searcher, conf.QuizConf.Seed), store, stats)
	return Play(ctx, svc, mode, player, in, out)
}

// Play 终端交互，与依赖组装分开便于测试
func Play(ctx context.Context, svc *trainer.Service, mode, player string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	prompt := func(text string) (string, bool) {
		fmt.Fprint(out, text)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	if player == "" {
		name, ok := prompt("请输入玩家名称: ")
		if !ok {
			return scanner.Err()
		}
		player = name
	}
	if player == "" {
		player = "Anonymous"
	}

	printBanner(ctx, svc, out, mode, player)

	for {
		q, err := svc.Deal(player, mode)
		if err != nil {
			return err
		}
		if mode == entity.ModeUniform {
			fmt.Fprintf(out, "\n当前手牌: %s\n", q.Ranks())
		} else {
			fmt.Fprintf(out, "\n当前手牌: %s\n", q.Hand)
		}

		for {
			label := "请打出一张牌："
			if mode == entity.ModeUniform {
				label = "请输入听牌数字："
			}
			input, ok := prompt(label)
			if !ok || strings.EqualFold(input, "q") {
				return scanner.Err()
			}
			if mode == entity.ModeUniform && strings.EqualFold(input, "h") {
				fmt.Fprintln(out, "\n提示分析：")
				for _, line := range q.Hint() {
					fmt.Fprintln(out, line)
				}
				continue
			}

			res, err := svc.Answer(ctx, player, q.ID, input)
			switch {
			case errors.Is(err, trainer.ErrTileNotInHand):
				fmt.Fprintln(out, "你手里没有这张牌！")
				continue
			case errors.Is(err, trainer.ErrBadAnswer):
				if mode == entity.ModeUniform {
					fmt.Fprintln(out, "输入格式错误，请重试。")
				} else {
					fmt.Fprintln(out, "输入无法识别，请重试（示例：1万, 2t, 红中）")
				}
				continue
			case err != nil:
				return err
			}
			printVerdict(out, mode, res)
			break
		}
	}
}

func printBanner(ctx context.Context, svc *trainer.Service, out io.Writer, mode, player string) {
	if mode == entity.ModeUniform {
		fmt.Fprintln(out, "=== 麻将清一色听牌训练 ===")
		fmt.Fprintln(out, "规则：手牌13张，输入你能胡的牌（数字1-9），如 '147'。输入 'h' 查看提示，'q' 退出。")
	} else {
		fmt.Fprintln(out, "=== 红中麻将听牌训练 ===")
		fmt.Fprintln(out, "规则：手牌14张（含红中），选择打出一张牌，使听牌有效张数最多。输入 'q' 退出。")
	}

	sum, err := svc.Summary(ctx, player, mode)
	if err != nil {
		log.Warn("读取历史记录失败: %v", err)
		return
	}
	if sum.Total > 0 {
		fmt.Fprintf(out, "欢迎 %s！历史记录(%s): 答题 %d 道，正确率 %.1f%%，平均耗时 %.2f秒\n",
			player, mode, sum.Total, sum.Rate(), sum.AvgTime)
	} else {
		fmt.Fprintf(out, "欢迎 %s！(新玩家)\n", player)
	}
	fmt.Fprintln(out, strings.Repeat("-", 40))
}

func printVerdict(out io.Writer, mode string, res *trainer.Result) {
	v := res.Verdict
	if mode == entity.ModeUniform {
		if v.Correct {
			fmt.Fprintln(out, "✅ 回答正确！")
		} else {
			fmt.Fprintln(out, "❌ 回答错误。")
			fmt.Fprintf(out, "你的答案: %v\n", v.Given)
			fmt.Fprintf(out, "正确答案: %v\n", v.Expected)
		}
	} else {
		if v.Correct {
			fmt.Fprintf(out, "✅ 回答正确！打出【%s】听 %d 张牌。\n", v.Discard, v.Score)
		} else {
			fmt.Fprintf(out, "❌ 回答错误。打出【%s】听 %d 张牌。\n", v.Discard, v.Score)
		}
		if len(v.DiscardWaits) > 0 {
			fmt.Fprintf(out, "   你的打法听: %s\n", strings.Join(v.DiscardWaits, " "))
		}
		if !v.Correct {
			names := make([]string, len(v.Best))
			for i, o := range v.Best {
				names[i] = o.Discard
			}
			fmt.Fprintf(out, "最优解是打出：%s，能听 %d 张。\n", strings.Join(names, " 或 "), v.Max)
			for _, o := range v.Best {
				fmt.Fprintf(out, "   打出【%s】听: %s\n", o.Discard, strings.Join(o.Waits, " "))
			}
		}
	}

	s := res.Session
	fmt.Fprintf(out, "本次耗时: %.2f秒\n", v.Elapsed.Seconds())
	fmt.Fprintf(out, "本次成绩: %d/%d (%.1f%%) | 平均耗时: %.2f秒\n",
		s.Correct, s.Total, float64(s.Correct)*100/float64(s.Total), s.AvgTime())
}
