package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tingtrainer/common/config"
	"tingtrainer/common/http"
	"tingtrainer/common/log"
	"tingtrainer/core/domain/repository"
	"tingtrainer/core/infrastructure/persistence"
	"tingtrainer/engines/mahjong"
	"tingtrainer/gate/api"
	"tingtrainer/trainer"
)

// NewServer 组装网关，stats 由调用方负责关闭
func NewServer(conf *config.Config, stats repository.StatsRepository) (*http.HttpServer, func(), error) {
	store, err := trainer.NewCacheStore(conf.QuizConf.MaxCost, conf.QuizConf.TTL)
	if err != nil {
		return nil, nil, err
	}
	agari, err := trainer.NewBoundedAgariCache(conf.EngineConf.AgariCacheSize)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	// 代价缓存进程内共享，和牌缓存有上限
	searcher := mahjong.NewSearcher(
		mahjong.WithCostCache(mahjong.NewMemoCache()),
		mahjong.WithAgariCache(agari),
	)
	svc := trainer.NewService(trainer.NewDealer(searcher, conf.QuizConf.Seed), store, stats)

	server := http.NewHttpServer(
		http.WithPort(conf.HttpPort),
		http.WithMode(conf.Log.Level),
	)
	server.Use(
		http.CorsMiddleware(),
		http.LoggerMiddleware(),
	)
	api.RegisterRoutes(server, api.NewHandler(searcher, svc, conf.JwtConf))
	cleanup := func() {
		store.Close()
		agari.Close()
	}
	return server, cleanup, nil
}

func Run(ctx context.Context, conf *config.Config) error {
	stats, err := persistence.NewStatsRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer stats.Close()

	server, cleanup, err := NewServer(conf, stats)
	if err != nil {
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", conf.HttpPort)
		errCh <- server.Start()
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(c)
	select {
	case <-ctx.Done():
		stop()
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP 服务器启动失败: %w", err)
		}
		return nil
	case s := <-c:
		stop()
		if s == syscall.SIGHUP {
			log.Info("挂起信号，服务停止")
		} else {
			log.Info("中断信号，服务停止")
		}
		return nil
	}
}
