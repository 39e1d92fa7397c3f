package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tingtrainer/cli/app"
	"tingtrainer/common/config"
	"tingtrainer/common/log"
	"tingtrainer/common/metrics"
	"tingtrainer/core/domain/entity"
)

// 加载配置 -> 启动监控 -> 进入答题循环

var (
	configFile string
	logLevel   string
	player     string
	seed       int64
	conf       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tingtrainer",
	Short: "麻将听牌训练",
	Long:  `麻将听牌训练：uniform 清一色听牌，hongzhong 红中癞子打牌`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			conf.Log.Level = logLevel
		}
		if seed != 0 {
			conf.QuizConf.Seed = seed
		}
		log.InitLog(conf.AppName, conf.Log.Level)
		config.Watch(func(c *config.Config, err error) {
			if err != nil {
				log.Warn("%v", err)
				return
			}
			log.SetLevel(c.Log.Level)
			log.Info("配置已重新加载，日志级别: %s", c.Log.Level)
		})

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}
		return nil
	},
}

func modeCmd(use, short, mode string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(context.Background(), conf, mode, player, os.Stdin, os.Stdout)
		},
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "configFile", "", "resource file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&player, "player", "", "player name, prompted when empty")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "shuffle seed, 0 for random")

	rootCmd.AddCommand(
		modeCmd("uniform", "清一色听牌训练", entity.ModeUniform),
		modeCmd("hongzhong", "红中麻将打牌训练", entity.ModeHongZhong),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
