package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tingtrainer/common/config"
	"tingtrainer/common/log"
	"tingtrainer/common/metrics"
	"tingtrainer/gate/app"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "gate",
	Short: "gate 听牌训练 HTTP 网关",
	Long:  `gate 听牌训练 HTTP 网关：牌型分析、出题判题、成绩查询`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.Load(configFile)
		if err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		log.InitLog(conf.AppName, conf.Log.Level)
		log.Info("配置文件: %s, 存储: %s", configFile, conf.StatsConf.Driver)
		config.Watch(func(c *config.Config, err error) {
			if err != nil {
				log.Warn("%v", err)
				return
			}
			log.SetLevel(c.Log.Level)
		})

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}

		if err := app.Run(context.Background(), conf); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
