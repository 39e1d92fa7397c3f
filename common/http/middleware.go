package http

import (
	"strings"
	"time"

	"tingtrainer/common/jwts"
	"tingtrainer/common/log"
)

// PlayerKey 鉴权通过后玩家名存放在上下文中的 key
const PlayerKey = "player"

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, Token, X-Token")
		}
		// 预检请求
		if c.Method() == "OPTIONS" {
			c.AbortWithStatus(204)
		}
		return nil
	}
}

// LoggerMiddleware 请求结束后打一行访问日志
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("%s %s %d %v from %s", c.Method(), c.Path(), c.Status(), time.Since(start), c.ClientIP())
		return nil
	}
}

// AuthMiddleware 校验 JWT，成功后把玩家名写入上下文
func AuthMiddleware(secret string) MiddlewareFunc {
	return func(c *Context) error {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.GetHeader("Token")
		}
		if token == "" {
			token = c.GetHeader("X-Token")
		}
		if token == "" {
			c.Unauthorized("Missing authorization token")
			c.Abort()
			return nil
		}
		token = strings.TrimPrefix(token, "Bearer ")

		player, err := jwts.ParseToken(token, secret)
		if err != nil {
			log.Debug("token 校验失败: %v", err)
			c.Unauthorized("Invalid token")
			c.Abort()
			return nil
		}
		c.Set(PlayerKey, player)
		return nil
	}
}

// Player 鉴权中间件写入的玩家名
func (c *Context) Player() string {
	return c.GetString(PlayerKey)
}
