package api

import (
	"strings"

	"tingtrainer/common/http"
	"tingtrainer/common/jwts"
	"tingtrainer/common/log"
)

// LoginHandler 练习工具没有账号体系，按玩家名直接签发 token
func (h *Handler) LoginHandler(c *http.Context) error {
	var req struct {
		Player string `json:"player" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	player := strings.TrimSpace(req.Player)
	if player == "" || len(player) > 64 || strings.ContainsAny(player, ",\n\r") {
		c.BadRequest("玩家名称不合法")
		return nil
	}

	token, err := jwts.GetToken(jwts.NewClaims(player, h.jwtConf.ExpireDuration()), h.jwtConf.Secret)
	if err != nil {
		log.Error("签发 token 失败: %v", err)
		return err
	}
	c.Success(map[string]any{"token": token, "player": player})
	return nil
}
