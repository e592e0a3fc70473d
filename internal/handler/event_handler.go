package handler

import (
	"net/http"

	"SAFE_AISafetySuite/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleEvents godoc
// @Summary      이벤트 스트림 WebSocket 연결
// @Description  분석 라이프사이클 이벤트(큐잉/완료/실패, 모듈 상태 변화)를 실시간으로 수신합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Tags         WebSocket
// @Param        token query string true "로그인 시 발급받은 JWT 토큰"
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      401 {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/events [get]
func HandleEvents(c *gin.Context) {
	tokenString := c.Query("token")

	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	eventHub.Attach(conn, claims.Username)
}
