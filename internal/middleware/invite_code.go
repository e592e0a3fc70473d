package middleware

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// 가입 초대 코드 검사, 데모 배포에서 무분별한 계정 생성 방지용
func InviteCodeMiddleware() gin.HandlerFunc {
	inviteCode := os.Getenv("SIGNUP_INVITE_CODE")
	if inviteCode == "" {
		log.Println("[WARN] SIGNUP_INVITE_CODE가 없음, 초대 코드 검사 생략")
	}
	return func(c *gin.Context) {
		if inviteCode == "" {
			c.Next()
			return
		}
		clientKey := c.GetHeader("X-Invite-Code")

		if clientKey != inviteCode {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid invite code"})
			return
		}
		c.Next()
	}
}
