package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey 是 gin.Context 中的追踪 ID 键，日志中间件按此键取值
const requestIDKey = "request_id"

// requestIDMaxLen 限制客户端传入的 Request-ID 长度，防止日志注入
const requestIDMaxLen = 64

// RequestID 为每个请求分配追踪 ID：
// 客户端传入合法的 X-Request-ID 则沿用（App 重试同一上报时便于串联），
// 否则生成新 UUID。最终写入 gin.Context 与响应头。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

// validRequestID 只接受 UUID 形态的字符集（字母数字与连字符）
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		ch := rid[i]
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch == '-':
		default:
			return false
		}
	}
	return true
}
