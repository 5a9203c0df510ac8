package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrms/pkg/response"
)

// MustGetID 从路径参数中提取资源 ID。
// 主键为 UUID，格式不合法时写入 400 响应并返回 false，调用方应直接 return。
func MustGetID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" {
		response.ValidationFailed(c, 10001, "id", "ID 不能为空")
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		response.ValidationFailed(c, 10001, "id", "ID 格式错误")
		return "", false
	}
	return id, true
}
