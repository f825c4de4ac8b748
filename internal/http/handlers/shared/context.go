package shared

import (
	"strconv"

	"github.com/agrimarket-logistics/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint 从上下文读取 uint 值，不存在或类型不符返回 false。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

// GetContextStrings 从上下文读取字符串列表
func GetContextStrings(c *gin.Context, key string) []string {
	value, exists := c.Get(key)
	if !exists {
		return nil
	}
	if list, ok := value.([]string); ok {
		return list
	}
	return nil
}

// ParseIDParam 解析路径中的 :id，非法时直接返回 400。
func ParseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
