package admin

import (
	"github.com/agrimarket-logistics/internal/constants"
	handlershared "github.com/agrimarket-logistics/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// getOperator 当前操作员 ID，令牌只带角色时为 0
func getOperator(c *gin.Context) uint {
	id, _ := handlershared.GetContextUint(c, constants.CtxKeyAdminID)
	return id
}
