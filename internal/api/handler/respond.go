package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"

	"interview-ai-go/internal/pipeline"
	"interview-ai-go/internal/tracing"
)

// writeError 把业务错误翻译成HTTP状态码：
// 记录不存在 -> 404，非法输入 -> 400，状态冲突 -> 409，其余 -> 500。
// 同时把错误分类记录到当前请求的span上
func writeError(ctx context.Context, c *app.RequestContext, err error) {
	span := trace.SpanFromContext(ctx)

	switch {
	case errors.Is(err, pipeline.ErrNotFound):
		tracing.RecordError(span, err, tracing.ErrorTypeNotFound)
		c.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
	case errors.Is(err, pipeline.ErrInvalidInput):
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		c.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
	case errors.Is(err, pipeline.ErrConflict):
		tracing.RecordError(span, err, tracing.ErrorTypeConflict)
		c.JSON(consts.StatusConflict, utils.H{"error": err.Error()})
	default:
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		c.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
	}
}

// pathID 解析路径参数里的数字ID
func pathID(c *app.RequestContext, name string) (uint64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "非法的" + name + "参数: " + raw})
		return 0, false
	}
	return id, true
}
