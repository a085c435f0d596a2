package pipeline

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrNotFound     = errors.New("记录不存在")
	ErrInvalidInput = errors.New("非法输入")
	ErrConflict     = errors.New("状态冲突")
)

// PipelineError 包含实体和ID信息的自定义错误，所有业务失败都带着出错的ID返回给调用方
type PipelineError struct {
	Entity  string
	ID      uint64
	Op      string
	BaseErr error
	Detail  string
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (实体:%s, ID:%d, 操作:%s): %s", e.BaseErr, e.Entity, e.ID, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s (实体:%s, ID:%d, 操作:%s)", e.BaseErr, e.Entity, e.ID, e.Op)
}

func (e *PipelineError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数

func newNotFoundError(entity string, id uint64, op string) error {
	return &PipelineError{
		Entity:  entity,
		ID:      id,
		Op:      op,
		BaseErr: ErrNotFound,
	}
}

func newInvalidInputError(entity string, op string, detail string) error {
	return &PipelineError{
		Entity:  entity,
		Op:      op,
		BaseErr: ErrInvalidInput,
		Detail:  detail,
	}
}

func newConflictError(entity string, id uint64, op string, detail string) error {
	return &PipelineError{
		Entity:  entity,
		ID:      id,
		Op:      op,
		BaseErr: ErrConflict,
		Detail:  detail,
	}
}
