package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"gorm.io/gorm"
)

// TestPipelineErrorIs 验证包装后的错误仍能用 errors.Is 判定基础类型
func TestPipelineErrorIs(t *testing.T) {
	err := newNotFoundError("applicant", 42, "find")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))

	err = newInvalidInputError("applicant", "register", "username 不能为空")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = newConflictError("interview", 7, "complete", "面试已完成")
	assert.True(t, errors.Is(err, ErrConflict))
}

// TestPipelineErrorMessage 验证错误信息携带实体、ID和操作
func TestPipelineErrorMessage(t *testing.T) {
	err := newNotFoundError("tech_stack", 99, "register")
	msg := err.Error()
	assert.Contains(t, msg, "tech_stack")
	assert.Contains(t, msg, "99")
	assert.Contains(t, msg, "register")
}

// TestWrapDuplicateErr 验证GORM唯一键冲突被翻译为Conflict，其他错误原样透传
func TestWrapDuplicateErr(t *testing.T) {
	err := wrapDuplicateErr(gorm.ErrDuplicatedKey, "conversation", 3, "add_conversation_turn", "对话序号被并发占用")
	assert.True(t, errors.Is(err, ErrConflict))

	var pe *PipelineError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "conversation", pe.Entity)
	assert.Equal(t, uint64(3), pe.ID)

	other := errors.New("connection refused")
	assert.Equal(t, other, wrapDuplicateErr(other, "conversation", 3, "add_conversation_turn", ""))
	assert.Nil(t, wrapDuplicateErr(nil, "conversation", 3, "add_conversation_turn", ""))
}

// TestWrapLookupErr 验证GORM未命中被翻译为NotFound，其他错误原样透传
func TestWrapLookupErr(t *testing.T) {
	err := wrapLookupErr(gorm.ErrRecordNotFound, "applicant", 1, "find")
	assert.True(t, errors.Is(err, ErrNotFound))

	var pe *PipelineError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "applicant", pe.Entity)
	assert.Equal(t, uint64(1), pe.ID)

	other := errors.New("connection refused")
	assert.Equal(t, other, wrapLookupErr(other, "applicant", 1, "find"))
}
