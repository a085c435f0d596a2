package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidApplicantStatus 验证状态合法性判定
func TestIsValidApplicantStatus(t *testing.T) {
	assert.True(t, IsValidApplicantStatus(StatusWaiting))
	assert.True(t, IsValidApplicantStatus(StatusInterviewing))
	assert.True(t, IsValidApplicantStatus(StatusCompleted))

	assert.False(t, IsValidApplicantStatus(""))
	assert.False(t, IsValidApplicantStatus("waiting"), "状态值区分大小写")
	assert.False(t, IsValidApplicantStatus("CANCELLED"))
}
