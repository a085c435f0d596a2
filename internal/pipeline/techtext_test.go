package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-ai-go/internal/storage/models"
)

var testCatalog = []models.TechStack{
	{ID: 1, Title: "Java"},
	{ID: 2, Title: "Spring Boot"},
	{ID: 3, Title: "MySQL"},
	{ID: 4, Title: "Go"},
	{ID: 5, Title: "Redis"},
}

// TestAppendTechMarker 验证标记的拼接格式逐字节符合旧版约定
func TestAppendTechMarker(t *testing.T) {
	got := appendTechMarker("전자상거래 플랫폼 개발", []string{"Spring Boot", "MySQL"})
	assert.Equal(t, "전자상거래 플랫폼 개발 (사용 기술: Spring Boot, MySQL)", got)
}

// TestAppendTechMarkerEmptyTitles 验证没有次要技术栈时描述保持原样
func TestAppendTechMarkerEmptyTitles(t *testing.T) {
	assert.Equal(t, "원본 설명", appendTechMarker("원본 설명", nil))
	assert.Equal(t, "원본 설명", appendTechMarker("원본 설명", []string{}))
}

// TestExtractTechTitles 验证标准标记能被正确解析
func TestExtractTechTitles(t *testing.T) {
	titles := extractTechTitles("전자상거래 플랫폼 개발 (사용 기술: Spring Boot, MySQL)")
	assert.Equal(t, []string{"Spring Boot", "MySQL"}, titles)
}

// TestExtractTechTitlesNoMarker 验证没有标记的描述返回nil
func TestExtractTechTitlesNoMarker(t *testing.T) {
	assert.Nil(t, extractTechTitles("마커가 없는 일반 설명"))
	assert.Nil(t, extractTechTitles(""))
}

// TestExtractTechTitlesEmptyCapture 验证标记后为空时返回nil
func TestExtractTechTitlesEmptyCapture(t *testing.T) {
	assert.Nil(t, extractTechTitles("설명 (사용 기술: )"))
}

// TestTechMarkerRoundTrip 验证写入再解析能还原同一组标题
func TestTechMarkerRoundTrip(t *testing.T) {
	titles := []string{"Java", "Spring Boot", "MySQL"}
	encoded := appendTechMarker("프로젝트 설명", titles)
	decoded := extractTechTitles(encoded)
	assert.Equal(t, titles, decoded)
}

// TestExtractTechTitlesLossyParen 标题含 ')' 时编码有损：
// 解析在第一个 ')' 处截断，这是已知行为
func TestExtractTechTitlesLossyParen(t *testing.T) {
	encoded := appendTechMarker("설명", []string{"C++ (modern)", "Go"})
	decoded := extractTechTitles(encoded)
	require.Len(t, decoded, 1)
	assert.Equal(t, "C++ (modern", decoded[0])
}

// TestMatchTitlesToStacks 验证目录匹配：精确命中、跳过未知、跳过重复
func TestMatchTitlesToStacks(t *testing.T) {
	seen := make(map[uint64]bool)
	matched := matchTitlesToStacks([]string{"Spring Boot", "Unknown", "MySQL", "Spring Boot"}, testCatalog, seen)

	require.Len(t, matched, 2)
	assert.Equal(t, uint64(2), matched[0].ID)
	assert.Equal(t, uint64(3), matched[1].ID)
}

// TestMatchTitlesToStacksCaseSensitive 验证匹配区分大小写
func TestMatchTitlesToStacksCaseSensitive(t *testing.T) {
	seen := make(map[uint64]bool)
	matched := matchTitlesToStacks([]string{"java", "JAVA", "Java"}, testCatalog, seen)

	require.Len(t, matched, 1)
	assert.Equal(t, "Java", matched[0].Title)
}

// TestMatchTitlesToStacksSeenSkipped 验证已收集过的ID不会重复出现
func TestMatchTitlesToStacksSeenSkipped(t *testing.T) {
	seen := map[uint64]bool{1: true}
	matched := matchTitlesToStacks([]string{"Java", "Go"}, testCatalog, seen)

	require.Len(t, matched, 1)
	assert.Equal(t, "Go", matched[0].Title)
}
