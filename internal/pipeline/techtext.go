package pipeline

import (
	"strings"

	"interview-ai-go/internal/storage/models"
)

// 旧版系统把项目的次要技术栈以固定标记写进description文本。
// 标记格式必须逐字节保持一致，否则存量数据无法解析：
//
//	"<原始描述> (사용 기술: <title1>, <title2>, ...)"
//
// 解析规则同样固定：取标记之后、第一个 ')' 之前的内容，按 ", " 切分。
// title中含有 ')' 或 ", " 时该编码无法还原，这是已知的有损行为
const (
	techMarker      = " (사용 기술: "
	techMarkerToken = "사용 기술: "
)

// appendTechMarker 把次要技术栈标题列表追加到描述文本后
func appendTechMarker(description string, titles []string) string {
	if len(titles) == 0 {
		return description
	}
	var b strings.Builder
	b.WriteString(description)
	b.WriteString(techMarker)
	b.WriteString(strings.Join(titles, ", "))
	b.WriteString(")")
	return b.String()
}

// extractTechTitles 从描述文本中解析出技术栈标题列表。
// 没有标记时返回nil
func extractTechTitles(description string) []string {
	idx := strings.Index(description, techMarkerToken)
	if idx < 0 {
		return nil
	}

	captured := description[idx+len(techMarkerToken):]
	if end := strings.Index(captured, ")"); end >= 0 {
		captured = captured[:end]
	}
	if captured == "" {
		return nil
	}

	parts := strings.Split(captured, ", ")
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// matchTitlesToStacks 用标题在目录里做精确匹配（区分大小写），
// 匹配不到的标题跳过，已收集过的ID跳过
func matchTitlesToStacks(titles []string, catalog []models.TechStack, seen map[uint64]bool) []models.TechStack {
	var matched []models.TechStack
	for _, title := range titles {
		for _, stack := range catalog {
			if stack.Title == title && !seen[stack.ID] {
				seen[stack.ID] = true
				matched = append(matched, stack)
				break
			}
		}
	}
	return matched
}
