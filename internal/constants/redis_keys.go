package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// DashboardModulePrefix 看板模块
	DashboardModulePrefix = "dashboard"

	// EntityStats 统计实体
	EntityStats = "stats"

	// KeyDashboardStats 看板统计缓存 (STRING, JSON负载)
	// 格式: app:dashboard:stats
	KeyDashboardStats = AppPrefix + ":" + DashboardModulePrefix + ":" + EntityStats
)
