// Package metrics 编辑流程的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 命令路由结果
const (
	OutcomeDirect   = "direct"
	OutcomeDeferred = "deferred"
	OutcomeDenied   = "denied"
	OutcomeError    = "error"
)

// 待审批请求处理结果
const (
	ResolutionApproved = "approved"
	ResolutionRejected = "rejected"
	ResolutionFailed   = "failed"
)

var (
	// CommandsTotal 按命令与路由结果计数
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "editorial",
			Name:      "commands_total",
			Help:      "Total number of mutating commands by routing outcome",
		},
		[]string{"command", "outcome"},
	)

	// PendingResolutionsTotal 待审批请求处理次数
	PendingResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "editorial",
			Name:      "pending_resolutions_total",
			Help:      "Total number of pending request resolutions",
		},
		[]string{"outcome"},
	)

	// TransactionsTotal 事务结束次数
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "editorial",
			Name:      "transactions_total",
			Help:      "Total number of finished transactions",
		},
		[]string{"result"},
	)

	// IdentityCacheTotal 员工身份缓存命中情况
	IdentityCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "editorial",
			Name:      "identity_cache_total",
			Help:      "Staff identity cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordCommand 记录一次命令路由
func RecordCommand(command, outcome string) {
	CommandsTotal.WithLabelValues(command, outcome).Inc()
}

// RecordResolution 记录一次审批处理
func RecordResolution(outcome string) {
	PendingResolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordTransaction 记录事务结果 (committed / aborted)
func RecordTransaction(result string) {
	TransactionsTotal.WithLabelValues(result).Inc()
}

// RecordIdentityCache 记录缓存命中 (hit / miss / error)
func RecordIdentityCache(result string) {
	IdentityCacheTotal.WithLabelValues(result).Inc()
}
