// Package timeout defines centralized timeout constants for recognition.
// Package timeout 定义识别操作的集中式超时常量。
package timeout

import "time"

// Recognition timeout constants.
// 识别超时常量。
const (
	// MatchTimeout bounds a single pattern evaluation.
	// MatchTimeout 是单个正则匹配的超时时间。
	MatchTimeout = 2 * time.Second

	// RecognizeTimeout is the deadline of one recognize request.
	// RecognizeTimeout 是单次识别请求的超时时间。
	RecognizeTimeout = 10 * time.Second

	// BatchTimeout is the deadline of a whole batch request.
	// BatchTimeout 是批量识别请求的整体超时时间。
	BatchTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful server shutdown.
	ShutdownTimeout = 15 * time.Second

	// MaxBatchSize is the maximum number of queries per batch request.
	// MaxBatchSize 是单个批量请求的最大查询数量。
	MaxBatchSize = 100

	// MaxTextLength is the maximum rune length of one query.
	// MaxTextLength 是单条查询文本的最大长度（按 rune 计）。
	MaxTextLength = 4096

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	// MaxTruncateLength 是日志中字符串截断的最大长度。
	MaxTruncateLength = 200
)
