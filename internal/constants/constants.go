package constants

import "time"

const (
	KafkaBatchTimeout = 10 * time.Millisecond
	KafkaWriteTimeout = 10 * time.Second
)

const (
	DirectoryHTTPTimeout = 3 * time.Second
)

const (
	CacheKeyPrefixSeen = "seen:"
	CacheKeyPrefixUser = "user:"
)

const (
	DefaultMessageTopic = "chat_messages"
	DefaultChannel      = "general"
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultWindowSize    = 1000
	DefaultWindowHours   = 24
	DefaultLimit         = 100
	MaxLimit             = 1000
	DefaultBucketMinutes = 5

	TopProblems     = 5
	TopQuestions    = 5
	TopWords        = 10
	TopWordsDisplay = 5
	TopActiveUsers  = 5

	ProblemContextLimit  = 100
	QuestionContextLimit = 80
	MinMessageLength     = 3
	MinSentenceLength    = 10
)

const (
	FallbackAllow = "allow"
	FallbackDeny  = "deny"
)

const (
	HTTPStatusOKMin = 200
	HTTPStatusOKMax = 300
)
