package constant

// Event types published to the event stream.
const (
	EventUserLogin         = "USER_LOGIN"
	EventUserRegistered    = "USER_REGISTERED"
	EventAnalysisCompleted = "ANALYSIS_COMPLETED"
	EventSystemBroadcast   = "SYSTEM_BROADCAST"
)

// Internal pubsub topics.
const (
	TopicArchiveAnalysis = "ARCHIVE_ANALYSIS"
)
