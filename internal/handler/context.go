package handler

type ContextKey string

var (
	UserCtxKey         ContextKey = "user"
	JobCtxKey          ContextKey = "job"
	ApplicationCtxKey  ContextKey = "application"
	CandidateCtxKey    ContextKey = "candidate"
	NotificationCtxKey ContextKey = "notification"
)
