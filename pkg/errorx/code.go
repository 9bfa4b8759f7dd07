package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008

	// Workflow codes
	StatusConflict   Code = 200001
	CapacityExceeded Code = 200002

	// Redemption codes
	InsufficientPoints Code = 300001

	// Refresh token codes
	TokenExpired Code = 400001
)
