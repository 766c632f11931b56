package constant

const (
	DefaultUserRoleID = 1
	DefaultTokenType  = "Bearer"

	// LifecycleTokenBytes is the entropy of activation and reset tokens
	// before base64url encoding.
	LifecycleTokenBytes = 32
)
