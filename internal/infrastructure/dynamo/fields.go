package dynamo

// Attribute and index names shared by the repos and Bootstrap.
const (
	fieldEmail     = "email"
	fieldEnable    = "enable"
	fieldUpdatedAt = "updated_at"
	fieldExpiresAt = "expires_at"

	indexEmail = "email-index"
)
