package constants

// Pub/Sub provider names accepted by pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderNoop   = "noop"
)

// Password hasher names accepted by auth.passwordHasher.
const (
	PasswordHasherBcrypt   = "bcrypt"
	PasswordHasherArgon2id = "argon2id"
)

// Store drivers accepted by database.driver.
const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverMemory   = "memory"
)
