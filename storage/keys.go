package storage

// Logical key names. Every persisted entity lives under exactly one of these,
// prefixed with the configurable key prefix.
const (
	keyUsers        = "registered_users"
	keyCurrentUser  = "current_user"
	keyAuthToken    = "auth_token"
	keyUserProfile  = "user_profile"
	keyDailyRecords = "daily_records"
	keyUserSettings = "user_settings"
	keyTutorialSeen = "tutorial_seen"
	keyCredentials  = "credentials"
)

// knownKeys lists every logical key, in the order stats and clear-all walk them.
var knownKeys = []string{
	keyUsers,
	keyCurrentUser,
	keyAuthToken,
	keyUserProfile,
	keyDailyRecords,
	keyUserSettings,
	keyTutorialSeen,
	keyCredentials,
}

// key returns the fully prefixed store key for a logical name.
func (s *Service) key(name string) string {
	return s.keyPrefix + name
}
