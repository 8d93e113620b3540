package config

import (
	"fmt"
	"os"
	"strings"
)

// Secrets holds every credential the server needs. It is built once at startup and passed
// by value to constructors.
type Secrets struct {
	JWTSecret string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioServiceSID string

	SupabaseDBURL string
	SupabaseDBKey string

	UpstashRedisURL   string
	UpstashRedisToken string

	OpenAIAPIKey string

	InstacartAPIKey  string
	InstacartStoreID string
}

// ConfigError lists every required variable that was missing or blank.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing, ", "))
}

type secretBinding struct {
	key    string
	target *string
}

func (s *Secrets) bindings() []secretBinding {
	return []secretBinding{
		{"JWT_SECRET", &s.JWTSecret},
		{"TWILIO_ACCOUNT_SID", &s.TwilioAccountSID},
		{"TWILIO_AUTH_TOKEN", &s.TwilioAuthToken},
		{"TWILIO_VERIFY_SERVICE_SID", &s.TwilioServiceSID},
		{"SUPABASE_DB_URL", &s.SupabaseDBURL},
		{"SUPABASE_DB_KEY", &s.SupabaseDBKey},
		{"UPSTASH_REDIS_URL", &s.UpstashRedisURL},
		{"UPSTASH_REDIS_TOKEN", &s.UpstashRedisToken},
		{"OPENAI_API_KEY", &s.OpenAIAPIKey},
		{"INSTACART_API_KEY", &s.InstacartAPIKey},
		{"INSTACART_STORE_ID", &s.InstacartStoreID},
	}
}

// LoadSecrets reads the required credentials from the environment. Every missing variable
// is reported, not just the first.
func LoadSecrets() (Secrets, error) {
	return loadSecrets(os.LookupEnv)
}

func loadSecrets(lookup func(string) (string, bool)) (Secrets, error) {
	var secrets Secrets
	var missing []string

	for _, b := range secrets.bindings() {
		value, _ := lookup(b.key)
		value = sanitizeEnv(value)
		if value == "" {
			missing = append(missing, b.key)
			continue
		}
		*b.target = value
	}

	if len(missing) > 0 {
		return Secrets{}, &ConfigError{Missing: missing}
	}
	return secrets, nil
}
