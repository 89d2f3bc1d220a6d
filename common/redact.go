package common

import "strings"

// SecretEnvVars lists the environment variables that may hold API credentials.
var SecretEnvVars = []string{
	"OPENAI_API_KEY",
	"ANTHROPIC_API_KEY",
	"LLM_API_KEY",
}

// Redact masks a secret, keeping the last four characters for recognisability
// when the secret is long enough that doing so leaks little.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) < 12 {
		return "[REDACTED]"
	}
	return "[REDACTED]..." + secret[len(secret)-4:]
}

// RedactString replaces every occurrence of the given secrets in s.
// Secrets shorter than four characters are ignored.
func RedactString(s string, secrets ...string) string {
	for _, secret := range secrets {
		if len(secret) < 4 {
			continue
		}
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}
