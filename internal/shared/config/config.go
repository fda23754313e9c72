package config

import (
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port                string
	CORSAllowOrigin     []string
	ObjectStoreType     string
	LocalStoreDir       string
	AWSRegion           string
	S3Bucket            string
	S3Prefix            string
	BedrockAgentID      string
	BedrockAgentAliasID string
	DatabaseURL         string
	Env                 string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:     normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./uploads"),
		AWSRegion:           getEnv("AWS_REGION", "us-west-2"),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", ""),
		BedrockAgentID:      getEnv("BEDROCK_AGENT_ID", ""),
		BedrockAgentAliasID: getEnv("BEDROCK_AGENT_ALIAS_ID", ""),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Env:                 normalizeEnv(getEnv("ENV", "dev")),
	}
}

// AgentConfigured reports whether both Bedrock agent identifiers are set.
func (c Config) AgentConfigured() bool {
	return strings.TrimSpace(c.BedrockAgentID) != "" && strings.TrimSpace(c.BedrockAgentAliasID) != ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
