package config

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnv overlays environment variables on top of file values.
// Unset or unparseable variables leave the current value alone.
func (c *Config) ApplyEnv() {
	c.GitHub.ProfileURL = EnvString("GITHUB_PROFILE_URL", c.GitHub.ProfileURL)
	c.GitHub.Token = EnvString("GITHUB_TOKEN", c.GitHub.Token)
	c.GitHub.PerPage = EnvInt("GITHUB_PER_PAGE", c.GitHub.PerPage)
	c.GitHub.RecentCount = EnvInt("GITHUB_RECENT_COUNT", c.GitHub.RecentCount)
	c.GitHub.APIBaseURL = EnvString("GITHUB_API_BASE_URL", c.GitHub.APIBaseURL)

	c.Resume.DocxPath = EnvString("RESUME_DOCX_PATH", c.Resume.DocxPath)
	c.Resume.GoogleAPIKey = EnvString("GOOGLE_API_KEY", c.Resume.GoogleAPIKey)
	c.Resume.ExtractRawText = EnvBool("RESUME_EXTRACT_RAW_TEXT", c.Resume.ExtractRawText)

	c.ResumeParser.BaseURL = EnvString("RESUME_PARSER_BASE_URL", c.ResumeParser.BaseURL)

	c.Server.Port = EnvInt("PORT", c.Server.Port)
	c.Server.CORSOrigin = EnvString("CORS_ORIGIN", c.Server.CORSOrigin)
}

// EnvString returns the value of key, or defaultValue when it is unset.
func EnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// EnvInt parses key as an integer.
func EnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// EnvBool parses key with strconv.ParseBool.
func EnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// EnvDuration parses key with time.ParseDuration.
func EnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
