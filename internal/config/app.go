package config

import (
	"os"
	"strings"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return port
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func lookupList(key string) []string {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return nil
	}
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// AllowedOrigins lists the CORS origins from CORS_ALLOWED_ORIGINS. Empty
// means every origin.
func AllowedOrigins() []string {
	return lookupList("CORS_ALLOWED_ORIGINS")
}
