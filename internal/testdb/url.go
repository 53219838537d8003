package testdb

import (
	"net/url"
	"os"
)

// Environment variables consulted for the test database, in order of
// preference.
const (
	EnvTestDBURL   = "FLASHDECK_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
)

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// DatabaseURL returns the first non-empty test database URL, or "".
func DatabaseURL() string {
	for _, name := range []string{EnvTestDBURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsCI reports whether the tests run under a CI system.
func IsCI() bool {
	for _, name := range ciVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// MaskURL hides the password of a database URL so it can be logged.
func MaskURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}
	u, err := url.Parse(dbURL)
	if err != nil || u.User == nil {
		return dbURL
	}
	if _, ok := u.User.Password(); !ok {
		return dbURL
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
