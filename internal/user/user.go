// Package user identifies the operator running poise
package user

import (
	"os"
	"os/user"
)

// CurrentUsername returns the system username of the operator, falling back
// to the USER and USERNAME environment variables and finally "unknown".
func CurrentUsername() string {
	if currentUser, err := user.Current(); err == nil && currentUser.Username != "" {
		return currentUser.Username
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(key); name != "" {
			return name
		}
	}
	return "unknown"
}
