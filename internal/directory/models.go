package directory

import "context"

// DisplayInfo is the resolved identity of a chat platform user.
type DisplayInfo struct {
	Name        string `json:"name"`
	RealName    string `json:"real_name"`
	DisplayName string `json:"display_name"`
}

// Provider looks up one user in a directory backend.
type Provider interface {
	Lookup(ctx context.Context, userID string) (DisplayInfo, error)
}

// Placeholder builds the deterministic fallback identity from the last four
// characters of the user ID.
func Placeholder(userID string) DisplayInfo {
	suffix := userID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	name := "User " + suffix
	return DisplayInfo{Name: name, RealName: name, DisplayName: name}
}
