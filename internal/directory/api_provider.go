package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"huddle/internal/config"
	"huddle/internal/constants"
)

// APIProvider queries the chat platform's users.info endpoint. The client
// timeout is deliberately short: display names are cosmetic and must never
// stall an analysis request.
type APIProvider struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewAPIProvider(cfg config.DirectoryConfig) *APIProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DirectoryHTTPTimeout
	}
	return &APIProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
	}
}

type usersInfoResponse struct {
	OK   bool `json:"ok"`
	User struct {
		Name        string `json:"name"`
		RealName    string `json:"real_name"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
}

func (p *APIProvider) Lookup(ctx context.Context, userID string) (DisplayInfo, error) {
	if p.token == "" {
		return DisplayInfo{}, fmt.Errorf("directory token not configured")
	}

	url := fmt.Sprintf("%s/users.info?user=%s", p.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DisplayInfo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return DisplayInfo{}, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constants.HTTPStatusOKMin || resp.StatusCode >= constants.HTTPStatusOKMax {
		return DisplayInfo{}, fmt.Errorf("directory returned status: %d", resp.StatusCode)
	}

	var body usersInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return DisplayInfo{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if !body.OK {
		return DisplayInfo{}, fmt.Errorf("directory lookup rejected for user %s", userID)
	}

	display := body.User.DisplayName
	if display == "" {
		display = body.User.Name
	}
	if display == "" {
		return Placeholder(userID), nil
	}

	realName := body.User.RealName
	if realName == "" {
		realName = display
	}

	return DisplayInfo{Name: display, RealName: realName, DisplayName: display}, nil
}
