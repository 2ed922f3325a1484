package discord

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseWebhookURL extracts the webhook ID and token from
// https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("parse webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" {
			id, token = parts[i+1], parts[i+2]
			break
		}
	}
	if id == "" || token == "" {
		return "", "", fmt.Errorf("parse webhook url: expected /api/webhooks/{id}/{token}, got %q", u.Path)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", "", fmt.Errorf("parse webhook url: webhook id must be numeric")
		}
	}
	return id, token, nil
}
