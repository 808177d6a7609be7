package source

import (
	"fmt"
	"os"

	"github.com/905timur/reddit-content-cleaner/internal/config"
	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

// New selects the source implementation from SOURCE_MODE. The default is the
// authenticated API; mock mode serves fake history for test drives.
func New() (domain.ContentSource, error) {
	mode := os.Getenv("SOURCE_MODE")

	switch mode {
	case "", "api":
		creds, err := config.LoadCredentials()
		if err != nil {
			return nil, err
		}
		return NewAPISource(creds.ClientID, creds.ClientSecret, creds.Username, creds.Password, creds.UserAgent)
	case "mock":
		return NewMockSource(), nil
	default:
		return nil, fmt.Errorf("unknown SOURCE_MODE: %s (use 'api' or 'mock')", mode)
	}
}
