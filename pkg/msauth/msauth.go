package msauth

import (
	"context"
	"fmt"
	"net/http"
)

var ErrNotAuthenticated = fmt.Errorf("user is not authenticated with Microsoft")

// Token is the credential handed to the backend gateway, together with
// the authenticated user's display name for the reporter field.
type Token struct {
	DisplayName string
	AccessToken string
}

// Provider yields credentials for the current session. The rest of the
// application never touches the OAuth flow directly.
type Provider interface {
	Token(ctx context.Context) (Token, error)
	Client(ctx context.Context) (*http.Client, error)
}
