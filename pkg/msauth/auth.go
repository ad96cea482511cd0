package msauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/config"
	"github.com/sitelog/sitelog/internal/rest"
	"github.com/sitelog/sitelog/pkg/session"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const graphMeURL = "https://graph.microsoft.com/v1.0/me"

type authRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// Auth implements Provider with an authorization-code flow against the
// Microsoft identity platform. Tokens are stored per browser session.
type Auth struct {
	db          *pgxpool.Pool
	oauthConfig *oauth2.Config
}

func NewAuth(db *pgxpool.Pool, cfg config.Application) *Auth {
	scopes := cfg.Auth.Scopes
	if len(scopes) == 0 {
		scopes = []string{"User.Read", "offline_access"}
	}
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Auth.ClientId,
		ClientSecret: cfg.Auth.ClientSecret,
		Endpoint:     microsoft.AzureADEndpoint(cfg.Auth.TenantId),
		RedirectURL:  cfg.Host + "/api/auth/callback",
		Scopes:       scopes,
	}
	return &Auth{db: db, oauthConfig: oauthConfig}
}

// OAuthLogin starts the flow: it issues a state nonce bound to the
// caller's session and returns the Microsoft login URL to redirect to.
func (a *Auth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sessionId, err := session.CurrentID(r.Context())
	if err != nil {
		log.Error("unable to identify session: ", err)
		http.Error(w, "unable to identify session", http.StatusUnauthorized)
		return
	}

	_, err = a.db.Exec(r.Context(), "DELETE FROM ms_auth WHERE session_id = $1", sessionId)
	if err != nil {
		log.Errorf("failed to delete old auth row for session %s: %v", sessionId, err)
		writeAuthError(w)
		return
	}

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	_, err = a.db.Exec(r.Context(), "INSERT INTO ms_auth (session_id, nonce) VALUES ($1, $2)", sessionId, stateNonce)
	if err != nil {
		log.Errorf("failed to store auth nonce for session %s: %v", sessionId, err)
		writeAuthError(w)
		return
	}

	log.Tracef("Redirecting to Microsoft auth URL with nonce: %s", stateNonce)
	u := a.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline)

	w.WriteHeader(http.StatusOK)
	if encodeErr := json.NewEncoder(w).Encode(authRedirect{RedirectUrl: u}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

// OAuthCallback finishes the flow: exchanges the code, resolves the
// user's display name via Graph, and stores the token against the nonce.
func (a *Auth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	token, err := a.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	displayName, err := a.fetchDisplayName(r.Context(), token)
	if err != nil {
		log.Warnf("unable to resolve display name: %v", err)
	}

	_, err = a.db.Exec(r.Context(),
		"UPDATE ms_auth SET access_token = $1, refresh_token = $2, expiry = $3, display_name = $4 WHERE nonce = $5",
		token.AccessToken, token.RefreshToken, token.Expiry.Unix(), displayName, nonce)
	if err != nil {
		log.Errorf("unable to store auth token for nonce: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	log.Debug("Successfully stored auth token for nonce: ", nonce)
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

// OAuthLogout drops the stored token for the caller's session.
func (a *Auth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sessionId, err := session.CurrentID(r.Context())
	if err != nil {
		log.Error("unable to identify session: ", err)
		http.Error(w, "unable to identify session", http.StatusUnauthorized)
		return
	}

	if _, err := a.db.Exec(r.Context(), "DELETE FROM ms_auth WHERE session_id = $1", sessionId); err != nil {
		log.Errorf("failed to delete auth row for session %s: %v", sessionId, err)
		writeAuthError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IsAuthenticated reports whether the caller's session has a token and,
// if so, the signed-in display name.
func (a *Auth) IsAuthenticated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	response := struct {
		Authenticated bool   `json:"authenticated"`
		DisplayName   string `json:"displayName,omitempty"`
	}{}

	token, err := a.Token(r.Context())
	if err == nil {
		response.Authenticated = true
		response.DisplayName = token.DisplayName
	} else if !errors.Is(err, ErrNotAuthenticated) && !errors.Is(err, session.ErrNoSession) {
		log.Errorf("failed to check authentication: %v", err)
		writeAuthError(w)
		return
	}

	w.WriteHeader(http.StatusOK)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

// Token returns the stored credential for the current session, refreshing
// it through the OAuth token source when expired.
func (a *Auth) Token(ctx context.Context) (Token, error) {
	stored, displayName, err := a.storedToken(ctx)
	if err != nil {
		return Token{}, err
	}

	fresh, err := a.oauthConfig.TokenSource(ctx, stored).Token()
	if err != nil {
		return Token{}, fmt.Errorf("%w: token refresh failed: %v", ErrNotAuthenticated, err)
	}
	if fresh.AccessToken != stored.AccessToken {
		a.persistRefreshed(ctx, fresh)
	}

	return Token{DisplayName: displayName, AccessToken: fresh.AccessToken}, nil
}

// Client returns an HTTP client that authenticates requests with the
// session's token.
func (a *Auth) Client(ctx context.Context) (*http.Client, error) {
	stored, _, err := a.storedToken(ctx)
	if err != nil {
		return nil, err
	}
	return a.oauthConfig.Client(ctx, stored), nil
}

func (a *Auth) storedToken(ctx context.Context) (*oauth2.Token, string, error) {
	sessionId, err := session.CurrentID(ctx)
	if err != nil {
		return nil, "", err
	}

	var token oauth2.Token
	var accessToken, refreshToken *string
	var expiryTimestamp int64
	var displayName string
	err = a.db.QueryRow(ctx,
		"SELECT access_token, refresh_token, expiry, display_name FROM ms_auth WHERE session_id = $1", sessionId).
		Scan(&accessToken, &refreshToken, &expiryTimestamp, &displayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrNotAuthenticated
	} else if err != nil {
		return nil, "", fmt.Errorf("unable to retrieve auth token: %w", err)
	}
	if accessToken == nil || *accessToken == "" {
		// Row exists but the flow never completed.
		return nil, "", ErrNotAuthenticated
	}

	token.AccessToken = *accessToken
	if refreshToken != nil {
		token.RefreshToken = *refreshToken
	}
	token.Expiry = time.Unix(expiryTimestamp, 0)
	return &token, displayName, nil
}

func (a *Auth) persistRefreshed(ctx context.Context, token *oauth2.Token) {
	sessionId, err := session.CurrentID(ctx)
	if err != nil {
		return
	}
	_, err = a.db.Exec(ctx,
		"UPDATE ms_auth SET access_token = $1, refresh_token = $2, expiry = $3 WHERE session_id = $4",
		token.AccessToken, token.RefreshToken, token.Expiry.Unix(), sessionId)
	if err != nil {
		log.Warnf("failed to persist refreshed token for session %s: %v", sessionId, err)
	}
}

func (a *Auth) fetchDisplayName(ctx context.Context, token *oauth2.Token) (string, error) {
	client := a.oauthConfig.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, graphMeURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("graph /me request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading graph /me response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("graph /me error %d: %s", resp.StatusCode, string(body))
	}

	var me struct {
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		return "", fmt.Errorf("decoding graph /me response: %w", err)
	}
	return me.DisplayName, nil
}

func writeAuthError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error: "Failed to handle Microsoft authentication",
	}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
