package gateway

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/config"
	"github.com/sitelog/sitelog/pkg/gsheets"
	"github.com/sitelog/sitelog/pkg/msauth"
	"github.com/sitelog/sitelog/pkg/msflow"
	"github.com/sitelog/sitelog/pkg/reference"
	"github.com/sitelog/sitelog/pkg/timesheet"
)

const (
	ProviderMSFlow       = "msflow"
	ProviderGoogleSheets = "gsheets"
)

var ErrUnknownProvider = errors.New("unknown gateway provider")

// Backend is the full backend surface: it accepts submissions and serves
// reference data. Both providers implement it.
type Backend interface {
	timesheet.Gateway
	reference.Fetcher
}

// New selects the configured backend provider.
func New(ctx context.Context, cfg config.Application, auth msauth.Provider) (Backend, error) {
	switch cfg.Gateway.Provider {
	case ProviderMSFlow:
		log.Debug("using Power Automate flow gateway")
		return msflow.NewClient(auth, cfg.Gateway.MSFlow.ReferenceUrl, cfg.Gateway.MSFlow.SubmitUrl), nil
	case ProviderGoogleSheets:
		log.Debug("using Google Sheets gateway")
		return gsheets.NewClient(ctx, cfg.Gateway.GoogleSheets)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Gateway.Provider)
	}
}
