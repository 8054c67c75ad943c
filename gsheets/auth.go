package gsheets

import (
	"errors"
	"net/http"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/gradebook/gradebook-sheets/grades"
)

const (
	SHEETS = sheets.SpreadsheetsScope
	DRIVE  = drive.DriveMetadataReadonlyScope
)

// Authorize exchanges the service account credentials for a bearer token and returns an HTTP
// client that authenticates with it. The token is acquired up front so that a malformed or
// revoked credential fails before any spreadsheet request is made. Tokens are valid for an
// hour and are not refreshed beyond what the oauth2 token source does by itself.
func Authorize(ctx context.Context, credentials []byte, scopes ...string) (*http.Client, error) {
	if len(scopes) == 0 {
		scopes = []string{SHEETS}
	}

	config, err := google.JWTConfigFromJSON(credentials, scopes...)
	if err != nil {
		return nil, &grades.Error{
			Kind:    grades.AuthFailure,
			Message: "invalid service account credentials",
			Err:     err,
		}
	}

	source := config.TokenSource(ctx)
	token, err := source.Token()
	if err != nil {
		e := grades.Error{
			Kind:    grades.AuthFailure,
			Message: "token exchange rejected",
			Err:     err,
		}

		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			e.Body = string(rerr.Body)
			if rerr.Response != nil {
				e.Status = rerr.Response.StatusCode
			}
		}

		return nil, &e
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, source)), nil
}
