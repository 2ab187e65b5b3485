package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// CredentialsEnvVar holds a service-account key as a JSON blob.
//
//nolint:gosec // G101: This is an environment variable name, not a credential.
const CredentialsEnvVar = "GOOGLE_DRIVE_SERVICE_ACCOUNT_KEY"

// Scopes requested for Drive access.
var Scopes = []string{drive.DriveReadonlyScope}

// CredentialSource holds the service-account key inputs.
// EnvJSON is checked first, then KeyFile.
type CredentialSource struct {
	// EnvJSON is a service-account key supplied through the environment.
	EnvJSON []byte

	// KeyFile is the path to a service-account key file.
	KeyFile string
}

// CredentialsFromEnv builds a CredentialSource from the process environment
// and a configured key file path.
func CredentialsFromEnv(keyFile string) CredentialSource {
	return CredentialSource{
		EnvJSON: []byte(os.Getenv(CredentialsEnvVar)),
		KeyFile: keyFile,
	}
}

// IsZero returns true when neither input is set.
func (c CredentialSource) IsZero() bool {
	return len(c.EnvJSON) == 0 && c.KeyFile == ""
}

// Key returns the raw service-account JSON.
// Returns domain.ErrConfiguration when nothing is configured.
func (c CredentialSource) Key() ([]byte, error) {
	if len(c.EnvJSON) > 0 {
		return c.EnvJSON, nil
	}
	if c.KeyFile == "" {
		return nil, fmt.Errorf("%w: set %s or googledrive.service_account", domain.ErrConfiguration, CredentialsEnvVar)
	}

	data, err := os.ReadFile(c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: reading service account file: %v", domain.ErrConfiguration, err)
	}
	return data, nil
}

// TokenSource returns a TokenSource for the service account.
func (c CredentialSource) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	key, err := c.Key()
	if err != nil {
		return nil, err
	}

	cfg, err := googleoauth.JWTConfigFromJSON(key, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing service account key: %v", domain.ErrConfiguration, err)
	}

	return cfg.TokenSource(ctx), nil
}
