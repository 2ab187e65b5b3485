// Package google provides shared infrastructure for the Google Drive connector.
//
// This package contains:
//   - CredentialSource to turn a service-account key into an oauth2.TokenSource
//   - Service factories for creating Google API clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	creds := google.CredentialSource{EnvJSON: []byte(os.Getenv(google.CredentialsEnvVar))}
//	ts, err := creds.TokenSource(ctx)
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// Only https://www.googleapis.com/auth/drive.readonly is requested.
package google
