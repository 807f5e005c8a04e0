package config

import "time"

// Supported values of [Mail.Transport].
const (
	MailTransportLog  = "log"
	MailTransportSES  = "ses"
	MailTransportHTTP = "http"
)

// EnvironmentDevelopment is the [App.Environment] value that relaxes the
// session cookie to non-Secure.
const EnvironmentDevelopment = "development"

// defaults returns the values used for every field no source has set.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      "warehouse-keeper",
			TokenDuration:    24 * time.Hour,
			PasswordHashCost: 10,
			ResetTokenTTL:    30 * time.Minute,
			FrontendURL:      "http://localhost:3000",
			Environment:      "production",
			Version:          "1.0.0",
		},
		Storage: Storage{
			Images: Images{
				Folder:  "warehouse-keeper",
				MaxSize: 5 << 20,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:5000",
			RequestTimeout: 30 * time.Second,
		},
		Mail: Mail{
			Transport: MailTransportLog,
			Sender:    "no-reply@warehouse-keeper.local",
			Timeout:   10 * time.Second,
		},
		Workers: Workers{
			TokenCleanupInterval: 10 * time.Minute,
		},
	}
}
