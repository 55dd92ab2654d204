package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/lyonblue/PHADMINISTRATION/internal/flagx"
	"github.com/lyonblue/PHADMINISTRATION/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. Interval
// fields use timex.Duration so files can say "15m" as well as raw
// nanoseconds. After unmarshalling, values are copied into the runtime
// Config.
type JsonConfig struct {
	EndpointAddr                      string         `json:"endpoint_addr"`
	DatabaseDSN                       string         `json:"database_dsn"`
	SecretKey                         string         `json:"secret_key"`
	AccessTokenValidityDuration       timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration      timex.Duration `json:"refresh_token_validity_duration"`
	VerificationTokenValidityDuration timex.Duration `json:"verification_token_validity_duration"`
	ResetTokenValidityDuration        timex.Duration `json:"reset_token_validity_duration"`
	RequireEmailVerification          bool           `json:"require_email_verification"`
	SMTPHost                          string         `json:"smtp_host"`
	SMTPPort                          string         `json:"smtp_port"`
	SMTPUser                          string         `json:"smtp_user"`
	SMTPPassword                      string         `json:"smtp_password"`
	EmailFrom                         string         `json:"email_from"`
	ProposalEmail                     string         `json:"proposal_email"`
	S3RootUser                        string         `json:"s3_root_user"`
	S3RootPassword                    string         `json:"s3_root_password"`
	S3Bucket                          string         `json:"s3_bucket"`
	S3Region                          string         `json:"s3_region"`
	S3BaseEndpoint                    string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is named, nothing
// happens. An unreadable or malformed file panics: a half-applied config is
// worse than failing to start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	config.VerificationTokenValidityDuration = time.Duration(c.VerificationTokenValidityDuration.Duration)
	config.ResetTokenValidityDuration = time.Duration(c.ResetTokenValidityDuration.Duration)
	config.RequireEmailVerification = c.RequireEmailVerification
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.EmailFrom = c.EmailFrom
	config.ProposalEmail = c.ProposalEmail
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
