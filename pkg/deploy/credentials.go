package deploy

import (
	"os"

	"github.com/confgen-net/confgen/pkg/model"
)

// Environment variables that override credentials stored in model files.
const (
	EnvUsername       = "NETWORK_USERNAME"
	EnvPassword       = "NETWORK_PASSWORD"
	EnvEnablePassword = "NETWORK_ENABLE_PASSWORD"
)

// Credentials carries the secrets used to reach a device.
type Credentials struct {
	Username       string
	Password       string
	EnablePassword string
}

// Complete reports whether both username and password are set. The enable
// password is optional.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// ResolveCredentials merges the model's stored credentials with environment
// overrides. NETWORK_USERNAME, NETWORK_PASSWORD and NETWORK_ENABLE_PASSWORD
// win over whatever the model carries, so operators can keep secrets out of
// model files entirely. The result is passed into Connect explicitly; the
// transport itself never reads the environment.
func ResolveCredentials(c model.Credentials) Credentials {
	creds := Credentials{
		Username:       c.Username,
		Password:       c.Password,
		EnablePassword: c.EnablePassword,
	}
	if v := os.Getenv(EnvUsername); v != "" {
		creds.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		creds.Password = v
	}
	if v := os.Getenv(EnvEnablePassword); v != "" {
		creds.EnablePassword = v
	}
	return creds
}
