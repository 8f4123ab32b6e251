package api

import (
	"fmt"
	"strings"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// Environment selects a deployment of the MasHub API.
type Environment string

// Known environments.
const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

var environmentURLs = map[Environment]string{
	EnvironmentDevelopment: "http://localhost:3000",
	EnvironmentStaging:     "https://staging.mas-hub.vercel.app",
	EnvironmentProduction:  "https://mas-hub.vercel.app",
}

// ResolveBaseURL returns baseURL when set, otherwise the URL of env.
// An unknown environment is a Generic error.
func ResolveBaseURL(baseURL string, env Environment) (string, error) {
	if baseURL != "" {
		return strings.TrimSuffix(baseURL, "/"), nil
	}
	if u, ok := environmentURLs[env]; ok {
		return u, nil
	}
	return "", apierrors.Generic(fmt.Sprintf("Unknown environment: %s", env))
}
