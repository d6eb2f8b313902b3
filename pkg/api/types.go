package api

import (
	"github.com/lodeworks/lodestone/pkg/resource"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string
}

// ResourceReader is the read surface the API publishes. *store.ResourceStore
// satisfies it.
type ResourceReader interface {
	Current(kind string) (*resource.Resource, error)
	History(kind string) ([]*resource.Resource, error)
	Kinds() ([]string, error)
}
