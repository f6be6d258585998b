package api

import (
	"github.com/ssargent/bitspect/pkg/config"
	"github.com/ssargent/bitspect/pkg/lookup"
	"github.com/ssargent/bitspect/pkg/tree"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Offset    *int        `json:"offset,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// DecodeRequest is the body of the decode endpoints. Data is hex text.
type DecodeRequest struct {
	Data   string `json:"data"`
	Offset int    `json:"offset"`
	All    bool   `json:"all,omitempty"`
}

// DecodeResult is the data of a successful decode
type DecodeResult struct {
	Record string       `json:"record"`
	Name   string       `json:"name"`
	Offset int          `json:"offset"`
	Length int          `json:"length"`
	Fields []tree.Field `json:"fields"`
}

// TableSummary describes one lookup table
type TableSummary struct {
	Name     string `json:"name"`
	Fallback string `json:"fallback"`
	Entries  int    `json:"entries"`
}

// TableResponse is one lookup table with its rows
type TableResponse struct {
	TableSummary
	Rows []lookup.Row `json:"rows"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind          string
	Port          int
	MaxBodyBytes  int64
	MaxInputBytes int64
	CORSOrigins   []string
}

// NewServerConfig derives the server settings from the application config
func NewServerConfig(cfg *config.Config) ServerConfig {
	return ServerConfig{
		Bind:          cfg.Server.Bind,
		Port:          cfg.Server.Port,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
		MaxInputBytes: cfg.Decode.MaxInputBytes,
		CORSOrigins:   cfg.Server.CORSOrigins,
	}
}
