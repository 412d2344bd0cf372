// Package plugin discovers and runs external helper executables that speak
// JSON over stdin/stdout. The volume backend is built on it.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Actions     []string `json:"actions"`
	// Platforms limits the plugin to the listed GOOS values; empty means any.
	Platforms    []string        `json:"platforms,omitempty"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request represents a request sent to a plugin for execution.
type Request struct {
	Action string          `json:"action"`
	Config json.RawMessage `json:"config,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Supports reports whether the plugin declares the given action.
func (p *Plugin) Supports(action string) bool {
	for _, a := range p.Manifest.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// RunsOn reports whether the plugin can run on the given GOOS.
func (p *Plugin) RunsOn(goos string) bool {
	if len(p.Manifest.Platforms) == 0 {
		return true
	}
	for _, platform := range p.Manifest.Platforms {
		if platform == goos {
			return true
		}
	}
	return false
}
