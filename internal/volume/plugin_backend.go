package volume

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/ayusman/mudra/internal/plugin"
)

// Plugin actions used by PluginBackend.
const (
	ActionGet = "volume-get"
	ActionSet = "volume-set"
)

// PluginBackend controls the system volume through a volume-control plugin.
type PluginBackend struct {
	plugin   *plugin.Plugin
	executor *plugin.Executor
	timeout  time.Duration
}

type percentPayload struct {
	Percent int `json:"percent"`
}

// NewPluginBackend resolves the named plugin from mgr. It fails when the
// plugin is missing, lacks the get/set actions, or does not run on this OS.
func NewPluginBackend(mgr *plugin.Manager, name string, exec *plugin.Executor) (*PluginBackend, error) {
	p, err := mgr.Resolve(name, ActionGet, ActionSet)
	if err != nil {
		return nil, fmt.Errorf("volume plugin %s: %w", name, err)
	}
	if !p.RunsOn(runtime.GOOS) {
		return nil, fmt.Errorf("volume plugin %s does not support %s", name, runtime.GOOS)
	}

	return &PluginBackend{
		plugin:   p,
		executor: exec,
		timeout:  2 * time.Second,
	}, nil
}

// GetVolume implements Backend.
func (b *PluginBackend) GetVolume() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	resp, err := b.executor.Execute(ctx, b.plugin, &plugin.Request{Action: ActionGet})
	if err != nil {
		return 0, err
	}

	var data percentPayload
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return 0, fmt.Errorf("parse volume: %w", err)
	}
	return data.Percent, nil
}

// SetVolume implements Backend.
func (b *PluginBackend) SetVolume(pct int) error {
	params, err := json.Marshal(percentPayload{Percent: pct})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	_, err = b.executor.Execute(ctx, b.plugin, &plugin.Request{Action: ActionSet, Params: params})
	return err
}
