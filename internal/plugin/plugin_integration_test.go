package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestPlugin_VolumeControl_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pluginDir := findPluginDir("volume-control")
	if pluginDir == "" {
		t.Skip("volume-control plugin not built")
	}

	mgr := NewManager(filepath.Dir(pluginDir))
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	plug, err := mgr.Resolve("volume-control", "volume-get", "volume-set")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !plug.RunsOn(runtime.GOOS) {
		t.Skipf("volume-control does not run on %s", runtime.GOOS)
	}

	executor := NewExecutor(5 * time.Second)

	// Unknown actions must fail without side effects
	resp, err := executor.Execute(context.Background(), plug, &Request{
		Action: "invalid-action",
		Params: json.RawMessage(`{}`),
	})
	if err == nil {
		t.Fatal("expected error for invalid action")
	}
	if resp == nil || resp.Success {
		t.Error("expected failed response for invalid action")
	}
}

func findPluginDir(name string) string {
	candidates := []string{
		filepath.Join("../../plugins", name),
		filepath.Join("../../../plugins", name),
	}

	for _, dir := range candidates {
		manifest := filepath.Join(dir, "plugin.json")
		if _, err := os.Stat(manifest); err == nil {
			// The executable must be built next to the manifest
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir
			}
		}
	}
	return ""
}
