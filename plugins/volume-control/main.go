// Package main provides the volume-control plugin.
// It reads and sets the system output volume via AppleScript on macOS and
// pactl (PulseAudio/PipeWire) on Linux.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// volumeData is the payload of volume-get and volume-set responses.
type volumeData struct {
	Percent int `json:"percent"`
}

// mixer abstracts the platform audio control.
type mixer interface {
	Get() (int, error)
	Set(pct int) error
	ToggleMute() error
}

// actionHandler defines a function type for handling specific actions.
type actionHandler func(m mixer, params json.RawMessage) (any, error)

// actionHandlers maps action names to their handler functions.
var actionHandlers = map[string]actionHandler{
	"volume-get":  volumeGet,
	"volume-set":  volumeSet,
	"volume-mute": volumeMute,
}

var errUnsupportedPlatform = errors.New("unsupported platform: " + runtime.GOOS)

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	m, err := platformMixer()
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}

	data, err := handler(m, req.Params)
	if err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse(data)
}

func platformMixer() (mixer, error) {
	switch runtime.GOOS {
	case "darwin":
		return appleScriptMixer{}, nil
	case "linux":
		if _, err := exec.LookPath("pactl"); err != nil {
			return nil, fmt.Errorf("pactl not found: %w", err)
		}
		return pactlMixer{}, nil
	default:
		return nil, errUnsupportedPlatform
	}
}

func volumeGet(m mixer, _ json.RawMessage) (any, error) {
	pct, err := m.Get()
	if err != nil {
		return nil, err
	}
	return volumeData{Percent: pct}, nil
}

func volumeSet(m mixer, params json.RawMessage) (any, error) {
	var p volumeData
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.Percent < 0 || p.Percent > 100 {
		return nil, fmt.Errorf("percent out of range: %d", p.Percent)
	}
	if err := m.Set(p.Percent); err != nil {
		return nil, err
	}
	return volumeData{Percent: p.Percent}, nil
}

func volumeMute(m mixer, _ json.RawMessage) (any, error) {
	return nil, m.ToggleMute()
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: false,
		Error:   errMsg,
	})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse(data any) {
	resp := Response{Success: true}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			writeErrorResponse(fmt.Sprintf("failed to encode data: %v", err))
			return
		}
		resp.Data = raw
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// run executes a command and returns its combined output.
func run(name string, args ...string) (string, error) {
	output, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

type appleScriptMixer struct{}

func (appleScriptMixer) Get() (int, error) {
	out, err := run("osascript", "-e", `output volume of (get volume settings)`)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(out)
}

func (appleScriptMixer) Set(pct int) error {
	_, err := run("osascript", "-e", fmt.Sprintf(`set volume output volume %d`, pct))
	return err
}

func (appleScriptMixer) ToggleMute() error {
	_, err := run("osascript", "-e", `set volume output muted (not (output muted of (get volume settings)))`)
	return err
}

type pactlMixer struct{}

// pactlPercent matches the first channel percentage, e.g. "/  45% /".
var pactlPercent = regexp.MustCompile(`(\d+)%`)

func (pactlMixer) Get() (int, error) {
	out, err := run("pactl", "get-sink-volume", "@DEFAULT_SINK@")
	if err != nil {
		return 0, err
	}
	m := pactlPercent.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("unexpected pactl output: %q", out)
	}
	return strconv.Atoi(m[1])
}

func (pactlMixer) Set(pct int) error {
	_, err := run("pactl", "set-sink-volume", "@DEFAULT_SINK@", fmt.Sprintf("%d%%", pct))
	return err
}

func (pactlMixer) ToggleMute() error {
	_, err := run("pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle")
	return err
}
