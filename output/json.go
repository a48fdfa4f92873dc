package output

import (
	"encoding/json"
	"fmt"
	"io"

	"hyperfetch/sysinfo"
)

// Report is the JSON form of a snapshot: one display string per category.
type Report struct {
	User     string `json:"user"`
	OS       string `json:"os"`
	Kernel   string `json:"kernel"`
	CPU      string `json:"cpu"`
	GPU      string `json:"gpu"`
	Memory   string `json:"memory"`
	Disk     string `json:"disk"`
	Uptime   string `json:"uptime"`
	Shell    string `json:"shell"`
	Terminal string `json:"terminal"`
	Desktop  string `json:"desktop"`
	Display  string `json:"display"`
	Battery  string `json:"battery"`
	Network  string `json:"network"`
	Packages string `json:"packages"`
}

// NewReport copies each category's primary display string.
func NewReport(snap sysinfo.Snapshot) Report {
	return Report{
		User:     snap.User.String(),
		OS:       snap.OS.String(),
		Kernel:   snap.Kernel.String(),
		CPU:      snap.CPU.String(),
		GPU:      snap.GPU.String(),
		Memory:   snap.Memory.String(),
		Disk:     snap.Disk.String(),
		Uptime:   snap.Uptime.String(),
		Shell:    snap.Shell.String(),
		Terminal: snap.Shell.Terminal,
		Desktop:  snap.Desktop.String(),
		Display:  snap.Display.String(),
		Battery:  snap.Battery.String(),
		Network:  snap.Network.String(),
		Packages: snap.Packages.String(),
	}
}

// WriteJSON writes snap as an indented JSON object with no colour codes.
func WriteJSON(w io.Writer, snap sysinfo.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewReport(snap)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
