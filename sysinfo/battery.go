package sysinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// BatteryState is the charge state reported by the power supply.
type BatteryState int

const (
	StateUnknown BatteryState = iota
	StateCharging
	StateDischarging
	StateFull
	StateNotCharging
)

func (s BatteryState) String() string {
	switch s {
	case StateCharging:
		return "Charging"
	case StateDischarging:
		return "Discharging"
	case StateFull:
		return "Full"
	case StateNotCharging:
		return "Not Charging"
	default:
		return "Unknown"
	}
}

// parseBatteryState maps the sysfs status attribute.
func parseBatteryState(status string) BatteryState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "charging":
		return StateCharging
	case "discharging", "empty":
		return StateDischarging
	case "full":
		return StateFull
	case "not charging":
		return StateNotCharging
	default:
		return StateUnknown
	}
}

// Battery is one power supply of type Battery.
type Battery struct {
	Name          string
	Percentage    float64
	State         BatteryState
	Health        *float64
	TimeRemaining *string
}

// String returns e.g. "87% (discharging) - 3h 12m".
func (b Battery) String() string {
	s := fmt.Sprintf("%.0f%%", b.Percentage)
	if b.State != StateUnknown {
		s += " (" + strings.ToLower(b.State.String()) + ")"
	}
	if b.TimeRemaining != nil {
		s += " - " + *b.TimeRemaining
	}
	return s
}

// Bar renders the charge as an uncoloured [███░░] gauge.
func (b Battery) Bar(width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := int(b.Percentage / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// BatteryInfo lists batteries. It is empty on machines without one.
type BatteryInfo struct {
	Batteries  []Battery
	HasBattery bool
}

// String describes the first battery.
func (b BatteryInfo) String() string {
	if len(b.Batteries) == 0 {
		return "No battery"
	}
	return b.Batteries[0].String()
}

// Battery scans /sys/class/power_supply for entries of type Battery.
func (p *Prober) Battery() BatteryInfo {
	const base = "/sys/class/power_supply"
	entries, err := os.ReadDir(p.path(base))
	if err != nil {
		p.Log.Debug("power supply class unreadable", "error", err)
		return BatteryInfo{}
	}

	var info BatteryInfo
	for _, e := range entries {
		dir := base + "/" + e.Name()
		if kind, err := p.readString(dir + "/type"); err != nil || kind != "Battery" {
			continue
		}
		capacity, err := p.readUint(dir + "/capacity")
		if err != nil {
			p.Log.Debug("battery capacity unreadable", "battery", e.Name(), "error", err)
			continue
		}
		status, _ := p.readString(dir + "/status")
		bat := Battery{
			Name:       e.Name(),
			Percentage: float64(min(capacity, 100)),
			State:      parseBatteryState(status),
		}
		bat.Health = p.batteryHealth(dir)
		bat.TimeRemaining = p.batteryTime(dir, bat.State)
		info.Batteries = append(info.Batteries, bat)
	}
	info.HasBattery = len(info.Batteries) > 0
	return info
}

// batteryHealth is full capacity over design capacity, read from the
// energy_* attributes or the charge_* ones.
func (p *Prober) batteryHealth(dir string) *float64 {
	for _, prefix := range []string{"energy", "charge"} {
		full, err1 := p.readUint(dir + "/" + prefix + "_full")
		design, err2 := p.readUint(dir + "/" + prefix + "_full_design")
		if err1 == nil && err2 == nil && design > 0 {
			return ptr(float64(full) / float64(design) * 100)
		}
	}
	return nil
}

// batteryTime estimates time to empty or to full from the current draw.
func (p *Prober) batteryTime(dir string, state BatteryState) *string {
	pairs := [][3]string{
		{"energy_now", "energy_full", "power_now"},
		{"charge_now", "charge_full", "current_now"},
	}
	for _, pair := range pairs {
		now, err1 := p.readUint(dir + "/" + pair[0])
		full, err2 := p.readUint(dir + "/" + pair[1])
		rate, err3 := p.readUint(dir + "/" + pair[2])
		if err1 != nil || err3 != nil || rate == 0 {
			continue
		}
		var hours float64
		switch state {
		case StateDischarging:
			hours = float64(now) / float64(rate)
		case StateCharging:
			if err2 != nil || full < now {
				continue
			}
			hours = float64(full-now) / float64(rate)
		default:
			return nil
		}
		return ptr(formatDuration(uint64(hours * 3600)))
	}
	return nil
}

// formatDuration renders seconds as "3h 12m" or "45m".
func formatDuration(secs uint64) string {
	h, m := secs/3600, (secs%3600)/60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func (p *Prober) readUint(name string) (uint64, error) {
	s, err := p.readString(name)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, 64)
}
