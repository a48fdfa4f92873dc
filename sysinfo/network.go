package sysinfo

import (
	"context"
	"net/netip"
	"os"
	"sort"
	"strings"
)

// InterfaceType classifies a network interface by name and sysfs layout.
type InterfaceType int

const (
	IfaceUnknown InterfaceType = iota
	IfaceEthernet
	IfaceWireless
	IfaceLoopback
	IfaceVirtual
)

func (t InterfaceType) String() string {
	switch t {
	case IfaceEthernet:
		return "Ethernet"
	case IfaceWireless:
		return "Wireless"
	case IfaceLoopback:
		return "Loopback"
	case IfaceVirtual:
		return "Virtual"
	default:
		return "Unknown"
	}
}

// NetworkInterface is one non-loopback interface.
type NetworkInterface struct {
	Name      string
	Addresses []string
	MAC       *string
	Type      InterfaceType
	Up        bool
}

// String returns "<name> (<kind>): <first address>".
func (n NetworkInterface) String() string {
	if len(n.Addresses) == 0 {
		return n.Name + ": No IP"
	}
	switch n.Type {
	case IfaceWireless:
		return n.Name + " (WiFi): " + n.Addresses[0]
	case IfaceEthernet:
		return n.Name + " (Eth): " + n.Addresses[0]
	default:
		return n.Name + ": " + n.Addresses[0]
	}
}

// NetworkInfo lists interfaces, up ones first, then by name.
type NetworkInfo struct {
	Interfaces []NetworkInterface
	LocalIP    *string
}

// String returns the local address or "Not connected".
func (n NetworkInfo) String() string {
	if n.LocalIP == nil {
		return "Not connected"
	}
	return *n.LocalIP
}

// Detailed describes every up interface that has an address.
func (n NetworkInfo) Detailed() []string {
	var lines []string
	for _, iface := range n.Interfaces {
		if iface.Up && len(iface.Addresses) > 0 {
			lines = append(lines, iface.String())
		}
	}
	return lines
}

var virtualPrefixes = []string{"veth", "docker", "br-", "virbr", "vnet"}

// classifyInterface decides the kind from the name and a wireless/ directory.
func classifyInterface(name string, wireless bool) InterfaceType {
	switch {
	case name == "lo":
		return IfaceLoopback
	case wireless || strings.HasPrefix(name, "wl"):
		return IfaceWireless
	case strings.HasPrefix(name, "eth") || strings.HasPrefix(name, "en"):
		return IfaceEthernet
	}
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(name, prefix) {
			return IfaceVirtual
		}
	}
	return IfaceUnknown
}

const zeroMAC = "00:00:00:00:00:00"

// Network enumerates /sys/class/net. The local address is the first address
// of the first up interface in directory order, taken before sorting.
func (p *Prober) Network(ctx context.Context) NetworkInfo {
	const base = "/sys/class/net"
	entries, err := os.ReadDir(p.path(base))
	if err != nil {
		p.Log.Debug("net class unreadable", "error", err)
		return NetworkInfo{}
	}

	var (
		info     NetworkInfo
		fallback map[string][]string
	)
	for _, e := range entries {
		name := e.Name()
		if name == "lo" {
			continue
		}
		dir := base + "/" + name
		state, _ := p.readString(dir + "/operstate")
		iface := NetworkInterface{
			Name: name,
			Type: classifyInterface(name, p.exists(dir+"/wireless")),
			Up:   state == "up",
		}
		if mac, err := p.readString(dir + "/address"); err == nil && mac != "" && mac != zeroMAC {
			iface.MAC = &mac
		}

		addrs, ok := p.ipAddresses(ctx, name)
		if !ok {
			if fallback == nil {
				fallback = p.libraryAddresses(ctx)
			}
			addrs = fallback[name]
		}
		iface.Addresses = addrs

		if iface.Up && info.LocalIP == nil && len(addrs) > 0 {
			info.LocalIP = ptr(addrs[0])
		}
		info.Interfaces = append(info.Interfaces, iface)
	}

	sort.SliceStable(info.Interfaces, func(i, j int) bool {
		a, b := info.Interfaces[i], info.Interfaces[j]
		if a.Up != b.Up {
			return a.Up
		}
		return a.Name < b.Name
	})
	return info
}

// ipAddresses runs `ip addr show <iface>`. The bool is false when the tool
// could not be used at all.
func (p *Prober) ipAddresses(ctx context.Context, iface string) ([]string, bool) {
	out, ok := p.run(ctx, "ip", "addr", "show", iface)
	if !ok {
		return nil, false
	}
	var addrs []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "inet" {
			continue
		}
		if ip, ok := usableIPv4(fields[1]); ok {
			addrs = append(addrs, ip)
		}
	}
	return addrs, true
}

// libraryAddresses asks gopsutil for every interface's IPv4 addresses.
func (p *Prober) libraryAddresses(ctx context.Context) map[string][]string {
	byName := make(map[string][]string)
	ifaces, err := p.Stats.Interfaces(ctx)
	if err != nil {
		p.Log.Debug("interface list unavailable", "error", err)
		return byName
	}
	for _, iface := range ifaces {
		for _, a := range iface.Addrs {
			if ip, ok := usableIPv4(a.Addr); ok {
				byName[iface.Name] = append(byName[iface.Name], ip)
			}
		}
	}
	return byName
}

// usableIPv4 strips a "/prefix" suffix and rejects loopback and IPv6.
func usableIPv4(cidr string) (string, bool) {
	host, _, _ := strings.Cut(cidr, "/")
	addr, err := netip.ParseAddr(host)
	if err != nil || !addr.Is4() || addr.IsLoopback() {
		return "", false
	}
	return addr.String(), true
}
