package corpus

import (
	"fmt"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	DefaultFixtureSrcMAC = "66:66:66:66:66:66"
	DefaultFixtureDstMAC = "88:88:88:88:88:88"
	DefaultFixtureSrcIP  = "2.2.2.2"
	DefaultFixtureDstIP  = "1.1.1.1"

	defaultFixtureSrcPort = 20000
	defaultFixtureDstPort = 80
)

// FixtureOptions describes a generated corpus of Ethernet/IPv4/TCP probe frames.
type FixtureOptions struct {
	Count  int
	SrcMAC string
	DstMAC string
	SrcIP  string
	DstIP  string
	// DstPort of every probe; the source port varies per probe so that
	// frames, and therefore payloads, are unique.
	DstPort int
}

func (opts *FixtureOptions) defaults() {
	if opts.Count <= 0 {
		opts.Count = 1
	}
	if opts.SrcMAC == "" {
		opts.SrcMAC = DefaultFixtureSrcMAC
	}
	if opts.DstMAC == "" {
		opts.DstMAC = DefaultFixtureDstMAC
	}
	if opts.SrcIP == "" {
		opts.SrcIP = DefaultFixtureSrcIP
	}
	if opts.DstIP == "" {
		opts.DstIP = DefaultFixtureDstIP
	}
	if opts.DstPort <= 0 {
		opts.DstPort = defaultFixtureDstPort
	}
}

// Fixture generates probe entries. Labels alternate starting with
// malicious, so the zero options yield a single malicious frame from
// 2.2.2.2 to 1.1.1.1.
func Fixture(opts FixtureOptions) ([]Entry, error) {
	opts.defaults()

	srcMAC, err := net.ParseMAC(opts.SrcMAC)
	if err != nil {
		return nil, fmt.Errorf("fixture: src mac: %w", err)
	}
	dstMAC, err := net.ParseMAC(opts.DstMAC)
	if err != nil {
		return nil, fmt.Errorf("fixture: dst mac: %w", err)
	}
	srcIP := net.ParseIP(opts.SrcIP).To4()
	dstIP := net.ParseIP(opts.DstIP).To4()
	if srcIP == nil || dstIP == nil {
		return nil, fmt.Errorf("fixture: IPv4 addresses required, got %q -> %q", opts.SrcIP, opts.DstIP)
	}
	if opts.Count > 0xffff-defaultFixtureSrcPort {
		return nil, fmt.Errorf("fixture: too many probes: %d", opts.Count)
	}
	if opts.DstPort > 0xffff {
		return nil, fmt.Errorf("fixture: invalid destination port: %d", opts.DstPort)
	}

	entries := make([]Entry, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		frame, err := buildFrame(srcMAC, dstMAC, srcIP, dstIP,
			layers.TCPPort(defaultFixtureSrcPort+i), layers.TCPPort(opts.DstPort))
		if err != nil {
			return nil, fmt.Errorf("fixture: probe %d: %w", i, err)
		}
		entries = append(entries, Entry{
			Payload:   frame,
			Malicious: i%2 == 0,
		})
	}
	return entries, nil
}

func buildFrame(srcMAC, dstMAC net.HardwareAddr, srcIP, dstIP net.IP, srcPort, dstPort layers.TCPPort) ([]byte, error) {
	eth := &layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    srcIP,
		DstIP:    dstIP,
	}
	tcp := &layers.TCP{
		SrcPort: srcPort,
		DstPort: dstPort,
		SYN:     true,
		Window:  8192,
	}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		return nil, err
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
