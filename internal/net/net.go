package net

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"strings"

	"github.com/vishvananda/netns"
)

type SetBuffer interface {
	SetReadBuffer(bytes int) error
	SetWriteBuffer(bytes int) error
}

// IsIPv4 reports whether address names an IPv4 host (or a bare port).
func IsIPv4(address string) bool {
	return address != "" && address[0] != ':' && address[0] != '['
}

// Network returns the IPv4-pinned variant of network when address is IPv4.
func Network(network, address string) string {
	if IsIPv4(address) && !strings.HasSuffix(network, "4") && !strings.HasSuffix(network, "6") {
		return network + "4"
	}
	return network
}

// ListenConfig opens sockets, optionally inside a named network namespace.
type ListenConfig struct {
	Netns string
	net.ListenConfig
}

func (lc *ListenConfig) ListenPacket(ctx context.Context, network, address string) (net.PacketConn, error) {
	var pc net.PacketConn
	err := lc.Do(func() (err error) {
		pc, err = lc.ListenConfig.ListenPacket(ctx, network, address)
		return
	})
	return pc, err
}

// Do runs f with the calling OS thread switched into lc.Netns.
// With no namespace configured f runs as is.
func (lc *ListenConfig) Do(f func() error) error {
	if lc.Netns == "" {
		return f()
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	originNs, err := netns.Get()
	if err != nil {
		return fmt.Errorf("netns.Get(): %v", err)
	}
	defer netns.Set(originNs)

	var ns netns.NsHandle
	if strings.HasPrefix(lc.Netns, "/") {
		ns, err = netns.GetFromPath(lc.Netns)
	} else {
		ns, err = netns.GetFromName(lc.Netns)
	}
	if err != nil {
		return fmt.Errorf("netns.Get(%s): %v", lc.Netns, err)
	}
	defer ns.Close()

	if err := netns.Set(ns); err != nil {
		return fmt.Errorf("netns.Set(%s): %v", lc.Netns, err)
	}
	return f()
}
