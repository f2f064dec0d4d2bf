package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/go-gost/seermon/config/parsing"
	"github.com/go-gost/seermon/corpus"
	"github.com/spf13/cobra"
)

var (
	fixtureCmd = &cobra.Command{
		Use:   "fixture",
		Short: "Write a generated corpus file",
		Long: `Generates Ether/IPv4/TCP probe frames with alternating labels, starting
with a malicious one, and writes them as a corpus file.`,
		Args: cobra.NoArgs,
		RunE: runFixture,
	}

	fixtureFlags struct {
		opts   corpus.FixtureOptions
		output string
		format string
	}
)

func init() {
	f := fixtureCmd.Flags()
	f.IntVarP(&fixtureFlags.opts.Count, "count", "n", 1, "number of probes")
	f.StringVar(&fixtureFlags.opts.SrcMAC, "src-mac", corpus.DefaultFixtureSrcMAC, "source MAC address")
	f.StringVar(&fixtureFlags.opts.DstMAC, "dst-mac", corpus.DefaultFixtureDstMAC, "destination MAC address")
	f.StringVar(&fixtureFlags.opts.SrcIP, "src-ip", corpus.DefaultFixtureSrcIP, "source IPv4 address")
	f.StringVar(&fixtureFlags.opts.DstIP, "dst-ip", corpus.DefaultFixtureDstIP, "destination IPv4 address")
	f.IntVar(&fixtureFlags.opts.DstPort, "dst-port", 80, "destination TCP port")
	f.StringVarP(&fixtureFlags.output, "output", "o", "", "output file, stdout if empty")
	f.StringVar(&fixtureFlags.format, "format", "yaml", "yaml or json")
}

func runFixture(cmd *cobra.Command, _ []string) error {
	entries, err := corpus.Fixture(fixtureFlags.opts)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if fixtureFlags.output != "" {
		name, err := parsing.ExpandPath(fixtureFlags.output)
		if err != nil {
			return err
		}
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if fixtureFlags.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	return corpus.Encode(w, entries)
}
