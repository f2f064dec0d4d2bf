package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/go-gost/seermon/corpus"
	"github.com/go-gost/seermon/seer"
	"github.com/spf13/cobra"
)

var (
	decodeCmd = &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a Seer verdict",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
)

func runDecode(cmd *cobra.Command, args []string) error {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(args[0]), "0x"))
	if err != nil {
		return err
	}

	v, err := seer.Decode(b)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "prediction: %s\npayload: %x\n", corpus.PredictionOf(v.Malicious), v.Payload)
	return nil
}
