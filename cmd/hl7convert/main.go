package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/transforms"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hl7convert",
		Short:        "Convert HL7 v2 messages to FHIR R4 offline",
		SilenceUsage: true,
	}
	cmd.AddCommand(convertCmd())
	cmd.AddCommand(ackCmd())
	return cmd
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Print the FHIR JSON derived from an ADT or ORU message",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			oru, _ := cmd.Flags().GetBool("oru")

			msg, err := readMessage(cmd, file)
			if err != nil {
				return err
			}

			var out interface{}
			if oru {
				bundle, err := transforms.ConvertORU(msg)
				if err != nil {
					return err
				}
				out = bundle
			} else {
				resource := transforms.ConvertADT(msg)
				if resource == nil {
					return fmt.Errorf("no FHIR resource derived from %s", msg.Name())
				}
				out = resource
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(out)
		},
	}
	cmd.Flags().String("file", "-", "HL7 v2 message file, - for stdin")
	cmd.Flags().Bool("oru", false, "Treat the message as ORU_R01 and print a transaction bundle")
	return cmd
}

func ackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack",
		Short: "Print an AA acknowledgement for a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			msg, err := readMessage(cmd, file)
			if err != nil {
				return err
			}

			ack := hl7v2.BuildACK(msg, hl7v2.ACK{
				Code:      constvars.HL7AckAccept,
				ControlID: strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:20],
				Timestamp: time.Now(),
			})
			// ER7 segments end in CR; terminals want LF.
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.ReplaceAll(ack, "\r", "\n"))
			return err
		},
	}
	cmd.Flags().String("file", "-", "HL7 v2 message file, - for stdin")
	return cmd
}

func readMessage(cmd *cobra.Command, file string) (*hl7v2.Message, error) {
	var raw []byte
	var err error
	if file == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}
	return hl7v2.Parse(string(raw))
}
