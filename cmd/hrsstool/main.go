// main.go - NTRU-HRSS KEM command line tool.
// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/spf13/cobra"

	"github.com/katzenpost/hrss"
	"github.com/katzenpost/hrss/keyfile"
	"github.com/katzenpost/hrss/kem/schemes"
	"github.com/katzenpost/hrss/log"
	"github.com/katzenpost/hrss/pem"
	"github.com/katzenpost/hrss/utils"
)

var (
	logFile  string
	logLevel string

	schemeName string
	keyFile    string
	ctFile     string

	logBackend *log.Backend
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hrsstool",
		Short:   "NTRU-HRSS-701 key encapsulation tool",
		Version: versioninfo.Short(),
		Long: `hrsstool generates key pairs, encapsulates shared keys to public
keys and decapsulates received ciphertexts, for the NTRU-HRSS-701 KEM
and the hybrid schemes built on it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logBackend, err = log.New(logFile, logLevel, false)
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path, stdout when empty")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "NOTICE", "log level: ERROR, WARNING, NOTICE, INFO, DEBUG")
	cmd.PersistentFlags().StringVarP(&schemeName, "scheme", "s", "NTRU-HRSS-701", "KEM scheme name")

	cmd.AddCommand(newKeygenCommand())
	cmd.AddCommand(newEncapCommand())
	cmd.AddCommand(newDecapCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newInfoCommand())
	return cmd
}

func newKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and write it to a key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			mylog := logBackend.GetLogger("hrsstool/keygen")

			if utils.Exists(keyFile) {
				return fmt.Errorf("refusing to overwrite %s", keyFile)
			}

			scheme := schemes.ByName(schemeName)
			_, priv, err := scheme.GenerateKeyPair()
			if err != nil {
				return err
			}
			if err = keyfile.Save(keyFile, priv); err != nil {
				return err
			}
			mylog.Noticef("wrote %s key pair to %s", scheme.Name(), keyFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "kem.key", "key file path")
	return cmd
}

func newEncapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encap",
		Short: "Encapsulate a fresh shared key to the key file's public key",
		Long: `Encapsulate derives a fresh shared key for the public half of the
given key file, writes the ciphertext to the output file and prints
the shared key as hex on stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mylog := logBackend.GetLogger("hrsstool/encap")

			pub, _, err := keyfile.Load(keyFile)
			if err != nil {
				return err
			}
			scheme := pub.Scheme()
			ct, ss, err := scheme.Encapsulate(pub)
			if err != nil {
				return err
			}
			if err = os.WriteFile(ctFile, ct, 0600); err != nil {
				return err
			}
			mylog.Noticef("wrote %d byte %s ciphertext to %s", len(ct), scheme.Name(), ctFile)
			fmt.Printf("%s\n", hex.EncodeToString(ss))
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "kem.key", "key file path")
	cmd.Flags().StringVarP(&ctFile, "ciphertext", "c", "kem.ct", "ciphertext output path")
	return cmd
}

func newDecapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decap",
		Short: "Decapsulate a ciphertext and print the shared key",
		RunE: func(cmd *cobra.Command, args []string) error {
			mylog := logBackend.GetLogger("hrsstool/decap")

			_, priv, err := keyfile.Load(keyFile)
			if err != nil {
				return err
			}
			ct, err := os.ReadFile(ctFile)
			if err != nil {
				return err
			}
			scheme := priv.Scheme()
			ss, err := scheme.Decapsulate(priv, ct)
			if err != nil {
				return err
			}
			mylog.Noticef("decapsulated %d byte %s ciphertext", len(ct), scheme.Name())
			fmt.Printf("%s\n", hex.EncodeToString(ss))
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "kem.key", "key file path")
	cmd.Flags().StringVarP(&ctFile, "ciphertext", "c", "kem.ct", "ciphertext input path")
	return cmd
}

func newExportCommand() *cobra.Command {
	var pubFile, privFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a plain NTRU-HRSS-701 key pair as PEM files",
		RunE: func(cmd *cobra.Command, args []string) error {
			mylog := logBackend.GetLogger("hrsstool/export")

			_, priv, err := keyfile.Load(keyFile)
			if err != nil {
				return err
			}
			blob, err := priv.MarshalBinary()
			if err != nil {
				return err
			}
			// PEM export covers the plain scheme; hybrid keys only
			// exist in key file form.
			key := new(hrss.PrivateKey)
			if err = key.FromBytes(blob); err != nil {
				return fmt.Errorf("not a plain NTRU-HRSS-701 key: %s", err)
			}
			if !utils.BothNotExists(pubFile, privFile) {
				return fmt.Errorf("refusing to overwrite %s or %s", pubFile, privFile)
			}
			if err = pem.ToFile(privFile, key); err != nil {
				return err
			}
			if err = pem.ToFile(pubFile, key.Public()); err != nil {
				return err
			}
			mylog.Noticef("wrote %s and %s", pubFile, privFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "kem.key", "key file path")
	cmd.Flags().StringVar(&pubFile, "public", "hrss.public.pem", "public key PEM output path")
	cmd.Flags().StringVar(&privFile, "private", "hrss.private.pem", "private key PEM output path")
	return cmd
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List the available KEM schemes and their parameters",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range schemes.All() {
				fmt.Printf("%s:\n", s.Name())
				fmt.Printf("  public key size:  %d\n", s.PublicKeySize())
				fmt.Printf("  private key size: %d\n", s.PrivateKeySize())
				fmt.Printf("  ciphertext size:  %d\n", s.CiphertextSize())
				fmt.Printf("  shared key size:  %d\n", s.SharedKeySize())
				fmt.Printf("  seed size:        %d\n", s.SeedSize())
			}
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
