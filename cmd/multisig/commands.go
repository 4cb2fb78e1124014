package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/config"
	"github.com/spacemeshos/go-multisig/multisig"
	"github.com/spacemeshos/go-multisig/signing"
)

// errNotExecuted is returned by authorize when the action was not committed.
var errNotExecuted = errors.New("action not executed")

func newRootCmd(fs afero.Fs, out, logOut io.Writer) *cobra.Command {
	a := &app{
		fs:     fs,
		out:    out,
		logOut: zapcore.AddSync(logOut),
		cfg:    config.DefaultConfig(),
	}
	root := &cobra.Command{
		Use:           "multisig",
		Short:         "Threshold weighted multisig accounts",
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	a.addFlags(root.PersistentFlags())
	root.AddCommand(
		keygenCmd(a),
		createCmd(a),
		showCmd(a),
		proposeCmd(a),
		signCmd(a),
		authorizeCmd(a),
	)
	return root
}

func keygenCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ed25519 signer key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			signer, err := signing.NewEdSigner()
			if err != nil {
				return err
			}
			if err := writeSigner(a.fs, out, signer); err != nil {
				return err
			}
			fmt.Fprintln(a.out, signer.PublicKey())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the hex encoded private key to")
	cmd.MarkFlagRequired("out")
	return cmd
}

func createCmd(a *app) *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account from a json definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			definition, err := readDefinition(a.fs, def)
			if err != nil {
				return err
			}
			return a.withEngine(cmd.Context(), func() error {
				account, err := a.engine.Create(cmd.Context(), definition)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, account.Address)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&def, "def", "", "account definition file")
	cmd.MarkFlagRequired("def")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	var history bool
	cmd := &cobra.Command{
		Use:   "show [ADDRESS]",
		Short: "Print account state, or list accounts if address is omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func() error {
				if len(args) == 0 {
					all, err := a.engine.Accounts()
					if err != nil {
						return err
					}
					for _, address := range all {
						fmt.Fprintln(a.out, address)
					}
					return nil
				}
				address, err := types.StringToAddress(args[0])
				if err != nil {
					return err
				}
				account, err := a.engine.Account(cmd.Context(), address)
				if err != nil {
					return err
				}
				printAccount(a.out, account)
				if !history {
					return nil
				}
				executed, err := a.engine.History(cmd.Context(), address)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, "history:")
				for _, e := range executed {
					fmt.Fprintf(a.out, "  %d %s %s collected=%d discarded=%d at=%s\n",
						e.Nonce, e.Kind, e.Digest.ShortString(), e.Collected, e.Discarded,
						e.Time.UTC().Format(time.RFC3339))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&history, "history", false, "print executed actions")
	return cmd
}

func printAccount(w io.Writer, account *multisig.Account) {
	fmt.Fprintf(w, "address:   %s\n", account.Address)
	fmt.Fprintf(w, "nonce:     %d\n", account.Nonce)
	fmt.Fprintf(w, "balance:   %d\n", account.Balance)
	fmt.Fprintf(w, "threshold: %d\n", account.Registry.Threshold)
	fmt.Fprintf(w, "total:     %d\n", account.Registry.TotalWeight)
	fmt.Fprintln(w, "signers:")
	for i, s := range account.Registry.Signers {
		fmt.Fprintf(w, "  %d %s %d\n", i, s.PublicKey, s.Weight)
	}
}

type proposeFlags struct {
	kind      string
	nonce     int64
	expiry    time.Duration
	to        string
	amount    uint64
	signer    string
	weight    uint32
	threshold uint32
	out       string
}

func (f *proposeFlags) action(nonce uint64, now time.Time) (*multisig.Action, error) {
	kind, err := multisig.ParseKind(f.kind)
	if err != nil {
		return nil, err
	}
	action := &multisig.Action{Nonce: nonce}
	if f.expiry > 0 {
		action.Expiry = uint64(now.Add(f.expiry).Unix())
	}
	var pk types.PublicKey
	if kind == multisig.KindAddSigner || kind == multisig.KindRemoveSigner {
		if err := pk.UnmarshalText([]byte(f.signer)); err != nil {
			return nil, fmt.Errorf("parse --signer: %w", err)
		}
	}
	switch kind {
	case multisig.KindNoop:
	case multisig.KindSpend:
		destination, err := types.StringToAddress(f.to)
		if err != nil {
			return nil, fmt.Errorf("parse --to: %w", err)
		}
		action.Body = &multisig.Spend{Destination: destination, Amount: f.amount}
	case multisig.KindAddSigner:
		action.Body = &multisig.AddSigner{Signer: multisig.Signer{PublicKey: pk, Weight: f.weight}}
	case multisig.KindRemoveSigner:
		action.Body = &multisig.RemoveSigner{PublicKey: pk}
	case multisig.KindChangeThreshold:
		action.Body = &multisig.ChangeThreshold{Threshold: f.threshold}
	}
	return action, nil
}

func proposeCmd(a *app) *cobra.Command {
	var flags proposeFlags
	cmd := &cobra.Command{
		Use:   "propose ADDRESS",
		Short: "Dry run an action and write the proposal for signers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := types.StringToAddress(args[0])
			if err != nil {
				return err
			}
			return a.withEngine(cmd.Context(), func() error {
				nonce := uint64(flags.nonce)
				if flags.nonce < 0 {
					account, err := a.engine.Account(cmd.Context(), address)
					if err != nil {
						return err
					}
					nonce = account.Nonce
				}
				action, err := flags.action(nonce, time.Now())
				if err != nil {
					return err
				}
				proposal, err := a.client.Propose(cmd.Context(), address, action)
				if errors.Is(err, multisig.ErrNoAuthorizationRequired) {
					fmt.Fprintln(a.out, "no authorization required")
					return nil
				} else if err != nil {
					return err
				}
				file, err := newProposalFile(proposal)
				if err != nil {
					return err
				}
				if err := writeJSON(a.fs, flags.out, file); err != nil {
					return err
				}
				fmt.Fprintln(a.out, proposal.Digest)
				return nil
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&flags.kind, "kind", multisig.KindSpend.String(), "action kind: noop, spend, add_signer, remove_signer, change_threshold")
	fs.Int64Var(&flags.nonce, "nonce", -1, "action nonce, current account nonce if negative")
	fs.DurationVar(&flags.expiry, "expiry", 0, "action is rejected after this duration, zero never expires")
	fs.StringVar(&flags.to, "to", "", "spend destination address")
	fs.Uint64Var(&flags.amount, "amount", 0, "spend amount")
	fs.StringVar(&flags.signer, "signer", "", "hex public key of the added or removed signer")
	fs.Uint32Var(&flags.weight, "weight", 1, "weight of the added signer")
	fs.Uint32Var(&flags.threshold, "threshold", 0, "new threshold")
	fs.StringVarP(&flags.out, "out", "o", "proposal.json", "file to write the proposal to")
	return cmd
}

func signCmd(a *app) *cobra.Command {
	var proposalPath, keyPath, out string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign the digest of a proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var file proposalFile
			if err := readJSON(a.fs, proposalPath, &file); err != nil {
				return err
			}
			// refuse to sign a digest that doesn't commit to the advertised action
			proposal, err := file.proposal()
			if err != nil {
				return err
			}
			signer, err := readSigner(a.fs, keyPath, a.prefix())
			if err != nil {
				return err
			}
			sig := signatureFile{
				Digest:    proposal.Digest,
				PublicKey: signer.PublicKey(),
				Signature: signer.Sign(signing.ACTION, proposal.Digest[:]),
			}
			if err := writeJSON(a.fs, out, &sig); err != nil {
				return err
			}
			a.logger.Info("signed proposal",
				zap.Stringer("address", proposal.Address),
				zap.Stringer("kind", proposal.Action.Kind()),
				zap.Uint64("nonce", proposal.Action.Nonce),
				zap.Stringer("digest", proposal.Digest),
				zap.Stringer("signer", sig.PublicKey),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&proposalPath, "proposal", "proposal.json", "proposal file")
	cmd.Flags().StringVar(&keyPath, "key", "", "private key file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the signature to")
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("out")
	return cmd
}

func authorizeCmd(a *app) *cobra.Command {
	var proposalPath string
	cmd := &cobra.Command{
		Use:   "authorize SIGNATURE...",
		Short: "Submit a proposal with collected signatures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file proposalFile
			if err := readJSON(a.fs, proposalPath, &file); err != nil {
				return err
			}
			proposal, err := file.proposal()
			if err != nil {
				return err
			}
			signatures := multisig.Signatures{}
			for _, path := range args {
				var sig signatureFile
				if err := readJSON(a.fs, path, &sig); err != nil {
					return err
				}
				if sig.Digest != proposal.Digest {
					a.logger.Warn("skipping signature over another digest",
						zap.String("path", path),
						zap.Stringer("digest", sig.Digest),
					)
					continue
				}
				signatures.Add(sig.PublicKey, sig.Signature)
			}
			return a.withEngine(cmd.Context(), func() error {
				outcome, err := a.client.Authorize(cmd.Context(), proposal, signatures)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, outcome)
				if outcome.Status != multisig.StatusExecuted {
					return errNotExecuted
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&proposalPath, "proposal", "proposal.json", "proposal file")
	return cmd
}
