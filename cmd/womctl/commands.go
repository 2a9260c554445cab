package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"wom-connector/config"
	"wom-connector/internal/adapter/http/dto"
	"wom-connector/internal/adapter/registry"
	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/internal/service"
	"wom-connector/pkg/keyfile"
	"wom-connector/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "womctl",
		Short: "WOM connector command line",
		Long: `womctl issues vouchers and registers payments against a WOM Registry
using the instrument and POS configured for the gateway, and manages the
key files and operator credentials the gateway needs.`,
		Example: `  # Create a key pair for a new instrument
  womctl keygen --private instrument.pem --public instrument.pub

  # Issue ten health vouchers
  womctl -c config.yaml issue --aim H --count 10 --lat 43.72 --lng 12.63

  # Check whether a payment was performed
  womctl -c config.yaml status 2f1c7a4e-8d0b-4c1e-9e57-1d2a3b4c5d6e`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file")

	cmd.AddCommand(
		newKeygenCommand(),
		newHashPasswordCommand(),
		newAimsCommand(opts),
		newIssueCommand(opts),
		newRegisterCommand(opts),
		newStatusCommand(opts),
	)
	return cmd
}

// session is the Registry client built from the configuration file.
type session struct {
	cfg    *config.Config
	client *service.Client
}

func openSession(opts *rootOptions, stderr io.Writer) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	log := logger.NewWithWriter(cfg.Log.Level, stderr)

	var registryKey *domain.AsymmetricKey
	if cfg.Registry.PublicKeyPath != "" {
		if registryKey, err = keyfile.LoadPublicKey(cfg.Registry.PublicKeyPath); err != nil {
			return nil, err
		}
	}

	transport := registry.NewHTTPTransport(cfg.Registry.Scheme, cfg.Registry.Domain, registry.NewHTTPClient(cfg.Registry.Timeout), log)
	client, err := service.NewClient(service.ClientConfig{
		Domain:            cfg.Registry.Domain,
		RegistryPublicKey: registryKey,
	}, transport, service.NewEnvelopeService(log), log)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, client: client}, nil
}

func (s *session) actor(role string, actor config.ActorConfig) (domain.Identifier, *domain.AsymmetricKey, error) {
	if !actor.Enabled() {
		return domain.Identifier{}, nil, fmt.Errorf("%s.id and %s.private_key_path must be configured", role, role)
	}
	id, err := domain.NewIdentifier(actor.ID)
	if err != nil {
		return domain.Identifier{}, nil, err
	}
	key, err := keyfile.LoadPrivateKey(actor.PrivateKeyPath)
	if err != nil {
		return domain.Identifier{}, nil, err
	}
	return id, key, nil
}

func (s *session) instrument() (*service.Instrument, error) {
	id, key, err := s.actor("instrument", s.cfg.Instrument)
	if err != nil {
		return nil, err
	}
	return s.client.NewInstrument(id, key)
}

func (s *session) pointOfSale() (*service.PointOfSale, error) {
	id, key, err := s.actor("pos", s.cfg.POS)
	if err != nil {
		return nil, err
	}
	return s.client.NewPointOfSale(id, key)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newKeygenCommand() *cobra.Command {
	var (
		privPath string
		pubPath  string
		bits     int
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair in PEM format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := keyfile.Generate(bits)
			if err != nil {
				return err
			}
			if err := keyfile.WritePair(key, privPath, pubPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", privPath, pubPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&privPath, "private", "private.pem", "private key output path")
	cmd.Flags().StringVar(&pubPath, "public", "public.pem", "public key output path")
	cmd.Flags().IntVar(&bits, "bits", 2048, "RSA modulus size")
	return cmd
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash an operator password for auth.operators",
		Long:  "Prints the Argon2id hash of the password. Without an argument the password is read from the first line of stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := service.NewArgon2HashService().Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newAimsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "aims",
		Short: "List the Registry's aims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			aims, err := s.client.GetAims(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), aims)
		},
	}
}

func newIssueCommand(opts *rootOptions) *cobra.Command {
	var (
		spec      domain.VoucherSpec
		mode      string
		timestamp string
		issue     ports.IssueOptions
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a batch of vouchers as the configured instrument",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec.CreationMode = domain.CreationMode(mode)
			spec.Timestamp = time.Now().UTC()
			if timestamp != "" {
				ts, err := time.Parse(time.RFC3339, timestamp)
				if err != nil {
					return fmt.Errorf("invalid argument --timestamp: %w", err)
				}
				spec.Timestamp = ts.UTC()
			}

			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			instrument, err := s.instrument()
			if err != nil {
				return err
			}

			req, err := instrument.RequestVouchers(cmd.Context(), []domain.VoucherSpec{spec}, issue)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewHandleResponse(req.Otc, req.Password, req.Link))
		},
	}

	cmd.Flags().StringVar(&spec.Aim, "aim", "", "aim code")
	cmd.Flags().IntVarP(&spec.Count, "count", "n", 1, "number of vouchers")
	cmd.Flags().Float64Var(&spec.Latitude, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&spec.Longitude, "lng", 0, "longitude")
	cmd.Flags().StringVar(&mode, "mode", string(domain.CreationModeStandard), "creation mode (Standard, SetLocationOnRedeem)")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "generation time in RFC 3339 (default now)")
	cmd.Flags().StringVar(&issue.Nonce, "nonce", "", "nonce (default random)")
	cmd.Flags().StringVar(&issue.Password, "password", "", "OTC password (default chosen by the Registry)")
	_ = cmd.MarkFlagRequired("aim")
	return cmd
}

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	var (
		params    ports.PaymentParams
		filterAim string
		maxAge    int64
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a payment as the configured POS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if filterAim != "" || maxAge > 0 {
				params.Filter = &domain.SimpleFilter{}
				if filterAim != "" {
					params.Filter.Aim = &filterAim
				}
				if maxAge > 0 {
					params.Filter.MaxAge = &maxAge
				}
			}

			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pos, err := s.pointOfSale()
			if err != nil {
				return err
			}

			req, err := pos.RequestPayment(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewHandleResponse(req.Otc, req.Password, req.Link))
		},
	}

	cmd.Flags().IntVar(&params.Amount, "amount", 0, "number of vouchers required")
	cmd.Flags().StringVar(&params.PocketAckURL, "pocket-ack-url", "", "URL the paying pocket is sent to")
	cmd.Flags().StringVar(&params.PosAckURL, "pos-ack-url", "", "URL the POS is notified at")
	cmd.Flags().BoolVar(&params.Persistent, "persistent", false, "accept the payment more than once")
	cmd.Flags().StringVar(&filterAim, "filter-aim", "", "accept only vouchers whose aim starts with this code")
	cmd.Flags().Int64Var(&maxAge, "filter-max-age", 0, "accept only vouchers at most this many days old")
	cmd.Flags().StringVar(&params.Nonce, "nonce", "", "nonce (default random)")
	cmd.Flags().StringVar(&params.Password, "password", "", "OTC password (default chosen by the Registry)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("pocket-ack-url")
	return cmd
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <otc>",
		Short: "Show whether a payment registered by the configured POS was performed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			otc, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid argument %q: %w", args[0], err)
			}

			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pos, err := s.pointOfSale()
			if err != nil {
				return err
			}

			status, err := pos.GetPaymentStatus(cmd.Context(), otc)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewPaymentStatusResponse(otc, status))
		},
	}
}
