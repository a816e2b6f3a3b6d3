package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"

	"github.com/certchain/certificate-registry-backend/api"
	"github.com/certchain/certificate-registry-backend/api/clients"
	"github.com/certchain/certificate-registry-backend/common"
	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/certchain/certificate-registry-backend/registry"
)

var serverFlag = &cli.StringFlag{
	Name:  "server",
	Value: "http://127.0.0.1:8080",
	Usage: "registry server address",
}

var logFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
}

var adminFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "rpc-addr",
		Value: "http://127.0.0.1:8545",
		Usage: "address to connect to RPC",
	},
	&cli.StringFlag{
		Name:     "contract-address",
		Required: true,
		Usage:    "CertificateVerifier contract address, 0x-prefixed hex",
	},
	&cli.StringFlag{
		Name:     "owner-private-key",
		Required: true,
		Usage:    "hex-encoded private key of the registry owner",
	},
	&cli.Int64Flag{
		Name:  "chain-id",
		Value: 1337,
		Usage: "chain id for the transaction signer",
	},
}

func main() {
	app := &cli.App{
		Name:  "registry-client",
		Usage: "Interact with the certificate registry",
		Commands: []*cli.Command{
			{
				Name:  "upload",
				Usage: "Upload a certificate document for later issuance",
				Flags: append([]cli.Flag{
					serverFlag,
					&cli.StringFlag{Name: "file", Required: true, Usage: "path to the PDF certificate document"},
					&cli.StringFlag{Name: "student", Required: true, Usage: "student name"},
					&cli.StringFlag{Name: "course", Required: true, Usage: "course name"},
					&cli.StringFlag{Name: "grade", Usage: "optional grade"},
					&cli.StringFlag{Name: "description", Usage: "optional description"},
				}, logFlags...),
				Action: uploadCertificate,
			},
			{
				Name:      "issue",
				Usage:     "Anchor a pending certificate on the ledger",
				ArgsUsage: "<application-cert-id>",
				Flags: append([]cli.Flag{
					serverFlag,
					&cli.StringFlag{Name: "issuer", Required: true, Usage: "issuing institution name"},
					&cli.StringFlag{Name: "student", Usage: "override the student name recorded at upload"},
					&cli.StringFlag{Name: "course", Usage: "override the course name recorded at upload"},
				}, logFlags...),
				Action: issueCertificate,
			},
			{
				Name:      "attach",
				Usage:     "Report an issuing transaction submitted with your own wallet",
				ArgsUsage: "<application-cert-id> <tx-hash>",
				Flags:     append([]cli.Flag{serverFlag}, logFlags...),
				Action:    attachTransaction,
			},
			{
				Name:      "verify",
				Usage:     "Verify a certificate by record key, application ID, or transaction hash",
				ArgsUsage: "<key|id|tx> <value>",
				Flags:     append([]cli.Flag{serverFlag}, logFlags...),
				Action:    verifyCertificate,
			},
			{
				Name:      "revoke",
				Usage:     "Permanently invalidate a certificate record",
				ArgsUsage: "<record-key>",
				Flags:     append([]cli.Flag{serverFlag}, logFlags...),
				Action:    revokeCertificate,
			},
			{
				Name:   "health",
				Usage:  "Probe the registry server's components",
				Flags:  append([]cli.Flag{serverFlag}, logFlags...),
				Action: checkHealth,
			},
			{
				Name:      "authorize-issuer",
				Usage:     "Grant issuance rights to an actor (owner only, talks to the contract directly)",
				ArgsUsage: "<issuer-address>",
				Flags:     append(append([]cli.Flag{}, adminFlags...), logFlags...),
				Action:    authorizeIssuer,
			},
			{
				Name:      "revoke-issuer",
				Usage:     "Remove an actor from the issuer set (owner only, talks to the contract directly)",
				ArgsUsage: "<issuer-address>",
				Flags:     append(append([]cli.Flag{}, adminFlags...), logFlags...),
				Action:    revokeIssuer,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func apiClient(cCtx *cli.Context) *clients.CertificateClient {
	return &clients.CertificateClient{ServerAddr: cCtx.String("server")}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func uploadCertificate(cCtx *cli.Context) error {
	document, err := os.ReadFile(cCtx.String("file"))
	if err != nil {
		return fmt.Errorf("could not read document: %w", err)
	}

	resp, err := apiClient(cCtx).Upload(document, api.UploadMetadata{
		StudentName: cCtx.String("student"),
		CourseName:  cCtx.String("course"),
		Grade:       cCtx.String("grade"),
		Description: cCtx.String("description"),
	})
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func issueCertificate(cCtx *cli.Context) error {
	if cCtx.Args().Len() != 1 {
		return cli.Exit("expected exactly one argument: the application certificate ID", 1)
	}

	resp, err := apiClient(cCtx).Issue(cCtx.Args().First(), api.IssueRequest{
		IssuerName:  cCtx.String("issuer"),
		StudentName: cCtx.String("student"),
		CourseName:  cCtx.String("course"),
	})
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func attachTransaction(cCtx *cli.Context) error {
	if cCtx.Args().Len() != 2 {
		return cli.Exit("expected two arguments: application certificate ID and transaction hash", 1)
	}

	resp, err := apiClient(cCtx).AttachTransaction(cCtx.Args().Get(0), cCtx.Args().Get(1))
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func verifyCertificate(cCtx *cli.Context) error {
	if cCtx.Args().Len() != 2 {
		return cli.Exit("expected two arguments: lookup kind (key, id, or tx) and value", 1)
	}

	result, err := runVerify(apiClient(cCtx), cCtx.Args().Get(0), cCtx.Args().Get(1))
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runVerify(provider api.CertificateProvider, kind, value string) (*interfaces.VerificationResult, error) {
	switch kind {
	case "key":
		return provider.VerifyByKey(value)
	case "id":
		return provider.VerifyByApplicationID(value)
	case "tx":
		return provider.VerifyByTransaction(value)
	default:
		return nil, fmt.Errorf("unknown lookup kind %q, expected key, id, or tx", kind)
	}
}

func revokeCertificate(cCtx *cli.Context) error {
	if cCtx.Args().Len() != 1 {
		return cli.Exit("expected exactly one argument: the record key", 1)
	}

	resp, err := apiClient(cCtx).Revoke(cCtx.Args().First())
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func checkHealth(cCtx *cli.Context) error {
	resp, err := apiClient(cCtx).Health()
	if err != nil {
		return err
	}
	if err := printJSON(resp); err != nil {
		return err
	}
	if !resp.Healthy {
		return cli.Exit("service degraded", 1)
	}
	return nil
}

func adminLedger(cCtx *cli.Context) (*registry.LedgerClient, error) {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool("log-debug"),
		JSON:    cCtx.Bool("log-json"),
		Service: "registry-client",
		Version: common.Version,
	})

	ethClient, err := ethclient.Dial(cCtx.String("rpc-addr"))
	if err != nil {
		return nil, fmt.Errorf("could not dial RPC: %w", err)
	}

	contractAddr := cCtx.String("contract-address")
	if !ethcommon.IsHexAddress(contractAddr) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddr)
	}
	ledger, err := registry.NewLedgerClient(ethClient, ethClient, ethcommon.HexToAddress(contractAddr), logger)
	if err != nil {
		return nil, err
	}

	key, err := crypto.HexToECDSA(cCtx.String("owner-private-key"))
	if err != nil {
		return nil, fmt.Errorf("invalid owner private key: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cCtx.Int64("chain-id")))
	if err != nil {
		return nil, err
	}
	ledger.SetTransactOpts(auth)

	return ledger, nil
}

func issuerAddress(cCtx *cli.Context) (interfaces.ActorAddress, error) {
	if cCtx.Args().Len() != 1 {
		return interfaces.ActorAddress{}, cli.Exit("expected exactly one argument: the issuer address", 1)
	}
	raw := cCtx.Args().First()
	if !ethcommon.IsHexAddress(raw) {
		return interfaces.ActorAddress{}, fmt.Errorf("invalid issuer address %q", raw)
	}
	return interfaces.ActorAddress(ethcommon.HexToAddress(raw)), nil
}

func authorizeIssuer(cCtx *cli.Context) error {
	ledger, err := adminLedger(cCtx)
	if err != nil {
		return err
	}
	issuer, err := issuerAddress(cCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := ledger.AuthorizeIssuer(ctx, issuer)
	if err != nil {
		return err
	}
	fmt.Printf("authorization submitted: tx %s\n", tx.String())
	return nil
}

func revokeIssuer(cCtx *cli.Context) error {
	ledger, err := adminLedger(cCtx)
	if err != nil {
		return err
	}
	issuer, err := issuerAddress(cCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := ledger.RevokeIssuer(ctx, issuer)
	if err != nil {
		return err
	}
	fmt.Printf("issuer revocation submitted: tx %s\n", tx.String())
	return nil
}
