package main

import (
	"context"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/certchain/certificate-registry-backend/common"
	"github.com/certchain/certificate-registry-backend/core"
	"github.com/certchain/certificate-registry-backend/httpserver"
	"github.com/certchain/certificate-registry-backend/index"
	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/certchain/certificate-registry-backend/policy"
	"github.com/certchain/certificate-registry-backend/registry"
	"github.com/certchain/certificate-registry-backend/storage"
)

var flags []cli.Flag = []cli.Flag{
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
		Name:  "issuer-private-key",
		Value: "",
		Usage: "hex-encoded private key for signing issuance and revocation transactions; omit for a read-only verifier node",
	},
	&cli.Int64Flag{
		Name:  "chain-id",
		Value: 1337,
		Usage: "chain id for the transaction signer",
	},
	&cli.StringSliceFlag{
		Name:  "storage-uri",
		Value: cli.NewStringSlice("file:///var/lib/certificate-registry"),
		Usage: "content store URIs (ipfs://, file://, s3://, vault://); repeat for replication",
	},
	&cli.StringFlag{
		Name:  "index-dsn",
		Value: "",
		Usage: "PostgreSQL DSN for the off-chain index; omit for in-memory",
	},
	&cli.Int64Flag{
		Name:  "confirm-timeout-seconds",
		Value: 90,
		Usage: "seconds to wait for a ledger confirmation before reporting the outcome as ambiguous",
	},
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8080",
		Usage: "address to listen on for API",
	},
	&cli.StringFlag{
		Name:  "metrics-addr",
		Value: "127.0.0.1:8090",
		Usage: "address to listen on for Prometheus metrics",
	},
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
	&cli.BoolFlag{
		Name:  "log-uid",
		Value: false,
		Usage: "generate a uuid and add to all log messages",
	},
	&cli.StringFlag{
		Name:  "log-service",
		Value: common.PackageName,
		Usage: "add 'service' tag to logs",
	},
	&cli.BoolFlag{
		Name:  "pprof",
		Value: false,
		Usage: "enable pprof debug endpoint",
	},
	&cli.Int64Flag{
		Name:  "drain-seconds",
		Value: 45,
		Usage: "seconds to wait in drain HTTP request",
	},
}

func main() {
	app := &cli.App{
		Name:   "registry-server",
		Usage:  "Serve the certificate registry API",
		Flags:  flags,
		Action: runServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(cCtx *cli.Context) error {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool("log-debug"),
		JSON:    cCtx.Bool("log-json"),
		Service: cCtx.String("log-service"),
		Version: common.Version,
	})
	if cCtx.Bool("log-uid") {
		logger = logger.With("uid", uuid.Must(uuid.NewRandom()).String())
	}

	ctx := context.Background()

	// Ledger
	rpcAddress := cCtx.String("rpc-addr")
	logger.Info("Connecting to blockchain RPC", "address", rpcAddress)
	ethClient, err := ethclient.Dial(rpcAddress)
	if err != nil {
		logger.Error("Failed to dial RPC", "err", err)
		return err
	}

	contractAddr := cCtx.String("contract-address")
	if !ethcommon.IsHexAddress(contractAddr) {
		logger.Error("Invalid contract address", "address", contractAddr)
		return cli.Exit("invalid contract address", 1)
	}
	ledger, err := registry.NewLedgerClient(ethClient, ethClient, ethcommon.HexToAddress(contractAddr), logger)
	if err != nil {
		logger.Error("Failed to create ledger client", "err", err)
		return err
	}

	if keyHex := cCtx.String("issuer-private-key"); keyHex != "" {
		key, err := crypto.HexToECDSA(keyHex)
		if err != nil {
			logger.Error("Invalid issuer private key", "err", err)
			return err
		}
		auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cCtx.Int64("chain-id")))
		if err != nil {
			logger.Error("Failed to create transactor", "err", err)
			return err
		}
		ledger.SetTransactOpts(auth)
		logger.Info("Transaction signing enabled", "signer", ledger.SignerAddress().String())
	} else {
		logger.Info("No issuer key configured, running read-only")
	}

	// Content store
	storageFactory := storage.NewStoreFactory(logger)
	var locations []interfaces.StoreLocation
	for _, uri := range cCtx.StringSlice("storage-uri") {
		location, err := interfaces.NewStoreLocation(uri)
		if err != nil {
			logger.Error("Invalid storage URI", "uri", uri, "err", err)
			return err
		}
		locations = append(locations, location)
	}
	store, err := storageFactory.CreateMultiStore(locations)
	if err != nil {
		logger.Error("Failed to create content store", "err", err)
		return err
	}

	// Off-chain index
	var offchainIndex interfaces.OffChainIndex
	if dsn := cCtx.String("index-dsn"); dsn != "" {
		pgIndex, err := index.NewPostgresIndex(ctx, dsn, logger)
		if err != nil {
			logger.Error("Failed to connect to index database", "err", err)
			return err
		}
		defer pgIndex.Close()
		offchainIndex = pgIndex
		logger.Info("Using PostgreSQL off-chain index")
	} else {
		offchainIndex = index.NewMemoryIndex()
		logger.Warn("Using in-memory off-chain index, state is lost on restart")
	}

	// Advisory authorization policy, seeded from the contract
	var advisory interfaces.AuthorizationPolicy
	if owner, err := ledger.Owner(ctx); err != nil {
		logger.Warn("Could not read registry owner, advisory policy disabled", "err", err)
	} else if pol, err := policy.New(owner); err != nil {
		logger.Warn("Could not build advisory policy", "err", err)
	} else {
		if signer := ledger.SignerAddress(); !signer.IsZero() {
			if err := pol.SyncFromLedger(ctx, ledger, []interfaces.ActorAddress{signer}); err != nil {
				logger.Warn("Could not sync advisory policy from ledger", "err", err)
			}
		}
		advisory = pol
	}

	registryCore, err := core.New(core.Config{
		Ledger:         ledger,
		Store:          store,
		Index:          offchainIndex,
		Policy:         advisory,
		Log:            logger,
		ConfirmTimeout: time.Duration(cCtx.Int64("confirm-timeout-seconds")) * time.Second,
	})
	if err != nil {
		logger.Error("Failed to create registry core", "err", err)
		return err
	}

	server, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               cCtx.String("listen-addr"),
		MetricsAddr:              cCtx.String("metrics-addr"),
		Log:                      logger,
		EnablePprof:              cCtx.Bool("pprof"),
		DrainDuration:            time.Duration(cCtx.Int64("drain-seconds")) * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}, httpserver.NewHandler(registryCore, logger))
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}

	server.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	logger.Info("Server is running, press Ctrl+C to stop")
	<-exit
	logger.Info("Shutdown signal received")

	server.Shutdown()
	logger.Info("Server shutdown complete")
	return nil
}
