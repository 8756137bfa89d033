package main

import (
	"time"

	cli "github.com/jawher/mow.cli"
)

const (
	defaultRPCTimeout  = 10 * time.Second
	defaultTxTimeout   = 10 * time.Second
	defaultCallTimeout = 10 * time.Second
)

var (
	huffcPathSet bool
	huffcPath    = app.String(cli.StringOpt{
		Name:      "huffc-path",
		Desc:      "Set path of the huffc executable. Found using 'which' otherwise",
		EnvVar:    "DEPLOYER_HUFFC_PATH",
		Value:     "",
		SetByUser: &huffcPathSet,
	})

	contractName = app.String(cli.StringOpt{
		Name:   "N name",
		Desc:   "Specify contract name to use. Matched case-insensitively against source basenames.",
		EnvVar: "DEPLOYER_CONTRACT_NAME",
		Value:  "Counter",
	})

	contractsDir = app.String(cli.StringOpt{
		Name:   "C contracts-dir",
		Desc:   "Set the directory tree scanned for .huff source files.",
		EnvVar: "DEPLOYER_CONTRACTS_DIR",
		Value:  "contracts/",
	})

	evmEndpoint = app.String(cli.StringOpt{
		Name:   "E endpoint",
		Desc:   "Specify the JSON-RPC endpoint for accessing Ethereum node",
		EnvVar: "DEPLOYER_RPC_URI",
		Value:  "http://localhost:8545",
	})

	signerType = app.String(cli.StringOpt{
		Name:   "signer",
		Desc:   "Override the default signer type (eip155, homestead)",
		EnvVar: "DEPLOYER_SIGNER_TYPE",
		Value:  "eip155",
	})

	gasPriceSet bool
	gasPrice    = app.Int(cli.IntOpt{
		Name:      "G gas-price",
		Desc:      "Override estimated gas price with this option.",
		EnvVar:    "DEPLOYER_TX_GAS_PRICE",
		Value:     50, // wei
		SetByUser: &gasPriceSet,
	})

	gasLimit = app.Int(cli.IntOpt{
		Name:   "L gas-limit",
		Desc:   "Set the maximum gas for tx.",
		EnvVar: "DEPLOYER_TX_GAS_LIMIT",
		Value:  5000000,
	})

	buildCacheDir = app.String(cli.StringOpt{
		Name:   "cache-dir",
		Desc:   "Set cache dir for build artifacts.",
		EnvVar: "DEPLOYER_CACHE_DIR",
		Value:  "build/",
	})

	noCache = app.Bool(cli.BoolOpt{
		Name:   "no-cache",
		Desc:   "Disables build cache completely.",
		EnvVar: "DEPLOYER_DISABLE_CACHE",
		Value:  false,
	})

	keepInterface = app.Bool(cli.BoolOpt{
		Name:   "keep-interface",
		Desc:   "Retain the generated Solidity interface file instead of removing it.",
		EnvVar: "DEPLOYER_KEEP_INTERFACE",
		Value:  false,
	})

	rpcTimeout = app.String(cli.StringOpt{
		Name:   "rpc-timeout",
		Desc:   "Set the timeout for generic RPC interactions, e.g. 15s",
		EnvVar: "DEPLOYER_RPC_TIMEOUT",
		Value:  "10s",
	})

	txTimeout = app.String(cli.StringOpt{
		Name:   "tx-timeout",
		Desc:   "Set the timeout for tx confirmation awaits, e.g. 1m",
		EnvVar: "DEPLOYER_TX_TIMEOUT",
		Value:  "10s",
	})

	callTimeout = app.String(cli.StringOpt{
		Name:   "call-timeout",
		Desc:   "Set the timeout for read-only calls, e.g. 15s",
		EnvVar: "DEPLOYER_CALL_TIMEOUT",
		Value:  "10s",
	})
)
