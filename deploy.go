package main

import (
	"context"
	"fmt"
	"math/big"

	cli "github.com/jawher/mow.cli"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/deployer"
)

func onDeploy(cmd *cli.Cmd) {
	bytecodeOnly := cmd.BoolOpt("bytecode", false, "Produce hex-encoded contract bytecode only. Do not interact with RPC.")
	await := cmd.BoolOpt("await", true, "Await transaction confirmation from the RPC.")
	compilerArgs := cmd.StringsOpt("c compiler-arg", []string{}, "Extra huffc flags as key=value pairs.")
	constructorInputs := cmd.StringsArg("ARGS", []string{}, "Contract constructor's inputs. Passed to huffc as-is.")

	cmd.Spec = "[--bytecode | --await] [--compiler-arg...] [ARGS...]"

	cmd.Action = func() {
		compilerFlags, err := parseCompilerFlags(*compilerArgs)
		if err != nil {
			log.WithError(err).Fatalln("failed to parse compiler flags")
		}

		d, err := deployer.New(
			deployer.OptionRPCTimeout(duration(*rpcTimeout, defaultRPCTimeout)),
			deployer.OptionCallTimeout(duration(*callTimeout, defaultCallTimeout)),
			deployer.OptionTxTimeout(duration(*txTimeout, defaultTxTimeout)),

			deployer.OptionEVMRPCEndpoint(*evmEndpoint),
			deployer.OptionSignerType(deployer.SignerType(*signerType)),
			deployer.OptionGasPrice(big.NewInt(int64(*gasPrice))),
			deployer.OptionGasLimit(uint64(*gasLimit)),
			deployer.OptionContractsDir(*contractsDir),
			deployer.OptionNoCache(*noCache),
			deployer.OptionBuildCacheDir(*buildCacheDir),
			deployer.OptionHuffcPath(*huffcPath),
		)
		if err != nil {
			log.WithError(err).Fatalln("failed to init deployer")
		}

		deployOpts := deployer.ContractDeployOpts{
			ContractName:      *contractName,
			ConstructorInputs: *constructorInputs,
			CompilerFlags:     compilerFlags,
			RetainInterface:   *keepInterface,
			BytecodeOnly:      *bytecodeOnly,
			Await:             *await,
		}

		if !*bytecodeOnly {
			client, err := d.Backend()
			if err != nil {
				log.Fatalln(err)
			}

			chainCtx, cancelFn := context.WithTimeout(context.Background(), duration(*rpcTimeout, defaultRPCTimeout))
			defer cancelFn()

			chainID, err := client.ChainID(chainCtx)
			if err != nil {
				log.WithError(err).Fatalln("failed get valid chain ID")
			}

			fromAddress, signerFn, err := initEthereumAccountsManager(
				chainID.Uint64(),
				keystoreDir,
				from,
				fromPassphrase,
				fromPrivKey,
			)
			if err != nil {
				log.WithError(err).Fatalln("failed init SignerFn")
			}

			log.Debugln("sending from", fromAddress.Hex())

			deployOpts.From = fromAddress
			deployOpts.SignerFn = signerFn
		}

		txHash, contract, err := d.Deploy(context.Background(), deployOpts)
		if err != nil {
			log.Fatalln(err)
		}

		if *bytecodeOnly {
			fmt.Println(contract.Bin)
			return
		}

		if !*await {
			log.WithField("txHash", txHash.Hex()).Infoln("contract address", contract.Address.Hex())
		}

		fmt.Println(contract.Address.Hex())
	}
}
