package main

import (
	"context"
	"fmt"

	cli "github.com/jawher/mow.cli"
	log "github.com/xlab/suplog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/InjectiveLabs/huffman/deployer"
)

func onCall(cmd *cli.Cmd) {
	contractAddress := cmd.StringArg("ADDRESS", "", "Contract address to interact with.")
	methodName := cmd.StringArg("METHOD", "", "Contract method to call.")
	methodArgs := cmd.StringsArg("ARGS", []string{}, "Method call arguments. Will be ABI-encoded.")
	fromAddress := cmd.StringOpt("from", "0x0000000000000000000000000000000000000000", "Estimate call using specified from address.")

	cmd.Spec = "[--from] ADDRESS METHOD [ARGS...]"

	cmd.Action = func() {
		d, err := deployer.New(
			deployer.OptionRPCTimeout(duration(*rpcTimeout, defaultRPCTimeout)),
			deployer.OptionCallTimeout(duration(*callTimeout, defaultCallTimeout)),

			deployer.OptionEVMRPCEndpoint(*evmEndpoint),
			deployer.OptionContractsDir(*contractsDir),
			deployer.OptionNoCache(*noCache),
			deployer.OptionBuildCacheDir(*buildCacheDir),
			deployer.OptionHuffcPath(*huffcPath),
		)
		if err != nil {
			log.WithError(err).Fatalln("failed to init deployer")
		}

		callOpts := deployer.ContractCallOpts{
			From:            common.HexToAddress(*fromAddress),
			ContractName:    *contractName,
			Contract:        common.HexToAddress(*contractAddress),
			RetainInterface: *keepInterface,
		}

		output, outputAbi, err := d.Call(
			context.Background(),
			callOpts,
			*methodName,
			func(args abi.Arguments) []interface{} {
				mappedArgs, err := mapStringArgs(args, *methodArgs)
				if err != nil {
					log.WithError(err).Fatalln("failed to map method args")
					return nil
				}

				return mappedArgs
			},
		)
		if err != nil {
			log.Fatalln(err)
		}

		for idx, value := range output {
			name := outputAbi[idx].Name
			if len(name) == 0 {
				name = fmt.Sprintf("ret%d", idx)
			}

			fmt.Printf("%s: %v\n", name, value)
		}
	}
}
