package main

import (
	"context"
	"encoding/json"
	"fmt"

	cli "github.com/jawher/mow.cli"
	log "github.com/xlab/suplog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/InjectiveLabs/huffman/deployer"
)

func onLogs(cmd *cli.Cmd) {
	contractAddress := cmd.StringArg("ADDRESS", "", "Contract address to interact with.")
	txHash := cmd.StringArg("TX_HASH", "", "Transaction hash to find receipt.")
	eventName := cmd.StringArg("EVENT_NAME", "", "Contract event to find in the logs.")
	jqFilter := cmd.StringOpt("filter", "", "Apply a jq expression to the JSON events output.")

	cmd.Spec = "[--filter] ADDRESS TX_HASH EVENT_NAME"

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

		logsOpts := deployer.ContractLogsOpts{
			ContractName:    *contractName,
			Contract:        common.HexToAddress(*contractAddress),
			RetainInterface: *keepInterface,
		}

		log.Debugln("target contract", logsOpts.Contract.Hex())
		log.Debugln("target tx", *txHash)
		log.Debugln("target event name", *eventName)

		events, err := d.Logs(
			context.Background(),
			logsOpts,
			common.HexToHash(*txHash),
			*eventName,
		)
		if err != nil {
			log.Fatalln(err)
		}

		cmdOut, _ := json.MarshalIndent(events, "", "\t")

		if len(*jqFilter) > 0 {
			results, err := applyJQFilter(*jqFilter, cmdOut)
			if err != nil {
				log.Fatalln(err)
			}

			for _, result := range results {
				fmt.Println(result)
			}
			return
		}

		fmt.Println(string(cmdOut))
	}
}
