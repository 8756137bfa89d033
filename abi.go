package main

import (
	"context"
	"encoding/json"
	"fmt"

	cli "github.com/jawher/mow.cli"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/deployer"
)

func onAbi(cmd *cli.Cmd) {
	signaturesOnly := cmd.BoolOpt("signatures", false, "Print raw scraped interface signatures instead of JSON ABI.")
	jqFilter := cmd.StringOpt("filter", "", "Apply a jq expression to the JSON ABI output.")

	cmd.Spec = "[--signatures | --filter]"

	cmd.Action = func() {
		d, err := deployer.New(
			deployer.OptionContractsDir(*contractsDir),
			deployer.OptionNoCache(*noCache),
			deployer.OptionBuildCacheDir(*buildCacheDir),
			deployer.OptionHuffcPath(*huffcPath),
		)
		if err != nil {
			log.WithError(err).Fatalln("failed to init deployer")
		}

		contract, err := d.Build(context.Background(), deployer.ContractBuildOpts{
			ContractName:    *contractName,
			RetainInterface: *keepInterface,
		})
		if err != nil {
			log.Fatalln(err)
		}

		if *signaturesOnly {
			for _, sig := range contract.FuncSignatures {
				fmt.Println(sig)
			}
			for _, sig := range contract.EventSignatures {
				fmt.Println(sig)
			}
			return
		}

		if len(*jqFilter) > 0 {
			results, err := applyJQFilter(*jqFilter, contract.ABI)
			if err != nil {
				log.Fatalln(err)
			}

			for _, result := range results {
				fmt.Println(result)
			}
			return
		}

		var indented json.RawMessage = contract.ABI
		out, _ := json.MarshalIndent(indented, "", "\t")
		fmt.Println(string(out))
	}
}
