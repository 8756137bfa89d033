package main

import (
	"context"
	"fmt"

	cli "github.com/jawher/mow.cli"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/deployer"
)

func onBuild(cmd *cli.Cmd) {
	compilerArgs := cmd.StringsOpt("c compiler-arg", []string{}, "Extra huffc flags as key=value pairs.")
	constructorInputs := cmd.StringsArg("ARGS", []string{}, "Contract constructor's inputs. Passed to huffc as-is.")

	cmd.Spec = "[--compiler-arg...] [ARGS...]"

	cmd.Action = func() {
		compilerFlags, err := parseCompilerFlags(*compilerArgs)
		if err != nil {
			log.WithError(err).Fatalln("failed to parse compiler flags")
		}

		d, err := deployer.New(
			// only options applicable to build
			deployer.OptionContractsDir(*contractsDir),
			deployer.OptionNoCache(*noCache),
			deployer.OptionBuildCacheDir(*buildCacheDir),
			deployer.OptionHuffcPath(*huffcPath),
		)
		if err != nil {
			log.WithError(err).Fatalln("failed to init deployer")
		}

		contract, err := d.Build(context.Background(), deployer.ContractBuildOpts{
			ContractName:      *contractName,
			ConstructorInputs: *constructorInputs,
			CompilerFlags:     compilerFlags,
			RetainInterface:   *keepInterface,
		})
		if err != nil {
			log.Fatalln(err)
		}

		fmt.Println(contract.Bin)
	}
}
