package main

import (
	"context"

	cli "github.com/jawher/mow.cli"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/deployer"
)

func onArtifacts(cmd *cli.Cmd) {
	outputDir := cmd.StringOpt("o output-dir", "artifacts/", "Directory to write huffc artifacts and combined JSON files into.")
	contractNames := cmd.StringsArg("NAMES", []string{}, "Contract names to generate artifacts for. All discovered sources when empty.")

	cmd.Spec = "[--output-dir] [NAMES...]"

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

		err = d.Artifacts(context.Background(), deployer.ContractArtifactsOpts{
			ContractNames:   *contractNames,
			OutputDir:       *outputDir,
			RetainInterface: *keepInterface,
		})
		if err != nil {
			log.Fatalln(err)
		}

		log.Infoln("artifacts written to", *outputDir)
	}
}
