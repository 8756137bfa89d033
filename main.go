package main

import (
	"fmt"
	"os"

	cli "github.com/jawher/mow.cli"
	"github.com/joho/godotenv"
	log "github.com/xlab/suplog"
)

var app = cli.App("huffman", "Compiles and deploys Huff contracts on an arbitrary EVM. Requires huffc (huff-rs).")

func main() {
	// .env is optional, flags and process env always win
	_ = godotenv.Load()

	app.Action = func() {
		fmt.Println("You should use either deploy, build, abi, artifacts, tx, call or logs command. See --help for more info.")
	}

	app.Command("build", "Compiles given Huff contract to deployment bytecode. Caches build artefacts.", onBuild)
	app.Command("deploy", "Deploys given Huff contract on the EVM chain. Caches build artefacts.", onDeploy)
	app.Command("abi", "Prints the ABI reconstructed from the generated contract interface.", onAbi)
	app.Command("artifacts", "Generates huffc artifacts and combined ABI+bytecode JSON files.", onArtifacts)
	app.Command("tx", "Creates a transaction for particular contract method. Uses build cache.", onTx)
	app.Command("call", "Calls a read-only contract method. Uses build cache.", onCall)
	app.Command("logs", "Loads logs of a particular event from contract.", onLogs)

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
