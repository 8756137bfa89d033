package deployer

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/tidwall/sjson"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/huff"
)

type ContractArtifactsOpts struct {
	// ContractNames limits generation to specific contracts, all discovered
	// sources are processed when empty.
	ContractNames   []string
	OutputDir       string
	CompilerFlags   []huff.CompilerArg
	RetainInterface bool
}

// Artifacts runs huffc artifact generation for each selected source and
// writes a combined {contractName, abi, bytecode} JSON next to the huffc
// output. Failures are accumulated per-source, a single bad contract does
// not abort the rest.
func (d *deployer) Artifacts(
	ctx context.Context,
	artifactsOpts ContractArtifactsOpts,
) error {
	if len(artifactsOpts.OutputDir) == 0 {
		return errors.New("artifacts output dir not specified")
	}

	names := artifactsOpts.ContractNames
	if len(names) == 0 {
		sources, err := d.discoverSources()
		if err != nil {
			return err
		}

		for _, path := range sources {
			base := filepath.Base(path)
			names = append(names, strings.TrimSuffix(base, filepath.Ext(base)))
		}
	}

	if err := os.MkdirAll(artifactsOpts.OutputDir, 0755); err != nil {
		return errors.Wrap(err, "failed to prepare artifacts output dir")
	}

	var result *multierror.Error
	for _, name := range names {
		if err := d.generateContractArtifact(name, artifactsOpts); err != nil {
			log.WithField("contract", name).WithError(err).Errorln("failed to generate artifact")
			result = multierror.Append(result, errors.Wrap(err, name))
		}
	}

	return result.ErrorOrNil()
}

func (d *deployer) generateContractArtifact(contractName string, artifactsOpts ContractArtifactsOpts) error {
	sourcePath, err := d.findContractSource(contractName)
	if err != nil {
		return err
	}

	contract, err := d.getCompiledContract(
		contractName,
		sourcePath,
		nil,
		artifactsOpts.CompilerFlags,
		artifactsOpts.RetainInterface,
	)
	if err != nil {
		return err
	}

	if err := d.compiler.GenerateArtifacts(contract.SourcePath, artifactsOpts.OutputDir); err != nil {
		return err
	}

	artifact := []byte(`{}`)
	if artifact, err = sjson.SetBytes(artifact, "contractName", contract.Name); err != nil {
		return errors.Wrap(err, "failed to assemble artifact JSON")
	}
	if artifact, err = sjson.SetRawBytes(artifact, "abi", contract.ABI); err != nil {
		return errors.Wrap(err, "failed to assemble artifact JSON")
	}
	if artifact, err = sjson.SetBytes(artifact, "bytecode", contract.Bin); err != nil {
		return errors.Wrap(err, "failed to assemble artifact JSON")
	}

	artifactPath := filepath.Join(artifactsOpts.OutputDir, contract.Name+".json")
	if err := ioutil.WriteFile(artifactPath, artifact, 0644); err != nil {
		return errors.Wrap(err, "failed to write combined artifact")
	}

	log.WithField("contract", contract.Name).Debugln("artifact written to", artifactPath)
	return nil
}
