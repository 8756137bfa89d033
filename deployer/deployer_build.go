package deployer

import (
	"context"

	"github.com/InjectiveLabs/huffman/huff"
)

type ContractBuildOpts struct {
	ContractName      string
	ConstructorInputs []string
	CompilerFlags     []huff.CompilerArg
	RetainInterface   bool
}

func (d *deployer) Build(
	ctx context.Context,
	buildOpts ContractBuildOpts,
) (*huff.Contract, error) {
	sourcePath, err := d.findContractSource(buildOpts.ContractName)
	if err != nil {
		return nil, err
	}

	return d.getCompiledContract(
		buildOpts.ContractName,
		sourcePath,
		buildOpts.ConstructorInputs,
		buildOpts.CompilerFlags,
		buildOpts.RetainInterface,
	)
}
