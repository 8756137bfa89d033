package deployer

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/InjectiveLabs/huffman/huff"
)

type ContractCallOpts struct {
	From common.Address

	ContractName    string
	Contract        common.Address
	CompilerFlags   []huff.CompilerArg
	RetainInterface bool
}

func (d *deployer) Call(
	ctx context.Context,
	callOpts ContractCallOpts,
	methodName string,
	methodInputMapper AbiMethodInputMapperFunc,
) (output []interface{}, outputAbi abi.Arguments, err error) {
	sourcePath, err := d.findContractSource(callOpts.ContractName)
	if err != nil {
		log.WithField("contract", callOpts.ContractName).WithError(err).Errorln("failed to locate contract source")
		return nil, nil, err
	}

	contract, err := d.getCompiledContract(callOpts.ContractName, sourcePath, nil, callOpts.CompilerFlags, callOpts.RetainInterface)
	if err != nil {
		return nil, nil, err
	}
	contract.Address = callOpts.Contract

	client, err := d.Backend()
	if err != nil {
		return nil, nil, err
	}

	boundContract, err := BindContract(client, contract)
	if err != nil {
		log.WithField("contract", callOpts.ContractName).WithError(err).Errorln("failed to bind contract")
		return nil, nil, err
	}

	method, ok := boundContract.ABI().Methods[methodName]
	if !ok {
		return nil, nil, errors.Errorf("method not found: %s", methodName)
	}

	var mappedArgs []interface{}
	if methodInputMapper != nil {
		mappedArgs = methodInputMapper(method.Inputs)
	}

	callCtx, cancelFn := context.WithTimeout(ctx, d.options.CallTimeout)
	defer cancelFn()

	ethCallOpts := &bind.CallOpts{
		From:    callOpts.From,
		Context: callCtx,
	}

	var out []interface{}
	if err := boundContract.Call(ethCallOpts, &out, methodName, mappedArgs...); err != nil {
		err = errors.Wrapf(err, "failed to call %s", methodName)
		return nil, nil, err
	}

	return out, method.Outputs, nil
}
