package deployer

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/InjectiveLabs/huffman/huff"
)

type ContractTxOpts struct {
	From     common.Address
	FromPk   *ecdsa.PrivateKey
	SignerFn bind.SignerFn

	ContractName    string
	Contract        common.Address
	CompilerFlags   []huff.CompilerArg
	Value           *big.Int
	RetainInterface bool
	BytecodeOnly    bool
	Await           bool
}

func (d *deployer) Tx(
	ctx context.Context,
	txOpts ContractTxOpts,
	methodName string,
	methodInputMapper AbiMethodInputMapperFunc,
) (txHash common.Hash, abiPackedCalldata []byte, err error) {
	sourcePath, err := d.findContractSource(txOpts.ContractName)
	if err != nil {
		log.WithField("contract", txOpts.ContractName).WithError(err).Errorln("failed to locate contract source")
		return noHash, nil, err
	}

	contract, err := d.getCompiledContract(txOpts.ContractName, sourcePath, nil, txOpts.CompilerFlags, txOpts.RetainInterface)
	if err != nil {
		return noHash, nil, err
	}
	contract.Address = txOpts.Contract

	if txOpts.BytecodeOnly {
		boundContract, err := BindContract(nil, contract)
		if err != nil {
			log.WithField("contract", txOpts.ContractName).WithError(err).Errorln("failed to bind contract")
			return noHash, nil, err
		}

		method, ok := boundContract.ABI().Methods[methodName]
		if !ok {
			return noHash, nil, errors.Errorf("method not found: %s", methodName)
		}

		var mappedArgs []interface{}
		if methodInputMapper != nil {
			mappedArgs = methodInputMapper(method.Inputs)
		}

		packedArgs, err := method.Inputs.PackValues(mappedArgs)
		if err != nil {
			err = errors.Wrap(err, "failed to ABI-encode method args")
			return noHash, nil, err
		}

		abiPackedCalldata = append([]byte{}, method.ID...)
		abiPackedCalldata = append(abiPackedCalldata, packedArgs...)

		return noHash, abiPackedCalldata, nil
	}

	client, err := d.Backend()
	if err != nil {
		return noHash, nil, err
	}

	chainCtx, cancelFn := context.WithTimeout(ctx, d.options.RPCTimeout)
	defer cancelFn()

	chainId, err := client.ChainID(chainCtx)
	if err != nil {
		log.WithError(err).Errorln("failed get valid chain ID")
		return noHash, nil, ErrNoChainID
	}

	nonceCtx, cancelFn := context.WithTimeout(ctx, d.options.RPCTimeout)
	defer cancelFn()

	nonce, err := client.PendingNonceAt(nonceCtx, txOpts.From)
	if err != nil {
		log.WithField("from", txOpts.From.Hex()).WithError(err).Errorln("failed to get most recent nonce")
		return noHash, nil, ErrNoNonce
	}

	boundContract, err := BindContract(client, contract)
	if err != nil {
		log.WithField("contract", txOpts.ContractName).WithError(err).Errorln("failed to bind contract")
		return noHash, nil, err
	}

	method, ok := boundContract.ABI().Methods[methodName]
	if !ok {
		return noHash, nil, errors.Errorf("method not found: %s", methodName)
	}

	var mappedArgs []interface{}
	if methodInputMapper != nil {
		mappedArgs = methodInputMapper(method.Inputs)
	}

	boundContract.SetTransact(getTransactFn(client, contract.Address, &txHash))

	var signerFn bind.SignerFn
	if txOpts.SignerFn != nil {
		signerFn = txOpts.SignerFn
	} else {
		signerFn, err = getSignerFn(d.options.SignerType, chainId, txOpts.From, txOpts.FromPk)
		if err != nil {
			log.WithError(err).Errorln("failed to get signer function")
			return noHash, nil, err
		}
	}

	txCtx, cancelFn := context.WithTimeout(ctx, d.options.RPCTimeout)
	defer cancelFn()

	ethTxOpts := &bind.TransactOpts{
		From:     txOpts.From,
		Nonce:    big.NewInt(int64(nonce)),
		Signer:   signerFn,
		Value:    txOpts.Value,
		GasPrice: d.options.GasPrice,
		GasLimit: d.options.GasLimit,

		Context: txCtx,
	}

	txData, err := boundContract.Transact(ethTxOpts, methodName, mappedArgs...)
	if err != nil {
		log.WithError(err).Errorln("failed to send transaction")
		return txHash, nil, err
	}

	if txOpts.Await {
		awaitCtx, cancelFn := context.WithTimeout(ctx, d.options.TxTimeout)
		defer cancelFn()

		log.WithField("contract", contract.Address.Hex()).Debugln("awaiting tx", txHash.Hex())

		blockNum, err := awaitTx(awaitCtx, client, txHash)
		if err == ErrTransactionReverted {
			// attempt to get the revert reason from a read-only replay
			reason, reasonErr := getRevertReason(ctx, txOpts.From, contract.Address, client, txData.Data(), blockNum)
			if reasonErr == nil && len(reason) > 0 {
				return txHash, nil, errors.New(reason)
			}

			log.WithError(reasonErr).Warningln("failed to get revert reason")
			return txHash, nil, err
		} else if err != nil {
			return txHash, nil, err
		}
	}

	return txHash, nil, nil
}
