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

var (
	ErrNoChainID        = errors.New("failed to get valid Chain ID")
	ErrNoNonce          = errors.New("failed to get latest from nonce")
	ErrDeploymentFailed = errors.New("contract deployment failed")
)

type ContractDeployOpts struct {
	From     common.Address
	FromPk   *ecdsa.PrivateKey
	SignerFn bind.SignerFn

	ContractName      string
	ConstructorInputs []string
	CompilerFlags     []huff.CompilerArg

	RetainInterface bool
	BytecodeOnly    bool
	Await           bool
}

// Deploy is the single parameterized pipeline: discover the source by name,
// compile, scrape the ABI, then send the creation transaction. With
// BytecodeOnly it stops after compilation and never touches the RPC.
func (d *deployer) Deploy(
	ctx context.Context,
	deployOpts ContractDeployOpts,
) (txHash common.Hash, contract *huff.Contract, err error) {
	sourcePath, err := d.findContractSource(deployOpts.ContractName)
	if err != nil {
		log.WithField("contract", deployOpts.ContractName).WithError(err).Errorln("failed to locate contract source")
		return noHash, nil, err
	}

	contract, err = d.getCompiledContract(
		deployOpts.ContractName,
		sourcePath,
		deployOpts.ConstructorInputs,
		deployOpts.CompilerFlags,
		deployOpts.RetainInterface,
	)
	if err != nil {
		return noHash, nil, err
	}

	if deployOpts.BytecodeOnly {
		return noHash, contract, nil
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

	nonce, err := client.NonceAt(nonceCtx, deployOpts.From, nil)
	if err != nil {
		log.WithField("from", deployOpts.From.Hex()).WithError(err).Errorln("failed to get most recent nonce")
		return noHash, nil, ErrNoNonce
	}

	boundContract, err := BindContract(client, contract)
	if err != nil {
		log.WithField("contract", deployOpts.ContractName).WithError(err).Errorln("failed to bind contract")
		return noHash, nil, err
	}

	boundContract.SetTransact(getTransactFn(client, common.Address{}, &txHash))

	var signerFn bind.SignerFn
	if deployOpts.SignerFn != nil {
		signerFn = deployOpts.SignerFn
	} else {
		signerFn, err = getSignerFn(d.options.SignerType, chainId, deployOpts.From, deployOpts.FromPk)
		if err != nil {
			log.WithError(err).Errorln("failed to get signer function")
			return noHash, nil, err
		}
	}

	txCtx, cancelFn := context.WithTimeout(ctx, d.options.RPCTimeout)
	defer cancelFn()

	ethTxOpts := &bind.TransactOpts{
		From:     deployOpts.From,
		Nonce:    big.NewInt(int64(nonce)),
		Signer:   signerFn,
		Value:    big.NewInt(0),
		GasPrice: d.options.GasPrice,
		GasLimit: d.options.GasLimit,

		Context: txCtx,
	}

	log.WithFields(log.Fields{
		"nonce":    nonce,
		"gasPrice": d.options.GasPrice.String(),
		"gasLimit": d.options.GasLimit,
	}).Debugln("deploying contract", contract.Name)

	address, _, err := boundContract.DeployContract(ethTxOpts)
	if err != nil {
		log.WithError(err).WithField("txHash", txHash.Hex()).Errorln("failed to deploy contract")
		err = errors.Wrapf(ErrDeploymentFailed, "%s: %v", contract.Name, err)
		return txHash, nil, err
	}
	contract.Address = address

	if deployOpts.Await {
		awaitCtx, cancelFn := context.WithTimeout(ctx, d.options.TxTimeout)
		defer cancelFn()

		log.WithField("txHash", txHash.Hex()).Debugln("awaiting contract deployment", address.Hex())

		if _, err = awaitTx(awaitCtx, client, txHash); err != nil {
			err = errors.Wrapf(ErrDeploymentFailed, "%s: %v", contract.Name, err)
			return txHash, contract, err
		}
	}

	return txHash, contract, nil
}

var noHash = common.Hash{}
