package deployer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/InjectiveLabs/huffman/huff"
)

var (
	ErrAwaitTimeout        = errors.New("await timeout")
	ErrTransactionReverted = errors.New("transaction reverted without logs")
	ErrTxNotFound          = errors.New("transaction not found")
	ErrNoRevertReason      = errors.New("no revert reason")
)

func awaitTx(ctx context.Context, client *Client, txHash common.Hash) (blockNum *big.Int, err error) {
	awaitLog := log.WithField("hash", txHash.Hex())
	awaitLog.Debugln("awaiting transaction")

	for {
		select {
		case <-ctx.Done():
			return nil, ErrAwaitTimeout
		default:
			receipt, err := client.TransactionReceipt(ctx, txHash)
			if err != nil {
				if err == ethereum.NotFound {
					time.Sleep(time.Second)
					continue
				}

				awaitLog.WithError(err).Errorln("failed to await transaction")
				return nil, err
			}

			if receipt.Status == 0 {
				awaitLog.Errorln("transaction reverted")
				return receipt.BlockNumber, ErrTransactionReverted
			}

			// all good
			return receipt.BlockNumber, nil
		}
	}
}

func getRevertReason(
	ctx context.Context,
	from, contractAddress common.Address,
	client *Client,
	txData []byte,
	blockNum *big.Int,
) (string, error) {
	callMsg := ethereum.CallMsg{
		From:     from,
		To:       &contractAddress,
		GasPrice: big.NewInt(0),
		Gas:      1000000,
		Data:     txData,
	}

	result, err := client.CallContract(ctx, callMsg, blockNum)
	if err != nil {
		err = errors.Wrap(err, "failed to get revert reason, call errored")
		return "", err
	}

	if len(result) == 0 {
		return "", ErrNoRevertReason
	}

	reason, err := abi.UnpackRevert(result)
	if err != nil {
		return "", ErrNoRevertReason
	}

	return reason, nil
}

// getCompiledContract runs the full source-to-contract pipeline: bytecode
// compilation, interface generation, ABI scraping and best-effort interface
// cleanup. The generated interface content travels in memory, the file on
// disk only exists so huffc has somewhere to write.
func (d *deployer) getCompiledContract(
	contractName string,
	sourcePath string,
	constructorInputs []string,
	compilerFlags []huff.CompilerArg,
	retainInterface bool,
) (*huff.Contract, error) {
	absSourcePath, _ := filepath.Abs(sourcePath)

	useCache := !d.options.NoCache && len(d.options.BuildCacheDir) > 0
	if useCache {
		cacheLog := log.WithField("path", d.options.BuildCacheDir)

		cache, err := NewBuildCache(d.options.BuildCacheDir)
		if err != nil {
			cacheLog.WithError(err).Warningln("failed to use build cache dir")
		} else {
			contract, err := cache.LoadContract(absSourcePath, constructorInputs, contractName)
			if err != nil && err != ErrNoCache {
				cacheLog.WithError(err).Warningln("failed to use build cache")
			} else if err == nil {
				return contract, nil
			}
		}
	}

	ts := time.Now()

	bin, err := d.compiler.CompileBytecode(absSourcePath, constructorInputs, compilerFlags)
	if err != nil {
		log.WithField("file", absSourcePath).WithError(err).Errorln("failed to compile .huff source")
		return nil, err
	}

	iface, err := d.compiler.CompileInterface(absSourcePath)
	if err != nil {
		log.WithField("file", absSourcePath).WithError(err).Errorln("failed to generate contract interface")
		return nil, err
	}

	if !retainInterface {
		defer func() {
			if err := os.Remove(iface.Path); err != nil {
				log.WithError(err).Warningln("failed to cleanup generated interface", iface.Path)
			}
		}()
	}

	log.Debugln("compiled", absSourcePath, "in", time.Since(ts))

	funcSignatures := d.funcParser.ParseSignatures(iface.Source)
	eventSignatures := d.eventParser.ParseSignatures(iface.Source)

	_, abiJSON, err := huff.ParseABI(funcSignatures, eventSignatures)
	if err != nil {
		log.WithField("interface", iface.Path).WithError(err).Errorln("failed to reconstruct contract ABI")
		return nil, err
	}

	contract := &huff.Contract{
		Name:            contractName,
		SourcePath:      absSourcePath,
		CompilerVersion: d.compiler.Version(),
		FuncSignatures:  funcSignatures,
		EventSignatures: eventSignatures,
		ABI:             abiJSON,
		Bin:             bin,
	}

	if useCache {
		cacheLog := log.WithField("cache_dir", d.options.BuildCacheDir)
		cache, err := NewBuildCache(d.options.BuildCacheDir)
		if err != nil {
			cacheLog.WithError(err).Warningln("failed to use build cache dir")
		} else if err := cache.StoreContract(absSourcePath, constructorInputs, contract); err != nil {
			cacheLog.WithError(err).Warningln("failed to store contract code in build cache")
		}
	}

	return contract, nil
}

type SignerType string

const (
	SignerEIP155    SignerType = "eip155"
	SignerHomestead SignerType = "homestead"
)

func getSignerFn(
	signerType SignerType,
	chainId *big.Int,
	from common.Address,
	pk *ecdsa.PrivateKey,
) (bind.SignerFn, error) {
	switch signerType {
	case SignerEIP155:
		opts, err := bind.NewKeyedTransactorWithChainID(pk, chainId)
		if err != nil {
			err = errors.Wrap(err, "failed to init NewKeyedTransactorWithChainID")
			return nil, err
		}

		return opts.Signer, nil

	case SignerHomestead:
		signerFn := func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if address != from {
				err := errors.Errorf("not authorized to sign with %s", address.Hex())
				return nil, err
			}

			signer := &types.HomesteadSigner{}
			txHash := signer.Hash(tx)
			signature, err := crypto.Sign(txHash.Bytes(), pk)
			if err != nil {
				return nil, err
			}

			return tx.WithSignature(signer, signature)
		}

		return signerFn, nil

	default:
		err := errors.Errorf("unsupported signer type: %s", signerType)
		return nil, err
	}
}

// getTransactFn assembles a legacy transaction from bind.TransactOpts,
// resolving nonce, gas price and gas limit from the node when the opts leave
// them unset. The submitted tx hash is written into txHashOut even when the
// broadcast fails, so callers can still report it.
func getTransactFn(ec *Client, contractAddress common.Address, txHashOut *common.Hash) TransactFunc {
	return func(opts *bind.TransactOpts, contract *common.Address, input []byte) (*types.Transaction, error) {
		value := opts.Value
		if value == nil {
			value = new(big.Int)
		}

		nonce, err := resolveNonce(ec, opts)
		if err != nil {
			return nil, err
		}

		gasPrice := opts.GasPrice
		if gasPrice == nil {
			if gasPrice, err = ec.SuggestGasPrice(opts.Context); err != nil {
				return nil, fmt.Errorf("failed to suggest gas price: %v", err)
			}
		}

		gasLimit := opts.GasLimit
		if gasLimit == 0 {
			gasLimit, err = estimateGasLimit(ec, opts, contract, contractAddress, gasPrice, value, input)
			if err != nil {
				return nil, err
			}
		}

		var rawTx *types.Transaction
		if contract == nil {
			rawTx = types.NewContractCreation(nonce, value, gasLimit, gasPrice, input)
		} else {
			rawTx = types.NewTransaction(nonce, contractAddress, value, gasLimit, gasPrice, input)
		}

		if opts.Signer == nil {
			return nil, errors.New("no signer to authorize the transaction with")
		}
		signedTx, err := opts.Signer(opts.From, rawTx)
		if err != nil {
			return nil, err
		}

		txHash, err := ec.SendTransactionWithRet(opts.Context, signedTx)
		*txHashOut = txHash
		if err != nil {
			return nil, err
		}

		return signedTx, nil
	}
}

func resolveNonce(ec *Client, opts *bind.TransactOpts) (uint64, error) {
	if opts.Nonce != nil {
		return opts.Nonce.Uint64(), nil
	}

	nonce, err := ec.PendingNonceAt(opts.Context, opts.From)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve account nonce: %v", err)
	}

	return nonce, nil
}

func estimateGasLimit(
	ec *Client,
	opts *bind.TransactOpts,
	contract *common.Address,
	contractAddress common.Address,
	gasPrice *big.Int,
	value *big.Int,
	input []byte,
) (uint64, error) {
	// Estimation against a codeless address yields a bogus result, bail early
	// with the same error the bound contract would produce.
	if contract != nil {
		if code, err := ec.PendingCodeAt(opts.Context, contractAddress); err != nil {
			return 0, err
		} else if len(code) == 0 {
			return 0, bind.ErrNoCode
		}
	}

	msg := ethereum.CallMsg{From: opts.From, To: contract, GasPrice: gasPrice, Value: value, Data: input}
	gasLimit, err := ec.EstimateGas(opts.Context, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas needed: %v", err)
	}

	return gasLimit, nil
}
