package deployer

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/InjectiveLabs/huffman/huff"
)

var ErrEventNotFound = errors.New("event not found")

type ContractLogsOpts struct {
	ContractName    string
	Contract        common.Address
	CompilerFlags   []huff.CompilerArg
	RetainInterface bool
}

// ContractEvent is a decoded contract log. Args unpacking relies on the
// event signatures scraped from the generated interface.
type ContractEvent struct {
	Name        string                 `json:"name"`
	Args        map[string]interface{} `json:"args"`
	TxHash      common.Hash            `json:"txHash"`
	BlockNumber uint64                 `json:"blockNumber"`
}

func (d *deployer) Logs(
	ctx context.Context,
	logsOpts ContractLogsOpts,
	txHash common.Hash,
	eventName string,
) (events []ContractEvent, err error) {
	sourcePath, err := d.findContractSource(logsOpts.ContractName)
	if err != nil {
		log.WithField("contract", logsOpts.ContractName).WithError(err).Errorln("failed to locate contract source")
		return nil, err
	}

	contract, err := d.getCompiledContract(logsOpts.ContractName, sourcePath, nil, logsOpts.CompilerFlags, logsOpts.RetainInterface)
	if err != nil {
		return nil, err
	}
	contract.Address = logsOpts.Contract

	client, err := d.Backend()
	if err != nil {
		return nil, err
	}

	boundContract, err := BindContract(client, contract)
	if err != nil {
		log.WithField("contract", logsOpts.ContractName).WithError(err).Errorln("failed to bind contract")
		return nil, err
	}

	eventABI, ok := boundContract.ABI().Events[eventName]
	if !ok {
		return nil, errors.Wrap(ErrEventNotFound, eventName)
	}

	callCtx, cancelFn := context.WithTimeout(ctx, d.options.CallTimeout)
	defer cancelFn()

	receipt, err := client.TransactionReceipt(callCtx, txHash)
	if err != nil {
		if err == ethereum.NotFound {
			return nil, ErrTxNotFound
		}

		log.WithField("txHash", txHash.Hex()).WithError(err).Errorln("failed to get transaction receipt")
		return nil, err
	}

	for _, ethLog := range receipt.Logs {
		if ethLog == nil || len(ethLog.Topics) == 0 {
			continue
		} else if ethLog.Topics[0] != eventABI.ID {
			continue
		}

		args := make(map[string]interface{})
		if err := boundContract.UnpackLogIntoMap(args, eventName, *ethLog); err != nil {
			log.WithField("event", eventName).WithError(err).Warningln("failed to unpack event log")
			continue
		}

		events = append(events, ContractEvent{
			Name:        eventName,
			Args:        args,
			TxHash:      ethLog.TxHash,
			BlockNumber: ethLog.BlockNumber,
		})
	}

	return events, nil
}
