package deployer

import (
	"bytes"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/InjectiveLabs/huffman/huff"
)

type TransactFunc func(opts *bind.TransactOpts, contract *common.Address, input []byte) (*types.Transaction, error)

// BoundContract couples the scraped ABI with the compiled bytecode and an
// optional RPC backend. The backend may be nil in bytecode-only mode, any
// chain interaction then fails with ErrNoBackend.
type BoundContract struct {
	targetABI abi.ABI
	bin       string
	address   common.Address

	bound      *bind.BoundContract
	transactFn TransactFunc
}

var ErrNoBackend = errors.New("contract is not bound to an RPC backend")

func BindContract(client *Client, contract *huff.Contract) (*BoundContract, error) {
	parsedABI, err := abi.JSON(bytes.NewReader(contract.ABI))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse ABI of contract %s", contract.Name)
	}

	c := &BoundContract{
		targetABI: parsedABI,
		bin:       contract.Bin,
		address:   contract.Address,
	}

	if client != nil {
		c.bound = bind.NewBoundContract(contract.Address, parsedABI, client.Client, client.Client, client.Client)
	}

	return c, nil
}

func (c *BoundContract) ABI() abi.ABI {
	return c.targetABI
}

func (c *BoundContract) Address() common.Address {
	return c.address
}

func (c *BoundContract) SetTransact(fn TransactFunc) {
	c.transactFn = fn
}

// DeployContract sends the creation bytecode as-is. Constructor arguments
// are already baked into the bytecode by huffc, so nothing is ABI-encoded
// on this side.
func (c *BoundContract) DeployContract(opts *bind.TransactOpts) (common.Address, *types.Transaction, error) {
	if c.transactFn == nil {
		return common.Address{}, nil, ErrNoBackend
	}

	bytecode := common.FromHex(c.bin)
	if len(bytecode) == 0 {
		return common.Address{}, nil, errors.New("contract has empty bytecode")
	}

	tx, err := c.transactFn(opts, nil, bytecode)
	if err != nil {
		return common.Address{}, nil, err
	}

	contractAddress := crypto.CreateAddress(opts.From, tx.Nonce())
	return contractAddress, tx, nil
}

func (c *BoundContract) Transact(opts *bind.TransactOpts, method string, args ...interface{}) (*types.Transaction, error) {
	if c.transactFn == nil {
		return nil, ErrNoBackend
	}

	input, err := c.targetABI.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to ABI-encode %s args", method)
	}

	return c.transactFn(opts, &c.address, input)
}

func (c *BoundContract) Call(opts *bind.CallOpts, results *[]interface{}, method string, args ...interface{}) error {
	if c.bound == nil {
		return ErrNoBackend
	}

	return c.bound.Call(opts, results, method, args...)
}

func (c *BoundContract) UnpackLogIntoMap(out map[string]interface{}, event string, log types.Log) error {
	if c.bound == nil {
		return ErrNoBackend
	}

	return c.bound.UnpackLogIntoMap(out, event, log)
}
