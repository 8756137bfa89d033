package deployer

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/huff"
)

var (
	ErrCompilerNotFound = huff.ErrCompilerNotFound
	ErrLegacyCompiler   = huff.ErrLegacyCompiler
)

type option func(o *options) error

func New(opts ...option) (Deployer, error) {
	d := &deployer{
		options:     defaultOptions(),
		funcParser:  huff.NewLineScraper("function"),
		eventParser: huff.NewLineScraper("event"),
	}

	for _, o := range opts {
		if err := o(d.options); err != nil {
			err = errors.Wrap(err, "error in deployer option")
			return nil, err
		}
	}

	if d.options.Compiler != nil {
		d.compiler = d.options.Compiler
		return d, nil
	}

	huffcPath := d.options.HuffcPath
	if !d.options.HuffcPathSet {
		var err error
		if huffcPath, err = huff.WhichHuffc(); err != nil {
			log.WithError(err).Errorln("failed to find huffc compiler")
			return nil, err
		}
	}

	compiler, err := huff.NewHuffCompiler(huffcPath)
	if err != nil {
		log.WithField("path", huffcPath).WithError(err).Errorln("failed to init huffc compiler at path")
		return nil, err
	}

	d.compiler = compiler
	return d, nil
}

type Deployer interface {
	Build(
		ctx context.Context,
		buildOpts ContractBuildOpts,
	) (*huff.Contract, error)

	Deploy(
		ctx context.Context,
		deployOpts ContractDeployOpts,
	) (txHash common.Hash, contract *huff.Contract, err error)

	Tx(
		ctx context.Context,
		txOpts ContractTxOpts,
		methodName string,
		methodInputMapper AbiMethodInputMapperFunc,
	) (txHash common.Hash, abiPackedCalldata []byte, err error)

	Call(
		ctx context.Context,
		callOpts ContractCallOpts,
		methodName string,
		methodInputMapper AbiMethodInputMapperFunc,
	) (output []interface{}, outputAbi abi.Arguments, err error)

	Logs(
		ctx context.Context,
		logsOpts ContractLogsOpts,
		txHash common.Hash,
		eventName string,
	) (events []ContractEvent, err error)

	Artifacts(
		ctx context.Context,
		artifactsOpts ContractArtifactsOpts,
	) error

	Backend() (*Client, error)
}

type AbiMethodInputMapperFunc func(args abi.Arguments) []interface{}

type deployer struct {
	options  *options
	compiler huff.Compiler

	funcParser  huff.InterfaceParser
	eventParser huff.InterfaceParser

	client         *Client
	initClientOnce sync.Once
}

type options struct {
	RPCTimeout  time.Duration
	TxTimeout   time.Duration
	CallTimeout time.Duration

	EVMRPCEndpoint string
	SignerType     SignerType
	GasPrice       *big.Int
	GasLimit       uint64
	ContractsDir   string
	NoCache        bool
	BuildCacheDir  string
	HuffcPath      string
	HuffcPathSet   bool
	Compiler       huff.Compiler
}

func defaultOptions() *options {
	return &options{
		RPCTimeout:  10 * time.Second,
		TxTimeout:   10 * time.Second,
		CallTimeout: 10 * time.Second,

		SignerType:   SignerEIP155,
		GasPrice:     new(big.Int),
		GasLimit:     1000000,
		ContractsDir: "contracts/",
		NoCache:      false,
	}
}

func OptionRPCTimeout(dur time.Duration) option {
	return func(o *options) error {
		if dur > time.Millisecond {
			o.RPCTimeout = dur
		}

		return nil
	}
}

func OptionTxTimeout(dur time.Duration) option {
	return func(o *options) error {
		if dur > time.Millisecond {
			o.TxTimeout = dur
		}

		return nil
	}
}

func OptionCallTimeout(dur time.Duration) option {
	return func(o *options) error {
		if dur > time.Millisecond {
			o.CallTimeout = dur
		}

		return nil
	}
}

func OptionEVMRPCEndpoint(endpoint string) option {
	return func(o *options) error {
		o.EVMRPCEndpoint = endpoint
		return nil
	}
}

func OptionSignerType(signerType SignerType) option {
	return func(o *options) error {
		if len(signerType) == 0 {
			return errors.New("signer type not specified")
		}

		o.SignerType = signerType
		return nil
	}
}

func OptionGasPrice(price *big.Int) option {
	return func(o *options) error {
		if price != nil {
			o.GasPrice = price
		}

		return nil
	}
}

func OptionGasLimit(gasLimit uint64) option {
	return func(o *options) error {
		if gasLimit < 21000 {
			return errors.New("gas limit too low")
		}

		o.GasLimit = gasLimit
		return nil
	}
}

func OptionContractsDir(dir string) option {
	return func(o *options) error {
		if len(dir) == 0 {
			return errors.New("empty contracts dir provided")
		}

		o.ContractsDir = dir
		return nil
	}
}

func OptionNoCache(noCache bool) option {
	return func(o *options) error {
		o.NoCache = noCache
		return nil
	}
}

func OptionBuildCacheDir(dir string) option {
	return func(o *options) error {
		if len(dir) == 0 {
			return errors.New("empty build cache dir provided")
		}

		o.BuildCacheDir = dir
		return nil
	}
}

func OptionHuffcPath(path string) option {
	return func(o *options) error {
		if len(path) == 0 {
			o.HuffcPathSet = false
		} else {
			o.HuffcPathSet = true
		}

		o.HuffcPath = path
		return nil
	}
}

// OptionCompiler substitutes a pre-initialized compiler, skipping huffc
// discovery and the availability check. Lets tests run the pipeline without
// spawning subprocesses.
func OptionCompiler(c huff.Compiler) option {
	return func(o *options) error {
		if c == nil {
			return errors.New("nil compiler provided")
		}

		o.Compiler = c
		return nil
	}
}
