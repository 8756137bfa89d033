package deployer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/huff"
)

var ErrNoCache = errors.New("no cached version")

// BuildCache stores compiled Huff contracts keyed by source content and
// constructor inputs. Inputs participate in the key because huffc bakes them
// into the deployment bytecode.
type BuildCache interface {
	StoreContract(absSourcePath string, constructorInputs []string, contract *huff.Contract) error
	LoadContract(absSourcePath string, constructorInputs []string, contractName string) (*huff.Contract, error)
	Clear() error
}

type BuildCacheEntry struct {
	Timestamp       time.Time       `json:"timestamp"`
	CodeHash        string          `json:"codeHash"`
	ContractName    string          `json:"contractName"`
	CompilerVersion string          `json:"compilerVersion"`
	FuncSignatures  []string        `json:"funcSignatures"`
	EventSignatures []string        `json:"eventSignatures"`
	ABI             json.RawMessage `json:"abi"`
	Bin             string          `json:"bin"`
}

type buildCache struct {
	prefix string
}

func NewBuildCache(prefix string) (BuildCache, error) {
	if err := os.MkdirAll(prefix, 0755); err != nil {
		err = errors.Wrap(err, "failed to prepare build cache dir")
		return nil, err
	}

	c := &buildCache{
		prefix: prefix,
	}

	return c, nil
}

func (b *buildCache) StoreContract(absSourcePath string, constructorInputs []string, contract *huff.Contract) error {
	hash, err := sha3source(absSourcePath, constructorInputs)
	if err != nil {
		err = errors.Wrap(err, "failed to hash source")
		return err
	}

	entry := &BuildCacheEntry{
		Timestamp:       time.Now().UTC(),
		CodeHash:        hash,
		ContractName:    contract.Name,
		CompilerVersion: contract.CompilerVersion,
		FuncSignatures:  contract.FuncSignatures,
		EventSignatures: contract.EventSignatures,
		ABI:             json.RawMessage(contract.ABI),
		Bin:             contract.Bin,
	}

	entryContents, _ := json.MarshalIndent(entry, "", "\t")
	entryFileName := fmt.Sprintf("huff_%s_%s.json", strings.ToLower(contract.Name), hash)

	err = ioutil.WriteFile(filepath.Join(b.prefix, entryFileName), entryContents, 0655)
	if err != nil {
		err = errors.Wrap(err, "failed write cache entry file")
		return err
	}

	return nil
}

func (b *buildCache) LoadContract(absSourcePath string, constructorInputs []string, contractName string) (*huff.Contract, error) {
	hash, err := sha3source(absSourcePath, constructorInputs)
	if err != nil {
		err = errors.Wrap(err, "failed to hash source")
		return nil, err
	}

	entryFileName := fmt.Sprintf("huff_%s_%s.json", strings.ToLower(contractName), hash)

	entryContents, err := ioutil.ReadFile(filepath.Join(b.prefix, entryFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCache
		}

		err = errors.Wrap(err, "failed read cache entry file")
		return nil, err
	}

	var entry BuildCacheEntry
	if err := json.Unmarshal(entryContents, &entry); err != nil {
		err = errors.Wrap(err, "failed to unmarshal cache entry")
		return nil, err
	} else if !strings.EqualFold(entry.ContractName, contractName) {
		return nil, errors.New("cache entry contract name mismatch")
	}

	contract := &huff.Contract{
		Name:            entry.ContractName,
		SourcePath:      absSourcePath,
		CompilerVersion: entry.CompilerVersion,
		FuncSignatures:  entry.FuncSignatures,
		EventSignatures: entry.EventSignatures,
		ABI:             []byte(entry.ABI),
		Bin:             entry.Bin,
	}

	return contract, nil
}

func (b *buildCache) Clear() error {
	return filepath.Walk(b.prefix, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		} else if path == b.prefix {
			return nil
		} else if info.IsDir() {
			return nil
		}

		if filepath.Ext(info.Name()) == ".json" {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warningln("failed to cleanup", path)
			}
		}

		return nil
	})
}

func sha3source(path string, constructorInputs []string) (string, error) {
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		err = errors.Wrap(err, "failed to read .huff file")
		return "", err
	}

	hashBytes := crypto.Keccak256(contents, []byte(strings.Join(constructorInputs, " ")))
	return hex.EncodeToString(hashBytes), nil
}
