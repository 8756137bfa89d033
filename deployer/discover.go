package deployer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/huff"
)

var ErrContractNotFound = errors.New("no contract source found for name")

// discoverSources walks the contracts dir collecting Huff sources in lexical
// order. A missing dir yields an empty result, not an error.
func (d *deployer) discoverSources() ([]string, error) {
	var sources []string

	err := filepath.Walk(d.options.ContractsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == d.options.ContractsDir {
				return nil
			}

			return err
		} else if info.IsDir() {
			return nil
		}

		if filepath.Ext(info.Name()) == huff.SourceExt {
			sources = append(sources, path)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan contracts dir %s", d.options.ContractsDir)
	}

	return sources, nil
}

// matchContractSource resolves a contract name against discovered sources by
// case-insensitive basename comparison. Multiple matches resolve to the
// first one in discovery order, the rest are reported as shadowed.
func matchContractSource(sources []string, contractName string) (match string, shadowed []string) {
	for _, path := range sources {
		base := filepath.Base(path)
		name := strings.TrimSuffix(base, filepath.Ext(base))

		if !strings.EqualFold(name, contractName) {
			continue
		}

		if len(match) == 0 {
			match = path
		} else {
			shadowed = append(shadowed, path)
		}
	}

	return match, shadowed
}

func (d *deployer) findContractSource(contractName string) (string, error) {
	sources, err := d.discoverSources()
	if err != nil {
		return "", err
	}

	match, shadowed := matchContractSource(sources, contractName)
	if len(match) == 0 {
		return "", errors.Wrap(ErrContractNotFound, contractName)
	}

	if len(shadowed) > 0 {
		log.WithFields(log.Fields{
			"contract": contractName,
			"using":    match,
		}).Warningln("multiple sources match the contract name, shadowed:", strings.Join(shadowed, ", "))
	}

	return match, nil
}
