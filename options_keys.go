package main

import (
	"fmt"
	"io/ioutil"
	"math/big"
	"os"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcmn "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	cli "github.com/jawher/mow.cli"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	keystoreDir = app.String(cli.StringOpt{
		Name:   "keystore-dir",
		Desc:   "Specify Ethereum keystore dir (Geth-format) prefix.",
		EnvVar: "DEPLOYER_KEYSTORE_DIR",
	})

	from = app.String(cli.StringOpt{
		Name:   "F from",
		Desc:   "Specify the from address. If specified, must exist in keystore or match the privkey.",
		EnvVar: "DEPLOYER_FROM",
	})

	fromPassphrase = app.String(cli.StringOpt{
		Name:   "from-passphrase",
		Desc:   "Passphrase to unlock the private key from armor, if empty then stdin is used.",
		EnvVar: "DEPLOYER_FROM_PASSPHRASE",
	})

	fromPrivKey = app.String(cli.StringOpt{
		Name:   "P from-pk",
		Desc:   "Provide a raw Ethereum private key of the sender in hex.",
		EnvVar: "DEPLOYER_FROM_PK",
	})
)

var emptyEthAddress = ethcmn.Address{}

func initEthereumAccountsManager(
	chainID uint64,
	keystoreDir *string,
	from *string,
	fromPassphrase *string,
	fromPrivKey *string,
) (
	fromAddress ethcmn.Address,
	signerFn bind.SignerFn,
	err error,
) {
	switch {
	case len(*fromPrivKey) > 0:
		pkHex := strings.TrimPrefix(*fromPrivKey, "0x")
		ethPk, err := ethcrypto.HexToECDSA(pkHex)
		if err != nil {
			err = errors.Wrap(err, "failed to hex-decode Ethereum ECDSA Private Key")
			return emptyEthAddress, nil, err
		}

		ethAddressFromPk := ethcrypto.PubkeyToAddress(ethPk.PublicKey)

		if len(*from) > 0 {
			addr := ethcmn.HexToAddress(*from)
			if addr == emptyEthAddress {
				err = errors.New("failed to parse Ethereum from address")
				return emptyEthAddress, nil, err
			} else if addr != ethAddressFromPk {
				err = errors.New("Ethereum from address does not match address from ECDSA Private Key")
				return emptyEthAddress, nil, err
			}
		}

		txOpts, err := bind.NewKeyedTransactorWithChainID(ethPk, new(big.Int).SetUint64(chainID))
		if err != nil {
			err = errors.Wrap(err, "failed to init NewKeyedTransactorWithChainID")
			return emptyEthAddress, nil, err
		}

		return txOpts.From, txOpts.Signer, nil

	case len(*keystoreDir) > 0:
		if len(*from) == 0 {
			err := errors.New("cannot use Ethereum keystore without from address specified")
			return emptyEthAddress, nil, err
		}

		fromAddress = ethcmn.HexToAddress(*from)
		if fromAddress == emptyEthAddress {
			err = errors.New("failed to parse Ethereum from address")
			return emptyEthAddress, nil, err
		}

		if info, err := os.Stat(*keystoreDir); err != nil || !info.IsDir() {
			err = errors.New("failed to locate keystore dir")
			return emptyEthAddress, nil, err
		}

		ks := keystore.NewKeyStore(*keystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
		acc, err := ks.Find(accounts.Account{
			Address: fromAddress,
		})
		if err != nil {
			err = errors.Wrapf(err, "account %s not found in keystore", fromAddress.Hex())
			return emptyEthAddress, nil, err
		}

		var pass string
		if len(*fromPassphrase) > 0 {
			pass = *fromPassphrase
		} else {
			pass, err = ethPassFromStdin()
			if err != nil {
				return emptyEthAddress, nil, err
			}
		}

		keyJSON, err := ioutil.ReadFile(acc.URL.Path)
		if err != nil {
			err = errors.Wrap(err, "failed to read key file")
			return emptyEthAddress, nil, err
		}

		key, err := keystore.DecryptKey(keyJSON, pass)
		if err != nil {
			err = errors.Wrapf(err, "failed to unlock key for %s", fromAddress.Hex())
			return emptyEthAddress, nil, err
		}

		txOpts, err := bind.NewKeyedTransactorWithChainID(key.PrivateKey, new(big.Int).SetUint64(chainID))
		if err != nil {
			err = errors.Wrap(err, "failed to init NewKeyedTransactorWithChainID")
			return emptyEthAddress, nil, err
		}

		return txOpts.From, txOpts.Signer, nil

	default:
		err := errors.New("insufficient ethereum key details provided")
		return emptyEthAddress, nil, err
	}
}

func ethPassFromStdin() (string, error) {
	fmt.Print("Passphrase for Ethereum account: ")
	bytePassword, err := terminal.ReadPassword(int(syscall.Stdin))
	if err != nil {
		err := errors.Wrap(err, "failed to read password from stdin")
		return "", err
	}

	password := string(bytePassword)
	return strings.TrimSpace(password), nil
}
