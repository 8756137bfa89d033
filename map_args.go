package main

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// mapStringArgs converts positional string args into the Go values expected
// by the ABI argument list, so they can be packed for a method call.
func mapStringArgs(inputs abi.Arguments, args []string) ([]interface{}, error) {
	if len(inputs) != len(args) {
		err := errors.Errorf("wrong args count, expected %d but got %d", len(inputs), len(args))
		return nil, err
	} else if len(args) == 0 {
		return nil, nil
	}

	out := make([]interface{}, len(inputs))

	for idx, input := range inputs {
		v, err := mapStringArg(input.Type, args[idx])
		if err != nil {
			err = errors.Wrapf(err, "argument %s (idx %d) type %s failed to map: %s",
				input.Name, idx, input.Type.String(), args[idx])
			return nil, err
		}

		out[idx] = v
	}

	return out, nil
}

func mapStringArg(typ abi.Type, arg string) (interface{}, error) {
	switch typ.T {
	case abi.IntTy:
		return mapIntegerArg(typ, arg, true)
	case abi.UintTy:
		return mapIntegerArg(typ, arg, false)
	case abi.BoolTy:
		return strings.EqualFold(arg, "true"), nil
	case abi.StringTy:
		return arg, nil
	case abi.AddressTy:
		return common.HexToAddress(arg), nil
	case abi.FixedBytesTy, abi.BytesTy:
		return common.FromHex(arg), nil
	default:
		return nil, errors.Errorf("unsupported argument type: %s", typ.String())
	}
}

func mapIntegerArg(typ abi.Type, arg string, signed bool) (interface{}, error) {
	switch typ.Size {
	case 128, 256:
		i, ok := new(big.Int).SetString(arg, 10)
		if !ok {
			return nil, errors.New("failed to parse big integer")
		}

		return i, nil
	}

	if signed {
		i, err := strconv.ParseInt(arg, 10, typ.Size)
		if err != nil {
			return nil, err
		}

		switch typ.Size {
		case 8:
			return int8(i), nil
		case 16:
			return int16(i), nil
		case 32:
			return int32(i), nil
		case 64:
			return int64(i), nil
		}

		return nil, errors.Errorf("integer argument has wrong size: %d", typ.Size)
	}

	u, err := strconv.ParseUint(arg, 10, typ.Size)
	if err != nil {
		return nil, err
	}

	switch typ.Size {
	case 8:
		return uint8(u), nil
	case 16:
		return uint16(u), nil
	case 32:
		return uint32(u), nil
	case 64:
		return uint64(u), nil
	}

	return nil, errors.Errorf("integer argument has wrong size: %d", typ.Size)
}
