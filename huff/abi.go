package huff

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

type abiArgument struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

type abiEntry struct {
	Type            string        `json:"type"`
	Name            string        `json:"name"`
	Inputs          []abiArgument `json:"inputs"`
	Outputs         []abiArgument `json:"outputs,omitempty"`
	StateMutability string        `json:"stateMutability,omitempty"`
}

// ParseABI converts scraped interface signatures into a go-ethereum ABI.
// Function signatures must look like Solidity interface declarations, e.g.
// "function transfer(address to, uint256 amount) external returns (bool)".
// Returns both the parsed ABI and its JSON encoding.
func ParseABI(funcSignatures, eventSignatures []string) (abi.ABI, []byte, error) {
	entries := make([]abiEntry, 0, len(funcSignatures)+len(eventSignatures))

	for _, sig := range funcSignatures {
		entry, err := parseFuncSignature(sig)
		if err != nil {
			return abi.ABI{}, nil, err
		}

		entries = append(entries, entry)
	}

	for _, sig := range eventSignatures {
		entry, err := parseEventSignature(sig)
		if err != nil {
			return abi.ABI{}, nil, err
		}

		entries = append(entries, entry)
	}

	abiJSON, err := json.Marshal(entries)
	if err != nil {
		return abi.ABI{}, nil, errors.Wrap(err, "failed to marshal reconstructed ABI")
	}

	parsedABI, err := abi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return abi.ABI{}, nil, errors.Wrap(err, "reconstructed ABI is not valid")
	}

	return parsedABI, abiJSON, nil
}

func parseFuncSignature(sig string) (abiEntry, error) {
	name, params, rest, err := splitSignature(sig, "function")
	if err != nil {
		return abiEntry{}, err
	}

	entry := abiEntry{
		Type:            "function",
		Name:            name,
		Inputs:          make([]abiArgument, 0, len(params)),
		StateMutability: "nonpayable",
	}

	for _, param := range params {
		arg, err := parseArgument(param, false)
		if err != nil {
			return abiEntry{}, errors.Wrapf(err, "bad argument in signature: %s", sig)
		}

		entry.Inputs = append(entry.Inputs, arg)
	}

	modifiers, returns := splitModifiers(rest)
	for _, mod := range modifiers {
		switch mod {
		case "view", "pure", "payable":
			entry.StateMutability = mod
		}
	}

	for _, ret := range returns {
		arg, err := parseArgument(ret, false)
		if err != nil {
			return abiEntry{}, errors.Wrapf(err, "bad return value in signature: %s", sig)
		}

		entry.Outputs = append(entry.Outputs, arg)
	}

	return entry, nil
}

func parseEventSignature(sig string) (abiEntry, error) {
	name, params, _, err := splitSignature(sig, "event")
	if err != nil {
		return abiEntry{}, err
	}

	entry := abiEntry{
		Type:   "event",
		Name:   name,
		Inputs: make([]abiArgument, 0, len(params)),
	}

	for _, param := range params {
		arg, err := parseArgument(param, true)
		if err != nil {
			return abiEntry{}, errors.Wrapf(err, "bad argument in signature: %s", sig)
		}

		entry.Inputs = append(entry.Inputs, arg)
	}

	return entry, nil
}

func splitSignature(sig, keyword string) (name string, params []string, rest string, err error) {
	sig = strings.TrimSpace(sig)
	if !strings.HasPrefix(sig, keyword) {
		err = errors.Errorf("signature does not declare a %s: %s", keyword, sig)
		return
	}

	lparen := strings.Index(sig, "(")
	rparen := strings.Index(sig, ")")
	if lparen < 0 || rparen < lparen {
		err = errors.Errorf("signature has malformed argument list: %s", sig)
		return
	}

	name = strings.TrimSpace(sig[len(keyword):lparen])
	if len(name) == 0 {
		err = errors.Errorf("signature has no name: %s", sig)
		return
	}

	params = splitArguments(sig[lparen+1 : rparen])
	rest = strings.TrimSpace(sig[rparen+1:])
	return
}

// splitModifiers separates declaration modifiers from the returns clause,
// e.g. "external view returns (uint256 balance)".
func splitModifiers(rest string) (modifiers, returns []string) {
	if idx := strings.Index(rest, "returns"); idx >= 0 {
		retList := rest[idx+len("returns"):]
		retList = strings.TrimSpace(retList)
		retList = strings.TrimPrefix(retList, "(")
		retList = strings.TrimSuffix(retList, ")")
		returns = splitArguments(retList)

		rest = rest[:idx]
	}

	return strings.Fields(rest), returns
}

func splitArguments(list string) []string {
	var args []string

	for _, arg := range strings.Split(list, ",") {
		if arg = strings.TrimSpace(arg); len(arg) > 0 {
			args = append(args, arg)
		}
	}

	return args
}

func parseArgument(param string, allowIndexed bool) (abiArgument, error) {
	fields := strings.Fields(param)
	if len(fields) == 0 {
		return abiArgument{}, errors.New("empty argument declaration")
	}

	arg := abiArgument{
		Type: normalizeType(fields[0]),
	}

	fields = fields[1:]
	if len(fields) > 0 && allowIndexed && fields[0] == "indexed" {
		arg.Indexed = true
		fields = fields[1:]
	}

	// data location keywords never make it into the ABI
	if len(fields) > 0 {
		switch fields[0] {
		case "memory", "calldata", "storage":
			fields = fields[1:]
		}
	}

	if len(fields) > 1 {
		return abiArgument{}, errors.Errorf("unexpected tokens in argument: %s", param)
	} else if len(fields) == 1 {
		arg.Name = fields[0]
	}

	return arg, nil
}

// normalizeType maps Solidity type aliases to their canonical ABI form.
func normalizeType(typ string) string {
	switch {
	case typ == "uint" || strings.HasPrefix(typ, "uint["):
		return "uint256" + typ[len("uint"):]
	case typ == "int" || strings.HasPrefix(typ, "int["):
		return "int256" + typ[len("int"):]
	default:
		return typ
	}
}
