package main

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/itchyny/gojq"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/InjectiveLabs/huffman/huff"
)

func duration(s string, defaults time.Duration) time.Duration {
	dur, err := time.ParseDuration(s)
	if err != nil {
		dur = defaults
	}
	return dur
}

// parseCompilerFlags turns "key=value" pairs into huffc flags. Single-letter
// keys render short ("-k"), longer keys render full ("--key").
func parseCompilerFlags(pairs []string) ([]huff.CompilerArg, error) {
	flags := make([]huff.CompilerArg, 0, len(pairs))

	for _, pair := range pairs {
		key, value := pair, ""
		if idx := strings.Index(pair, "="); idx >= 0 {
			key, value = pair[:idx], pair[idx+1:]
		}

		if len(key) == 0 {
			return nil, errors.Errorf("malformed compiler flag: %s", pair)
		}

		flags = append(flags, huff.CompilerArg{
			Key:   key,
			Value: value,
			Full:  len(key) > 1,
		})
	}

	return flags, nil
}

// applyJQFilter runs a jq expression over JSON output, rendering each result
// as indented JSON.
func applyJQFilter(expr string, data []byte) ([]string, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse jq expression: %s", expr)
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal JSON for filtering")
	}

	var results []string

	iter := query.Run(value)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			log.WithError(err).Warningln("jq filter error")
			continue
		}

		out, err := json.MarshalIndent(v, "", "\t")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal jq filter result")
		}

		results = append(results, string(out))
	}

	return results, nil
}
