package huff

// CompilerArg is an extra huffc flag forwarded as-is on the command line.
// Full selects the long "--key" syntax over the short "-key" one.
type CompilerArg struct {
	Key   string
	Value string
	Full  bool
}

func (a CompilerArg) Render() []string {
	flag := "-" + a.Key
	if a.Full {
		flag = "--" + a.Key
	}

	if len(a.Value) == 0 {
		return []string{flag}
	}

	return []string{flag, a.Value}
}
