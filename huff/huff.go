// Package huff provides a convenient interface for calling the 'huffc' Huff Compiler from Go.
package huff

import (
	"bytes"
	"io/ioutil"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"
)

// Contract is the compiled form of a single Huff source file. The ABI is
// reconstructed from the generated Solidity interface, not emitted by huffc.
type Contract struct {
	Name            string
	SourcePath      string
	CompilerVersion string
	Address         common.Address

	FuncSignatures  []string
	EventSignatures []string

	ABI []byte
	Bin string
}

// Interface is the generated Solidity companion of a Huff source. Source is
// the full file content, read once right after generation, so later stages
// never touch the file again.
type Interface struct {
	Path   string
	Source string
}

type Compiler interface {
	Version() string
	CompileBytecode(path string, constructorInputs []string, flags []CompilerArg) (string, error)
	CompileInterface(path string) (*Interface, error)
	GenerateArtifacts(path, outputDir string) error
}

var (
	ErrCompilerNotFound = errors.New("unable to locate huffc compiler, install huff-rs: https://github.com/huff-language/huff-rs")
	ErrLegacyCompiler   = errors.New("legacy TypeScript huffc detected, replace it with huff-rs: https://github.com/huff-language/huff-rs")
)

func NewHuffCompiler(huffcPath string) (Compiler, error) {
	h := &huffCompiler{
		huffcPath: huffcPath,
	}
	if err := h.verify(); err != nil {
		return nil, err
	}
	return h, nil
}

type huffCompiler struct {
	huffcPath string
	version   string
}

func (h *huffCompiler) verify() error {
	out, err := exec.Command(h.huffcPath, "--version").CombinedOutput()
	if err != nil {
		return errors.Wrapf(ErrCompilerNotFound, "huffc verify: failed to exec %s", h.huffcPath)
	}

	version, err := classifyVersion(string(out))
	if err != nil {
		return err
	}

	h.version = version
	return nil
}

// The deprecated npm huffc reports a 2.x version, huff-rs identifies itself
// as "huff_cli". Anything else means the binary is not a Huff compiler at all.
var legacyVersionRx = regexp.MustCompile(`\b2\.\d+\.\d+`)

func classifyVersion(out string) (string, error) {
	version := strings.TrimSpace(out)

	if strings.Contains(version, "huff_cli") {
		return version, nil
	}

	if legacyVersionRx.MatchString(version) {
		return "", ErrLegacyCompiler
	}

	return "", errors.Wrapf(ErrCompilerNotFound, "huffc verify: executable output was unexpected (output: %s)", version)
}

func (h *huffCompiler) Version() string {
	return h.version
}

func (h *huffCompiler) CompileBytecode(path string, constructorInputs []string, flags []CompilerArg) (string, error) {
	args := []string{h.huffcPath, path, "--bytecode"}
	if len(constructorInputs) > 0 {
		args = append(args, "-i", strings.Join(constructorInputs, " "))
	}
	for _, flag := range flags {
		args = append(args, flag.Render()...)
	}

	errOut := new(bytes.Buffer)
	cmd := exec.Cmd{
		Path:   h.huffcPath,
		Args:   args,
		Stderr: errOut,
	}

	log.Debugln("Running huffc compiler:", cmd.String())

	out, err := cmd.Output()
	if err != nil {
		return "", errors.Errorf("huffc: failed to compile %s: %v: %s", path, err, errOut.String())
	}

	return strings.TrimSpace(string(out)), nil
}

func (h *huffCompiler) CompileInterface(path string) (*Interface, error) {
	errOut := new(bytes.Buffer)
	cmd := exec.Cmd{
		Path:   h.huffcPath,
		Args:   []string{h.huffcPath, path, "--interface"},
		Stderr: errOut,
	}

	log.Debugln("Running huffc compiler:", cmd.String())

	if _, err := cmd.Output(); err != nil {
		return nil, errors.Errorf("huffc: failed to generate interface for %s: %v: %s", path, err, errOut.String())
	}

	ifacePath := InterfacePath(path)
	source, err := ioutil.ReadFile(ifacePath)
	if err != nil {
		return nil, errors.Wrapf(err, "huffc: generated interface not found at %s", ifacePath)
	}

	return &Interface{
		Path:   ifacePath,
		Source: string(source),
	}, nil
}

func (h *huffCompiler) GenerateArtifacts(path, outputDir string) error {
	errOut := new(bytes.Buffer)
	cmd := exec.Cmd{
		Path:   h.huffcPath,
		Args:   []string{h.huffcPath, path, "--output-directory", outputDir, "--huff-artifacts"},
		Stderr: errOut,
	}

	log.Debugln("Running huffc compiler:", cmd.String())

	if _, err := cmd.Output(); err != nil {
		return errors.Errorf("huffc: failed to generate artifacts for %s: %v: %s", path, err, errOut.String())
	}

	return nil
}

func WhichHuffc() (string, error) {
	out, err := exec.Command("which", "huffc").Output()
	if err != nil {
		return "", ErrCompilerNotFound
	}
	return string(bytes.TrimSpace(out)), nil
}
