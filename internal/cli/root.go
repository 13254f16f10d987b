// Package cli implements sha256sum command-line parsing and commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apperrors "sha256sum/internal/errors"
	"sha256sum/internal/hash"
	"sha256sum/internal/logging"
	"sha256sum/internal/progress"
	"sha256sum/internal/sha256"
	"sha256sum/internal/sumfile"
)

// stdinName labels standard input in arguments and output.
const stdinName = "-"

type options struct {
	binary bool
	text   bool
	tag    bool

	check         bool
	ignoreMissing bool
	quiet         bool
	status        bool
	strict        bool
	warn          bool

	progress bool
	verbose  bool
}

// RootCommand handles argument parsing for the sha256sum CLI.
type RootCommand struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
	cmd    *cobra.Command
	opts   options
	logger *slog.Logger

	// isTerminal gates --progress; swapped in tests.
	isTerminal func(io.Writer) bool
}

// NewRootCommand creates the sha256sum root command.
func NewRootCommand(out io.Writer, errOut io.Writer, in io.Reader) *RootCommand {
	root := &RootCommand{out: out, errOut: errOut, in: in, logger: logging.New(io.Discard, slog.LevelWarn), isTerminal: progress.IsTerminal}
	cmd := &cobra.Command{
		Use:   "sha256sum [flags] [FILE]...",
		Short: "Print or check SHA-256 checksums",
		Long: `Print or check SHA-256 (FIPS 180-4) checksums.

With no FILE, or when FILE is -, read standard input. Each digest is
printed as 64 lowercase hex characters, two spaces and the file name.
The first file that cannot be opened or read stops the run.

With --check, read checksum lines from the FILEs and verify each
listed file, printing OK or FAILED per file.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return root.run(args)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(in)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", err, apperrors.ErrUsage)
	})
	root.cmd = cmd
	root.addFlags(cmd.Flags())
	root.configureVersion()
	return root
}

// SetArgs sets command arguments. A nil slice means no arguments rather than
// the process arguments.
func (r *RootCommand) SetArgs(args []string) {
	if args == nil {
		args = []string{}
	}
	r.cmd.SetArgs(args)
}

// Execute parses and runs the command.
func (r *RootCommand) Execute() error { return r.cmd.Execute() }

func (r *RootCommand) addFlags(flags *pflag.FlagSet) {
	flags.SortFlags = false
	flags.BoolVarP(&r.opts.binary, "binary", "b", false, "mark entries as read in binary mode (\"*\" before the name)")
	flags.BoolVarP(&r.opts.text, "text", "t", false, "mark entries as read in text mode (default)")
	flags.BoolVar(&r.opts.tag, "tag", false, "create a BSD-style checksum")
	flags.BoolVarP(&r.opts.check, "check", "c", false, "read checksums from the FILEs and check them")
	flags.BoolVar(&r.opts.ignoreMissing, "ignore-missing", false, "don't fail or report status for missing files")
	flags.BoolVar(&r.opts.quiet, "quiet", false, "don't print OK for each successfully verified file")
	flags.BoolVar(&r.opts.status, "status", false, "don't output anything, status code shows success")
	flags.BoolVar(&r.opts.strict, "strict", false, "exit non-zero for improperly formatted checksum lines")
	flags.BoolVarP(&r.opts.warn, "warn", "w", false, "warn about improperly formatted checksum lines")
	flags.BoolVar(&r.opts.progress, "progress", false, "show hashing progress on stderr when it is a terminal")
	flags.BoolVarP(&r.opts.verbose, "verbose", "v", false, "log debug diagnostics to stderr")
}

func (r *RootCommand) validate() error {
	if !r.opts.check {
		for name, set := range map[string]bool{
			"--ignore-missing": r.opts.ignoreMissing,
			"--quiet":          r.opts.quiet,
			"--status":         r.opts.status,
			"--strict":         r.opts.strict,
			"--warn":           r.opts.warn,
		} {
			if set {
				return fmt.Errorf("the %s option is meaningful only when verifying checksums: %w", name, apperrors.ErrUsage)
			}
		}
		if r.opts.tag && r.opts.text {
			return fmt.Errorf("--tag does not support --text mode: %w", apperrors.ErrUsage)
		}
		return nil
	}
	if r.opts.tag {
		return fmt.Errorf("the --tag option is meaningless when verifying checksums: %w", apperrors.ErrUsage)
	}
	if r.opts.binary || r.opts.text {
		return fmt.Errorf("the --binary and --text options are meaningless when verifying checksums: %w", apperrors.ErrUsage)
	}
	return nil
}

func (r *RootCommand) run(args []string) error {
	if err := r.validate(); err != nil {
		return err
	}
	r.logger = logging.NewForStream(r.errOut, logging.Level(r.opts.verbose))
	if len(args) == 0 {
		args = []string{stdinName}
	}
	if r.opts.check {
		return r.runCheck(args)
	}

	style := sumfile.StyleGNU
	if r.opts.tag {
		style = sumfile.StyleTag
	}
	for _, name := range args {
		sum, err := r.hashInput(name)
		if err != nil {
			return err
		}
		line := sumfile.Format(sumfile.Entry{Digest: sum, Name: name, Binary: r.opts.binary}, style)
		if _, err := io.WriteString(r.out, line); err != nil {
			return fmt.Errorf("write digest of %s: %w: %w", name, err, apperrors.ErrWrite)
		}
	}
	return nil
}

// hashInput streams one named input through the engine. Open and read
// failures carry ErrOpen and ErrRead respectively.
func (r *RootCommand) hashInput(name string) ([sha256.Size]byte, error) {
	var zero [sha256.Size]byte
	src, size, err := r.openInput(name)
	if err != nil {
		return zero, fmt.Errorf("%s: %w: %w", name, reason(err), apperrors.ErrOpen)
	}
	defer func() { _ = src.Close() }()

	var reporter *progress.Reporter
	var onChunk func(int64)
	if r.opts.progress && r.isTerminal(r.errOut) {
		reporter = progress.NewReporter(r.errOut, name, uint64(size))
		onChunk = func(total int64) { reporter.Update(uint64(total)) }
	}

	start := time.Now()
	sum, n, err := hash.Stream(src, onChunk)
	if err != nil {
		if reporter != nil {
			reporter.Fail(uint64(n))
		}
		return zero, fmt.Errorf("%s: %w: %w", name, reason(err), apperrors.ErrRead)
	}
	if reporter != nil {
		reporter.Done(uint64(n))
	}
	r.logger.Debug("hashed input", slog.String("name", name), slog.Int64("bytes", n), slog.Duration("elapsed", time.Since(start)))
	return sum, nil
}

// openInput opens a named input and reports its size when known.
func (r *RootCommand) openInput(name string) (io.ReadCloser, int64, error) {
	if name == stdinName {
		return io.NopCloser(r.in), 0, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	var size int64
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		size = info.Size()
	}
	return f, size, nil
}

// reason strips the operation and path from filesystem errors, since the
// caller already names the input.
func reason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
