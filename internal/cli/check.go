package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	apperrors "sha256sum/internal/errors"
	"sha256sum/internal/sumfile"
)

// checkStats counts outcomes for one checksum list.
type checkStats struct {
	formatted  int
	malformed  int
	verified   int
	mismatched int
	unreadable int
}

// runCheck verifies every checksum list in lists. Per-file results go to
// stdout and warnings to stderr; the returned error only summarizes. A list
// that cannot be opened or read is reported and the next list is checked;
// only a failure to write results stops the run.
func (r *RootCommand) runCheck(lists []string) error {
	failed := false
	for _, list := range lists {
		ok, err := r.checkList(list)
		if errors.Is(err, apperrors.ErrWrite) {
			return err
		}
		if err != nil {
			r.warnf("%v", err)
		}
		if !ok {
			failed = true
		}
	}
	if failed {
		return apperrors.ErrChecksum
	}
	return nil
}

// checkList verifies one list and reports whether it passed. Errors are
// returned only for failures to read the list itself or to write results.
func (r *RootCommand) checkList(list string) (bool, error) {
	src, _, err := r.openInput(list)
	if err != nil {
		return false, fmt.Errorf("%s: %w: %w", list, reason(err), apperrors.ErrOpen)
	}
	defer func() { _ = src.Close() }()

	var stats checkStats
	reader := bufio.NewReader(src)
	for lineNo := 1; ; lineNo++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return false, fmt.Errorf("%s: %w: %w", list, reason(readErr), apperrors.ErrRead)
		}
		line = strings.TrimRight(line, "\r\n")
		if line != "" && !strings.HasPrefix(line, "#") {
			if err := r.checkLine(list, lineNo, line, &stats); err != nil {
				return false, err
			}
		}
		if readErr != nil {
			break
		}
	}
	r.logger.Debug("checked list", slog.String("list", list), slog.Int("formatted", stats.formatted),
		slog.Int("mismatched", stats.mismatched), slog.Int("unreadable", stats.unreadable))

	return r.summarize(list, stats), nil
}

func (r *RootCommand) checkLine(list string, lineNo int, line string, stats *checkStats) error {
	entry, err := sumfile.Parse(line)
	if err != nil {
		stats.malformed++
		if r.opts.warn {
			r.warnf("%s: %d: improperly formatted SHA256 checksum line", list, lineNo)
		}
		return nil
	}
	stats.formatted++

	sum, err := r.hashInput(entry.Name)
	if err != nil {
		if r.opts.ignoreMissing && errors.Is(err, apperrors.ErrOpen) && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		stats.unreadable++
		r.warnf("%v", err)
		return r.result(entry.Name, "FAILED open or read", !r.opts.status)
	}

	stats.verified++
	if sum != entry.Digest {
		stats.mismatched++
		return r.result(entry.Name, "FAILED", !r.opts.status)
	}
	return r.result(entry.Name, "OK", !r.opts.status && !r.opts.quiet)
}

// result prints "<name>: <verdict>" when show is set.
func (r *RootCommand) result(name, verdict string, show bool) error {
	if !show {
		return nil
	}
	escapedName, escaped := sumfile.EscapeName(name)
	prefix := ""
	if escaped {
		prefix = "\\"
	}
	if _, err := fmt.Fprintf(r.out, "%s%s: %s\n", prefix, escapedName, verdict); err != nil {
		return fmt.Errorf("write check result for %s: %w: %w", name, err, apperrors.ErrWrite)
	}
	return nil
}

// summarize prints the trailing warnings for one list and reports whether the
// list passed.
func (r *RootCommand) summarize(list string, stats checkStats) bool {
	if stats.formatted == 0 {
		r.warnf("%s: no properly formatted SHA256 checksum lines found", list)
		return false
	}
	if !r.opts.status {
		if stats.malformed > 0 {
			r.warnf("WARNING: %d %s improperly formatted", stats.malformed, plural(stats.malformed, "line is", "lines are"))
		}
		if stats.unreadable > 0 {
			r.warnf("WARNING: %d listed %s could not be read", stats.unreadable, plural(stats.unreadable, "file", "files"))
		}
		if stats.mismatched > 0 {
			r.warnf("WARNING: %d computed %s did NOT match", stats.mismatched, plural(stats.mismatched, "checksum", "checksums"))
		}
	}
	if r.opts.ignoreMissing && stats.verified == 0 && stats.unreadable == 0 {
		r.warnf("%s: no file was verified", list)
		return false
	}
	return stats.mismatched == 0 && stats.unreadable == 0 && !(r.opts.strict && stats.malformed > 0)
}

func (r *RootCommand) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, "sha256sum: "+format+"\n", args...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
