// fcursor prints bytes or delimited records from a region of a file using a
// buffered cursor. The file is opened and closed by the tool; the cursor only
// borrows the handle.
//
// Usage:
//
//	fcursor [flags] FILE
//
// Without --delim, the selected region is copied to stdout (or hex dumped
// with --hex). With --delim, each record is printed on its own line,
// prefixed by its logical offset.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-stdlog/stdlog"
	"github.com/spf13/pflag"

	filecursor "github.com/greguz/file-cursor"
	"github.com/greguz/file-cursor/source"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	chunkSize int
	start     int64
	end       int64
	offset    int64
	length    int64
	delim     string
	useMMap   bool
	hex       bool
	verbose   bool
}

func run(args []string, stdout io.Writer, stderr *os.File) error {
	var opts options
	flagSet := pflag.NewFlagSet("fcursor", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVar(&opts.chunkSize, "chunk-size", filecursor.DefaultChunkSize, "bytes fetched per underlying read")
	flagSet.Int64Var(&opts.start, "start", 0, "absolute offset treated as the beginning of the file")
	flagSet.Int64Var(&opts.end, "end", -1, "absolute offset of the last visible byte (default: end of file)")
	flagSet.Int64Var(&opts.offset, "offset", 0, "logical position to start reading from")
	flagSet.Int64Var(&opts.length, "length", -1, "maximum amount of bytes to consume (default: everything)")
	flagSet.StringVarP(&opts.delim, "delim", "d", "", `split output into records ending with this byte (e.g. "\n", ",", "0x00")`)
	flagSet.BoolVar(&opts.useMMap, "mmap", false, "read through a memory mapping instead of pread")
	flagSet.BoolVarP(&opts.hex, "hex", "x", false, "hex encode output")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log cursor activity to stderr")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument, got %d", flagSet.NArg())
	}

	var log stdlog.Logger = stdlog.Discard
	if opts.verbose {
		log = stdlog.NewStd(stderr).Named("fcursor")
	}

	f, err := os.Open(flagSet.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	var src filecursor.Source = source.NewReaderAt(f)
	if opts.useMMap {
		m, err := source.NewMMap(f)
		if err != nil {
			return err
		}
		defer func() {
			if err := m.Close(); err != nil {
				log.Error(err, "Failed releasing memory map")
			}
		}()
		src = m
	}

	cursorOpts := []filecursor.Option{
		filecursor.WithChunkSize(opts.chunkSize),
		filecursor.WithWindowStart(opts.start),
		filecursor.WithPosition(opts.offset),
		filecursor.WithLogger(log),
	}
	if opts.end >= 0 {
		cursorOpts = append(cursorOpts, filecursor.WithWindowEnd(opts.end))
	}
	cur, err := filecursor.New(src, cursorOpts...)
	if err != nil {
		return err
	}

	log.Info("Reading file",
		"path", f.Name(),
		"mmap", opts.useMMap,
		"start", opts.start,
		"end", opts.end,
		"offset", opts.offset,
	)

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if opts.delim == "" {
		return dump(cur, out, opts)
	}
	delim, err := parseDelim(opts.delim)
	if err != nil {
		return err
	}
	return records(cur, out, delim, opts)
}

// parseDelim accepts a single character, a common escape sequence or a hex
// byte literal such as 0x0a.
func parseDelim(s string) (byte, error) {
	switch s {
	case `\n`:
		return '\n', nil
	case `\t`:
		return '\t', nil
	case `\r`:
		return '\r', nil
	case `\0`:
		return 0, nil
	}
	if len(s) == 1 {
		return s[0], nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid delimiter %q: expected a single byte", s)
	}
	return byte(v), nil
}

func dump(cur *filecursor.Cursor, out io.Writer, opts options) error {
	if !opts.hex {
		return copyChunks(cur, out, opts.length)
	}
	dumper := hex.Dumper(out)
	if err := copyChunks(cur, dumper, opts.length); err != nil {
		_ = dumper.Close()
		return err
	}
	// Close writes the dump's last line.
	return dumper.Close()
}

// copyChunks writes chunks from the cursor into w, up to budget bytes. A
// negative budget copies everything.
func copyChunks(cur *filecursor.Cursor, w io.Writer, budget int64) error {
	if budget == 0 {
		return nil
	}
	for chunk, err := range cur.Chunks() {
		if err != nil {
			return err
		}
		if budget >= 0 && int64(len(chunk)) > budget {
			chunk = chunk[:budget]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		if budget >= 0 {
			budget -= int64(len(chunk))
			if budget == 0 {
				break
			}
		}
	}
	return nil
}

func records(cur *filecursor.Cursor, out io.Writer, delim byte, opts options) error {
	consumed := int64(0)
	for !cur.EOF() {
		if opts.length >= 0 && consumed >= opts.length {
			break
		}
		position := cur.Position()
		remaining := opts.length - consumed
		record, err := cur.SeekUntil(func(b byte, at int64) bool {
			if b == delim {
				return true
			}
			return opts.length >= 0 && at-position+1 >= remaining
		})
		if err != nil {
			return err
		}
		if len(record) == 0 {
			break
		}
		consumed += int64(len(record))
		if record[len(record)-1] == delim {
			record = record[:len(record)-1]
		}

		text := string(record)
		if opts.hex {
			text = hex.EncodeToString(record)
		}
		if _, err := fmt.Fprintf(out, "%d\t%s\n", position, text); err != nil {
			return err
		}
	}
	return nil
}
