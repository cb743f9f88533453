package internal

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Parallelism bounds how many units compile at once. Zero or less means one per CPU.
	Parallelism int
	// EmitTokens also writes the token listing of each unit to <Name>T.xml.
	EmitTokens  bool
	// EmitTree also writes the parse tree of each unit to <Name>.xml.
	EmitTree    bool
	// KeepGoing continues with the other units when one fails instead of stopping the batch.
	// The reasons of all failures are returned together.
	KeepGoing   bool
	Logger      *log.Logger
}

// Compile compiles path, a .jack file or a directory of them, writing <Name>.vm next to
// every source. Units share nothing and are compiled in parallel.
func Compile(ctx context.Context, path string, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	files, err := findJackFiles(path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no .jack file found at %s", path)
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	logger.Printf("compiler: start compiling %d units at %s", len(files), path)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)
	var (
		mu       sync.Mutex
		failures []string
	)
	for _, file := range files {
		file := file
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := compileFile(file, opts)
			if err == nil {
				logger.Printf("compiler: compile is finished: %s", file)
				return nil
			}
			if !opts.KeepGoing {
				return err
			}
			logger.Printf("compiler: %v", err)
			mu.Lock()
			failures = append(failures, err.Error())
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	if len(failures) > 0 {
		sort.Strings(failures)
		return errors.Errorf("%d of %d units failed to compile:\n%s", len(failures), len(files),
			strings.Join(failures, "\n"))
	}
	return nil
}

// findJackFiles returns path itself if it is a .jack file, or the .jack files directly inside
// path if it is a directory. Sub directories are not searched.
func findJackFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "find jack files")
	}
	if !info.IsDir() {
		if !isJackFile(path) {
			return nil, errors.Errorf("%s is not a .jack file", path)
		}
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrap(err, "find jack files")
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isJackFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func isJackFile(fileName string) bool {
	return strings.HasSuffix(fileName, ".jack")
}

type unitOutput struct {
	path string
	buf  bytes.Buffer
}

// compileFile writes <Name>.vm next to the source, plus <Name>T.xml and <Name>.xml when
// opts asks for them. Every output is produced in memory first, so a unit that fails
// leaves no file behind.
func compileFile(path string, opts Options) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read source")
	}
	base := strings.TrimSuffix(path, ".jack")
	var outputs []*unitOutput
	if opts.EmitTokens {
		tokens := &unitOutput{path: base + "T.xml"}
		if err := WriteTokens(NewScanner(bytes.NewReader(source)), &tokens.buf); err != nil {
			return errors.Wrapf(err, "compile %s", path)
		}
		outputs = append(outputs, tokens)
	}
	vm := &unitOutput{path: base + ".vm"}
	outputs = append(outputs, vm)
	if opts.EmitTree {
		tree := &unitOutput{path: base + ".xml"}
		err = CompileUnitWithTree(bytes.NewReader(source), &vm.buf, &tree.buf)
		outputs = append(outputs, tree)
	} else {
		err = CompileUnit(bytes.NewReader(source), &vm.buf)
	}
	if err != nil {
		return errors.Wrapf(err, "compile %s", path)
	}
	for _, out := range outputs {
		if err := os.WriteFile(out.path, out.buf.Bytes(), 0644); err != nil {
			return errors.Wrapf(err, "save %s", out.path)
		}
	}
	return nil
}
