package game

import (
	"bytes"
	"eenymeeny/options"
	"eenymeeny/parallel"
	"eenymeeny/stats"
	"eenymeeny/util"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/gobwas/glob"
)

const (
	TARGET_PERMISSIONS = 0777
	OUTPUT_EXTENSION   = ".out"
)

type runner struct {
	opts            *options.Options
	includePatterns []glob.Glob
	excludePatterns []glob.Glob
	stdin           io.Reader
	stdout          io.Writer
	runStats        *stats.RunStats
}

// Run plays every game found at opts.SourcePath and writes the survivors
// to opts.OutputPath (or standard output).
func Run(opts *options.Options) (*stats.RunStats, error) {
	return run(opts, os.Stdin, os.Stdout)
}

func run(opts *options.Options, stdin io.Reader, stdout io.Writer) (*stats.RunStats, error) {
	r := &runner{
		opts:     opts,
		stdin:    stdin,
		stdout:   stdout,
		runStats: stats.NewRunStats(),
	}

	var err error
	if opts.SourceIsDirectory {
		err = r.runDirectory()
	} else {
		err = r.runSingle()
	}
	if err != nil {
		return nil, err
	}

	if len(opts.SummaryPath) > 0 {
		err = r.writeSummary()
		if err != nil {
			return nil, err
		}
	}
	return r.runStats, nil
}

func (r *runner) config(name string) Config {
	return Config{
		Name:       name,
		MaxPlayers: r.opts.MaxPlayers,
		Verbose:    r.opts.VerboseLogging,
	}
}

func (r *runner) runSingle() error {
	var input io.Reader = r.stdin
	if r.opts.SourcePath != options.STDIO_PATH {
		content, err := readInput(r.opts.SourcePath)
		if err != nil {
			return err
		}
		input = bytes.NewReader(content)
	}

	output := r.stdout
	if len(r.opts.OutputPath) > 0 && r.opts.OutputPath != options.STDIO_PATH {
		file, err := os.Create(r.opts.OutputPath)
		if err != nil {
			return &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_OUTPUT_PATH,
				InternalError: fmt.Errorf("failed to create output file at '%v': %v", r.opts.OutputPath, err),
			}
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				log.Printf("failed to close output file '%v': %v", r.opts.OutputPath, closeErr)
			}
		}()
		output = file
	}

	gameStats, err := Play(input, output, r.config(r.opts.SourcePath))
	if err != nil {
		return err
	}
	r.runStats.AddInput(r.opts.SourcePath, gameStats)
	return nil
}

func readInput(inputPath string) ([]byte, error) {
	var content []byte
	err := retry.Do(
		func() error {
			var readErr error
			content, readErr = os.ReadFile(inputPath)
			return readErr
		},
		retry.Attempts(3),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission)
		}),
	)
	if err != nil {
		return nil, &util.ErrorWithCode{
			StatusCode:    util.ERROR_BAD_SOURCE_PATH,
			InternalError: fmt.Errorf("failed to read input at '%v': %v", inputPath, err),
		}
	}
	return content, nil
}

func (r *runner) runDirectory() error {
	var err error
	r.includePatterns, err = r.compileGlobs(r.opts.IncludePatterns, "include")
	if err != nil {
		return &util.ErrorWithCode{
			StatusCode:    util.ERROR_BAD_PATTERN,
			InternalError: fmt.Errorf("failed to compile include patterns '%v': %v", r.opts.IncludePatterns, err),
		}
	}
	r.excludePatterns, err = r.compileGlobs(r.opts.ExcludePatterns, "exclude")
	if err != nil {
		return &util.ErrorWithCode{
			StatusCode:    util.ERROR_BAD_PATTERN,
			InternalError: fmt.Errorf("failed to compile exclude patterns '%v': %v", r.opts.ExcludePatterns, err),
		}
	}

	inputs, err := r.discover()
	if err != nil {
		return err
	}
	if inputs.Len() == 0 {
		return &util.ErrorWithCode{
			StatusCode:    util.ERROR_NO_INPUT_FILES_FOUND,
			InternalError: fmt.Errorf("no input files found under '%v'", r.opts.SourcePath),
		}
	}
	log.Printf("playing %v input files from '%v'", inputs.Len(), r.opts.SourcePath)

	queue := parallel.CreateJobQueue(inputs.Len(), r.opts.Workers)
	defer queue.Close()
	err = inputs.ForEach(func(relativePath string) error {
		return queue.Add(func() error {
			return r.playFile(relativePath)
		})
	})
	if err != nil {
		return err
	}
	return queue.Wait()
}

func (r *runner) discover() (*util.List[string], error) {
	inputs := &util.List[string]{}
	err := filepath.WalkDir(r.opts.SourcePath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		relativePath, err := filepath.Rel(r.opts.SourcePath, filePath)
		if err != nil {
			return err
		}
		relativePath = filepath.ToSlash(relativePath)
		if r.included(relativePath) {
			inputs.Append(relativePath)
		}
		return nil
	})
	if err != nil {
		return nil, &util.ErrorWithCode{
			StatusCode:    util.ERROR_BAD_SOURCE_PATH,
			InternalError: fmt.Errorf("failed to walk '%v': %v", r.opts.SourcePath, err),
		}
	}
	return inputs, nil
}

func (r *runner) included(relativePath string) bool {
	pathToCheck := relativePath
	if r.opts.IgnoreCasePatterns {
		pathToCheck = strings.ToLower(pathToCheck)
	}

	if len(r.includePatterns) > 0 && !matches(pathToCheck, r.includePatterns) {
		r.verboseLog("--- skipping '%v' - not matching include patterns", relativePath)
		return false
	}

	// excludes apply to included paths too, hidden-path defaults among them
	if len(r.excludePatterns) > 0 && matches(pathToCheck, r.excludePatterns) {
		r.verboseLog("--- skipping '%v' - matching exclude patterns", relativePath)
		return false
	}

	if util.SkippedInputExt(filepath.Ext(pathToCheck)) {
		r.verboseLog("--- skipping '%v' - not an input file", relativePath)
		return false
	}
	return true
}

func (r *runner) playFile(relativePath string) error {
	inputPath := filepath.Join(r.opts.SourcePath, filepath.FromSlash(relativePath))
	content, err := readInput(inputPath)
	if err != nil {
		return err
	}

	var results strings.Builder
	gameStats, err := Play(bytes.NewReader(content), &results, r.config(relativePath))
	if err != nil {
		return err
	}

	targetFilePath := filepath.Join(r.opts.OutputPath, filepath.FromSlash(relativePath)+OUTPUT_EXTENSION)
	targetDirectoryPath := filepath.Dir(targetFilePath)
	err = os.MkdirAll(targetDirectoryPath, TARGET_PERMISSIONS)
	if err != nil {
		return fmt.Errorf("failed to create target directory at '%v': %v", targetDirectoryPath, err)
	}
	err = os.WriteFile(targetFilePath, []byte(results.String()), TARGET_PERMISSIONS)
	if err != nil {
		return fmt.Errorf("failed to write results of '%v' to '%v': %v", relativePath, targetFilePath, err)
	}

	r.verboseLog("+++ '%v' to '%v'", relativePath, targetFilePath)
	r.runStats.AddInput(relativePath, gameStats)
	return nil
}

func (r *runner) writeSummary() error {
	data, err := json.MarshalIndent(r.runStats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %v", err)
	}
	err = os.WriteFile(r.opts.SummaryPath, data, TARGET_PERMISSIONS)
	if err != nil {
		return fmt.Errorf("failed to write summary to '%v': %v", r.opts.SummaryPath, err)
	}
	r.verboseLog("summary of %v games written to '%v'", r.runStats.TotalGames, r.opts.SummaryPath)
	return nil
}

func expandPatternsIfNeeded(patterns []string) []string {
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "*/") {
			patterns = append(patterns, strings.Replace(pattern, "*/", "", 1))
		}
		if strings.HasPrefix(pattern, "**/") {
			patterns = append(patterns, strings.Replace(pattern, "**/", "", 1))
		}
	}
	return patterns
}

func (r *runner) compileGlobs(patterns []string, title string) ([]glob.Glob, error) {
	patterns = expandPatternsIfNeeded(patterns)
	r.verboseLog("%v %v patterns:\n%v", len(patterns), title, strings.Join(patterns, ", "))
	globs := make([]glob.Glob, len(patterns))
	for i, pattern := range patterns {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		globs[i] = compiled
	}
	return globs, nil
}

func matches(filePath string, patterns []glob.Glob) bool {
	for _, pattern := range patterns {
		if pattern.Match(filePath) {
			return true
		}
	}
	return false
}

func (r *runner) verboseLog(format string, v ...interface{}) {
	if r.opts.VerboseLogging {
		log.Printf(format, v...)
	}
}
