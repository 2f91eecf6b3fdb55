package options

import (
	"eenymeeny/util"
	"fmt"
	"github.com/urfave/cli/v2"
	"os"
	"path/filepath"
	"strings"
)

const (
	STDIO_PATH          = "-"
	DEFAULT_MAX_PLAYERS = 1000000
)

var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:     "src",
		Aliases:  []string{"s"},
		Value:    STDIO_PATH,
		Usage:    "input file or directory of input files, '-' reads standard input",
		Required: false,
	},
	&cli.StringFlag{
		Name:     "out",
		Aliases:  []string{"o"},
		Value:    "",
		Usage:    "output file, or output directory when src is a directory. will be created if does not exist",
		Required: false,
	},
	&cli.StringFlag{
		Name:     "include",
		Aliases:  []string{"i"},
		Value:    "",
		Usage:    "patterns of input file paths to include when src is a directory, comma delimited, may contain any glob pattern",
		Required: false,
	},
	&cli.StringFlag{
		Name:     "exclude",
		Aliases:  []string{"e"},
		Value:    "",
		Usage:    "patterns of input file paths to exclude when src is a directory, comma delimited, may contain any glob pattern",
		Required: false,
	},
	&cli.BoolFlag{
		Name:     "verbose",
		Aliases:  []string{"vv"},
		Value:    false,
		Usage:    "verbose logging, including the elimination order of every game",
		Required: false,
	},
	&cli.BoolFlag{
		Name:     "ignore-case",
		Value:    false,
		Usage:    "ignore case when checking path against inclusion patterns",
		Required: false,
	},
	&cli.BoolFlag{
		Name:     "include-hidden",
		Value:    false,
		Usage:    "don't filter out hidden files and directories when src is a directory",
		Required: false,
	},
	&cli.IntFlag{
		Name:     "workers",
		Aliases:  []string{"w"},
		Value:    4,
		Usage:    "number of input files played concurrently",
		Required: false,
	},
	&cli.IntFlag{
		Name:     "max-players",
		Value:    DEFAULT_MAX_PLAYERS,
		Usage:    "maximal number of players in one game, 0 for unlimited (larger games may exhaust memory)",
		Required: false,
	},
	&cli.StringFlag{
		Name:     "summary",
		Value:    "",
		Usage:    "write a json summary of all games played to this path",
		Required: false,
	},
}

type Options struct {
	SourcePath         string
	SourceIsDirectory  bool
	OutputPath         string
	IncludePatterns    []string
	ExcludePatterns    []string
	VerboseLogging     bool
	IgnoreCasePatterns bool
	Workers            int
	MaxPlayers         int
	SummaryPath        string
}

// HiddenPathExclusionPatterns matches dot files and anything under a dot directory.
func HiddenPathExclusionPatterns() []string {
	return []string{".*", "**/.*", ".*/**", "**/.*/**"}
}

func splitListFlag(flag string) []string {
	if len(flag) == 0 {
		return []string{}
	}
	return strings.Split(flag, ",")
}

func validateDirectory(dirPath string, createIfNotExist bool) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		if !createIfNotExist {
			return fmt.Errorf("directory does not exist at %v", dirPath)
		}
		err = os.MkdirAll(dirPath, 0777)
		if err != nil {
			return fmt.Errorf("failed to create directory at %v: %w", dirPath, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("directory error at %v: %w", dirPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("directory is actually a file at %v", dirPath)
	}
	return nil
}

func ParseOptions(c *cli.Context) (*Options, error) {
	opts := &Options{
		SourcePath:         c.String("src"),
		OutputPath:         c.String("out"),
		IncludePatterns:    splitListFlag(c.String("include")),
		ExcludePatterns:    splitListFlag(c.String("exclude")),
		VerboseLogging:     c.Bool("verbose"),
		IgnoreCasePatterns: c.Bool("ignore-case"),
		Workers:            c.Int("workers"),
		MaxPlayers:         c.Int("max-players"),
		SummaryPath:        c.String("summary"),
	}

	if !c.Bool("include-hidden") {
		opts.ExcludePatterns = union(HiddenPathExclusionPatterns(), opts.ExcludePatterns)
	}

	err := Validate(opts)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks the paths and limits of opts, creating output
// directories as needed, and fills in SourceIsDirectory.
func Validate(opts *Options) error {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxPlayers < 0 {
		return &util.ErrorWithCode{
			StatusCode:    util.ERROR_BAD_OPTION,
			InternalError: fmt.Errorf("max players must not be negative, got %v", opts.MaxPlayers),
		}
	}
	if len(opts.SourcePath) == 0 {
		opts.SourcePath = STDIO_PATH
	}

	if opts.SourcePath != STDIO_PATH {
		info, err := os.Stat(opts.SourcePath)
		if err != nil {
			return &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_SOURCE_PATH,
				InternalError: fmt.Errorf("source at '%v' is missing or invalid: %v", opts.SourcePath, err),
			}
		}
		opts.SourceIsDirectory = info.IsDir()
	}

	if opts.SourceIsDirectory {
		if len(opts.OutputPath) == 0 {
			return &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_OUTPUT_PATH,
				InternalError: fmt.Errorf("an output directory is required when source '%v' is a directory", opts.SourcePath),
			}
		}
		err := validateDirectory(opts.OutputPath, true)
		if err != nil {
			return &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_OUTPUT_PATH,
				InternalError: err,
			}
		}
		return nil
	}

	if len(opts.OutputPath) > 0 && opts.OutputPath != STDIO_PATH {
		err := validateDirectory(filepath.Dir(opts.OutputPath), true)
		if err != nil {
			return &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_OUTPUT_PATH,
				InternalError: err,
			}
		}
	}
	return nil
}

func union(s1 []string, s2 []string) []string {
	if len(s1) == 0 {
		return s2
	}
	if len(s2) == 0 {
		return s1
	}
	unified := make([]string, 0, len(s1)+len(s2))
	unified = append(unified, s1...)
	return append(unified, s2...)
}
