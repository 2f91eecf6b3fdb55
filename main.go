package main

import (
	"eenymeeny/game"
	"eenymeeny/options"
	"eenymeeny/util"
	"errors"
	"github.com/urfave/cli/v2"
	"log"
	"os"
)

const VERSION = "1.0.0"

func main() {
	cli.AppHelpTemplate =
		`NAME:
   eeny-meeny - 1.0.0 - Find the survivor of circular elimination games (Josephus problem).

USAGE:
   eeny-meeny [--src value] [--out value]        [optional flags]

   Input is whitespace separated pairs of "count skip". Every pair seats count
   players in a circle, skips skip players and eliminates the next one until a
   single survivor is left; its position is printed. A pair with no players
   prints 0 and "0 0" ends the input.

OPTIONS:
   --src value, -s value      input file or directory of input files, '-' reads standard input (default: -)
   --out value, -o value      output file, or output directory when src is a directory. will be created if does not exist
   --include value, -i value  patterns of input file paths to include when src is a directory, comma delimited, may contain any glob pattern
   --exclude value, -e value  patterns of input file paths to exclude when src is a directory, comma delimited, may contain any glob pattern
   --verbose, --vv            verbose logging, including the elimination order of every game (default: false)
   --ignore-case              ignore case when checking path against inclusion patterns (default: false)
   --include-hidden           don't filter out hidden files and directories when src is a directory (default: false)
   --workers value, -w value  number of input files played concurrently (default: 4)
   --max-players value        maximal number of players in one game, 0 for unlimited (larger games may exhaust memory) (default: 1000000)
   --summary value            write a json summary of all games played to this path
   --help, -h                 show help (default: false)
   --version, -v              print the version (default: false)

EXIT CODES:
  0   Success
  201  Source path is invalid
  202  Output path is invalid
  203  Input is malformed
  204  Players exceed --max-players
  205  Include or exclude pattern is invalid
  206  No input files found in source directory
  207  Option value is invalid
  1    Any other error
`

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
	app := &cli.App{
		Name:    "eeny-meeny",
		Usage:   "Find the survivor of circular elimination games (Josephus problem).",
		Flags:   options.Flags,
		Version: VERSION,
		Action: func(ctx *cli.Context) error {
			opts, err := options.ParseOptions(ctx)
			if err != nil {
				return err
			}
			runStats, err := game.Run(opts)
			if err == nil {
				log.Printf("Completed successfully, played %v games", runStats.TotalGames)
			}
			return err
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Printf("failed: %v", err)
		var errorWithCode *util.ErrorWithCode
		if errors.As(err, &errorWithCode) {
			os.Exit(errorWithCode.StatusCode)
		}
		os.Exit(1)
	}
}
