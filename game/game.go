package game

import (
	"bufio"
	"bytes"
	"eenymeeny/stats"
	"eenymeeny/util"
	"eenymeeny/whittle"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"golang.org/x/net/html/charset"
)

// Config tunes a single stream of games.
type Config struct {
	// Name identifies the stream in logs.
	Name string
	// MaxPlayers caps the players of one game, 0 means unlimited.
	MaxPlayers int
	Verbose    bool
}

type player struct {
	cfg     Config
	circle  *whittle.Sequence
	scanner *bufio.Scanner
	tokens  int
}

// Play reads "count skip" pairs from r until "0 0" or end of input and
// writes one survivor per game to w. A game with no players writes 0.
func Play(r io.Reader, w io.Writer, cfg Config) (*stats.GameStats, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input '%v': %v", cfg.Name, err)
	}
	decoded, err := decode(content)
	if err != nil {
		return nil, &util.ErrorWithCode{
			StatusCode:    util.ERROR_MALFORMED_INPUT,
			InternalError: fmt.Errorf("failed to decode input '%v': %v", cfg.Name, err),
		}
	}

	var allocator whittle.Allocator = whittle.Unbounded()
	if cfg.MaxPlayers > 0 {
		allocator = whittle.NewLimited(cfg.MaxPlayers)
	}

	p := &player{
		cfg:     cfg,
		circle:  whittle.NewWithAllocator(allocator),
		scanner: bufio.NewScanner(bytes.NewReader(decoded)),
	}
	p.scanner.Split(bufio.ScanWords)
	defer p.circle.Clear()

	out := bufio.NewWriter(w)
	gameStats := stats.NewGameStats()
	err = p.playAll(out, gameStats)
	if flushErr := out.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("failed to write results of '%v': %v", cfg.Name, flushErr)
	}
	if err != nil {
		return nil, err
	}
	p.verboseLog("played %v games with %v players from '%v'", gameStats.Games, gameStats.Players, cfg.Name)
	return gameStats, nil
}

// decode converts input in any sniffable encoding (UTF-16 with a BOM,
// latin-1 and so on) to UTF-8.
func decode(content []byte) ([]byte, error) {
	encoding, _, _ := charset.DetermineEncoding(content, "text/plain")
	decoded, err := encoding.NewDecoder().Bytes(content)
	if err != nil {
		return nil, err
	}
	// the decoders pass the byte order mark through
	return bytes.TrimPrefix(decoded, []byte("\uFEFF")), nil
}

func (p *player) playAll(out io.Writer, gameStats *stats.GameStats) error {
	for {
		count, found, err := p.nextNumber()
		if err != nil {
			return err
		}
		if !found {
			p.verboseLog("input '%v' ended without a terminating '0 0'", p.cfg.Name)
			return nil
		}
		skip, found, err := p.nextNumber()
		if err != nil {
			return err
		}
		if !found {
			return p.malformed("count %v has no matching skip", count)
		}

		if count == 0 && skip == 0 {
			return nil
		}

		survivor, err := p.playOne(count, skip)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, survivor); err != nil {
			return err
		}
		gameStats.AddGame(count, survivor)
	}
}

func (p *player) playOne(count int, skip int) (int, error) {
	if count == 0 {
		// no players, no winner
		return 0, nil
	}

	if p.cfg.MaxPlayers > 0 && count > p.cfg.MaxPlayers {
		return 0, &util.ErrorWithCode{
			StatusCode:    util.ERROR_ALLOCATION_FAILURE,
			InternalError: fmt.Errorf("cannot seat %v players from '%v': limit is %v", count, p.cfg.Name, p.cfg.MaxPlayers),
		}
	}

	// Clear first so a capped allocator has room for the whole new circle.
	p.circle.Clear()
	err := p.circle.Populate(count)
	if errors.Is(err, whittle.ErrAllocationFailure) {
		return 0, &util.ErrorWithCode{
			StatusCode:    util.ERROR_ALLOCATION_FAILURE,
			InternalError: fmt.Errorf("cannot seat %v players from '%v': %w", count, p.cfg.Name, err),
		}
	}
	if err != nil {
		return 0, err
	}

	if !p.cfg.Verbose {
		return p.circle.Whittle(skip)
	}
	eliminated, survivor, err := p.circle.WhittleOrder(skip)
	if err != nil {
		return 0, err
	}
	p.verboseLog("game of %v skipping %v eliminated %v, survivor %v", count, skip, eliminated, survivor)
	return survivor, nil
}

func (p *player) nextNumber() (int, bool, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return 0, false, p.malformed("token %v could not be scanned: %v", p.tokens+1, err)
		}
		return 0, false, nil
	}
	p.tokens++
	token := p.scanner.Text()
	number, err := strconv.Atoi(token)
	if err != nil {
		return 0, false, p.malformed("token %v '%v' is not an integer", p.tokens, token)
	}
	if number < 0 {
		return 0, false, p.malformed("token %v '%v' is negative", p.tokens, token)
	}
	return number, true, nil
}

func (p *player) malformed(format string, v ...interface{}) error {
	return &util.ErrorWithCode{
		StatusCode:    util.ERROR_MALFORMED_INPUT,
		InternalError: fmt.Errorf("malformed input '%v': %v", p.cfg.Name, fmt.Sprintf(format, v...)),
	}
}

func (p *player) verboseLog(format string, v ...interface{}) {
	if p.cfg.Verbose {
		log.Printf(format, v...)
	}
}
