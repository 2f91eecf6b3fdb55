package game

import (
	"eenymeeny/options"
	"eenymeeny/stats"
	"eenymeeny/util"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type runTestSuite struct {
	suite.Suite
	sourcePath string
	outputPath string
}

func TestRunTestSuite(t *testing.T) {
	suite.Run(t, new(runTestSuite))
}

func (s *runTestSuite) SetupTest() {
	var err error
	s.sourcePath, err = os.MkdirTemp("", "games-src-")
	s.Require().Nil(err)
	s.outputPath, err = os.MkdirTemp("", "games-out-")
	s.Require().Nil(err)
}

func (s *runTestSuite) TearDownTest() {
	s.Nil(os.RemoveAll(s.sourcePath))
	s.Nil(os.RemoveAll(s.outputPath))
}

func (s *runTestSuite) writeInput(relativePath string, content string) {
	filePath := filepath.Join(s.sourcePath, filepath.FromSlash(relativePath))
	s.Require().Nil(os.MkdirAll(filepath.Dir(filePath), 0777))
	s.Require().Nil(os.WriteFile(filePath, []byte(content), 0666))
}

func (s *runTestSuite) readOutput(relativePath string) string {
	content, err := os.ReadFile(filepath.Join(s.outputPath, filepath.FromSlash(relativePath)))
	s.Require().Nil(err, "missing output %v", relativePath)
	return string(content)
}

func (s *runTestSuite) directoryOptions() *options.Options {
	opts := &options.Options{
		SourcePath:      s.sourcePath,
		OutputPath:      s.outputPath,
		ExcludePatterns: options.HiddenPathExclusionPatterns(),
		Workers:         2,
	}
	s.Require().Nil(options.Validate(opts))
	s.Require().True(opts.SourceIsDirectory)
	return opts
}

func (s *runTestSuite) requireCode(err error, code int) {
	var withCode *util.ErrorWithCode
	s.Require().ErrorAs(err, &withCode)
	s.Equal(code, withCode.StatusCode)
}

func (s *runTestSuite) TestStdio() {
	opts := &options.Options{}
	s.Require().Nil(options.Validate(opts))

	var out strings.Builder
	runStats, err := run(opts, strings.NewReader("5 1\n7 2\n0 0\n"), &out)
	s.Require().Nil(err)
	s.Equal("3\n4\n", out.String())
	s.Equal(2, runStats.TotalGames)
	s.Equal(12, runStats.TotalPlayers)
}

func (s *runTestSuite) TestSingleFileToOutputFile() {
	s.writeInput("games.txt", "5 1\n0 4\n0 0\n")
	outputFile := filepath.Join(s.outputPath, "nested", "games.result")
	opts := &options.Options{
		SourcePath: filepath.Join(s.sourcePath, "games.txt"),
		OutputPath: outputFile,
	}
	s.Require().Nil(options.Validate(opts))

	var out strings.Builder
	_, err := run(opts, strings.NewReader(""), &out)
	s.Require().Nil(err)
	s.Empty(out.String())
	s.Equal("3\n0\n", s.readOutput("nested/games.result"))
}

func (s *runTestSuite) TestDirectory() {
	s.writeInput("first.txt", "5 1\n0 0\n")
	s.writeInput("round/second.txt", "7 2\n1 0\n0 0\n")
	s.writeInput(".hidden.txt", "3 1\n0 0\n")
	s.writeInput(".cache/third.txt", "3 1\n0 0\n")
	s.writeInput("old.out", "9\n")
	s.writeInput("picture.png", "not games")

	runStats, err := Run(s.directoryOptions())
	s.Require().Nil(err)

	s.Equal("3\n", s.readOutput("first.txt.out"))
	s.Equal("4\n1\n", s.readOutput("round/second.txt.out"))
	s.Len(runStats.Inputs, 2)
	s.Equal(3, runStats.TotalGames)

	for _, skipped := range []string{".hidden.txt.out", ".cache/third.txt.out", "old.out.out", "picture.png.out"} {
		_, err = os.Stat(filepath.Join(s.outputPath, filepath.FromSlash(skipped)))
		s.True(os.IsNotExist(err), "%v should not be played", skipped)
	}
}

func (s *runTestSuite) TestDirectoryIncludeExclude() {
	s.writeInput("a.in", "5 1\n0 0\n")
	s.writeInput("b.in", "7 2\n0 0\n")
	s.writeInput("c.txt", "1 0\n0 0\n")
	s.writeInput("drafts/d.in", "2 1\n0 0\n")

	opts := s.directoryOptions()
	opts.IncludePatterns = []string{"**.in"}
	opts.ExcludePatterns = append(opts.ExcludePatterns, "b.in")
	runStats, err := Run(opts)
	s.Require().Nil(err)

	s.Contains(runStats.Inputs, "a.in")
	s.NotContains(runStats.Inputs, "b.in", "excluded even though included")
	s.Contains(runStats.Inputs, "drafts/d.in")
	s.NotContains(runStats.Inputs, "c.txt")
	s.Equal("1\n", s.readOutput("drafts/d.in.out"))
}

func (s *runTestSuite) TestDirectoryIncludeKeepsHiddenExcluded() {
	s.writeInput("a.in", "5 1\n0 0\n")
	s.writeInput(".cache/x.in", "7 2\n0 0\n")
	s.writeInput(".y.in", "7 2\n0 0\n")

	opts := s.directoryOptions()
	opts.IncludePatterns = []string{"**.in"}
	runStats, err := Run(opts)
	s.Require().Nil(err)

	s.Len(runStats.Inputs, 1)
	s.Contains(runStats.Inputs, "a.in")
	_, err = os.Stat(filepath.Join(s.outputPath, ".cache", "x.in.out"))
	s.True(os.IsNotExist(err))
}

func (s *runTestSuite) TestDirectoryIncludeHiddenWhenNoDefaults() {
	s.writeInput(".cache/x.in", "7 2\n0 0\n")

	opts := s.directoryOptions()
	opts.ExcludePatterns = nil
	opts.IncludePatterns = []string{"**.in"}
	runStats, err := Run(opts)
	s.Require().Nil(err)
	s.Contains(runStats.Inputs, ".cache/x.in")
}

func (s *runTestSuite) TestDirectoryExcludeOnly() {
	s.writeInput("keep.txt", "5 1\n0 0\n")
	s.writeInput("drafts/skip.txt", "7 2\n0 0\n")

	opts := s.directoryOptions()
	opts.ExcludePatterns = append(opts.ExcludePatterns, "drafts/**")
	runStats, err := Run(opts)
	s.Require().Nil(err)
	s.Len(runStats.Inputs, 1)
	s.Contains(runStats.Inputs, "keep.txt")
}

func (s *runTestSuite) TestDirectoryIgnoreCase() {
	s.writeInput("GAMES.TXT", "5 1\n0 0\n")

	opts := s.directoryOptions()
	opts.IncludePatterns = []string{"*.txt"}
	opts.IgnoreCasePatterns = true
	runStats, err := Run(opts)
	s.Require().Nil(err)
	s.Contains(runStats.Inputs, "GAMES.TXT")
}

func (s *runTestSuite) TestDirectoryWithoutInputs() {
	s.writeInput(".only-hidden", "5 1\n0 0\n")
	_, err := Run(s.directoryOptions())
	s.requireCode(err, util.ERROR_NO_INPUT_FILES_FOUND)
}

func (s *runTestSuite) TestBadPattern() {
	s.writeInput("a.txt", "5 1\n0 0\n")
	opts := s.directoryOptions()
	opts.IncludePatterns = []string{"["}
	_, err := Run(opts)
	s.requireCode(err, util.ERROR_BAD_PATTERN)
}

func (s *runTestSuite) TestDirectoryFailurePropagates() {
	s.writeInput("good.txt", "5 1\n0 0\n")
	s.writeInput("bad.txt", "5 one\n0 0\n")
	_, err := Run(s.directoryOptions())
	s.requireCode(err, util.ERROR_MALFORMED_INPUT)
}

func (s *runTestSuite) TestAllocationLimit() {
	s.writeInput("big.txt", "100 3\n0 0\n")
	opts := s.directoryOptions()
	opts.MaxPlayers = 10
	_, err := Run(opts)
	s.requireCode(err, util.ERROR_ALLOCATION_FAILURE)
}

func (s *runTestSuite) TestSummary() {
	s.writeInput("first.txt", "5 1\n0 2\n0 0\n")
	s.writeInput("second.txt", "7 2\n0 0\n")
	opts := s.directoryOptions()
	opts.SummaryPath = filepath.Join(s.outputPath, "summary.json")

	_, err := Run(opts)
	s.Require().Nil(err)

	data, err := os.ReadFile(opts.SummaryPath)
	s.Require().Nil(err)
	var summary stats.RunStats
	s.Require().Nil(json.Unmarshal(data, &summary))
	s.Equal(3, summary.TotalGames)
	s.Equal(12, summary.TotalPlayers)
	s.Equal([]int{3, 0}, summary.Inputs["first.txt"].Survivors)
	s.Equal([]int{4}, summary.Inputs["second.txt"].Survivors)
}
