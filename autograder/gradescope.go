package autograder

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type GradescopeTest struct {
	Name       string `json:"name"`
	MaxScore   int    `json:"max_score"`
	Score      int    `json:"score"`
	Output     string `json:"output"`
	Visibility string `json:"visibility"`
	Status     string `json:"status,omitempty"`
}

type GradescopeLeaderBoardEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Order string `json:"order,omitempty"`
}

type GradescopeOutput struct {
	Tests           []GradescopeTest             `json:"tests"`
	LeaderboardData []GradescopeLeaderBoardEntry `json:"leaderboard"`
}

func CreateGradescopeOutput() *GradescopeOutput {
	return &GradescopeOutput{
		Tests:           []GradescopeTest{},
		LeaderboardData: []GradescopeLeaderBoardEntry{},
	}
}

func (gso *GradescopeOutput) AddTest(test GradescopeTest, score int) {
	test.Score = score
	gso.Tests = append(gso.Tests, test)
}

func (gso *GradescopeOutput) AddLeaderBoardEntry(entry GradescopeLeaderBoardEntry) {
	gso.LeaderboardData = append(gso.LeaderboardData, entry)
}

// Save writes the results json to path, usually results/results.json.
func (gso *GradescopeOutput) Save(path string) error {
	b, e := json.MarshalIndent(gso, "", "  ")
	if e != nil {
		return e
	}

	if e = os.MkdirAll(filepath.Dir(path), 0755); e != nil {
		return e
	}
	return os.WriteFile(path, b, 0644)
}

// TotalScore sums the score of every test.
func (gso *GradescopeOutput) TotalScore() int {
	total := 0
	for _, t := range gso.Tests {
		total += t.Score
	}
	return total
}

func CreateTestCase(name string, maxScore int, visibility string) GradescopeTest {
	return GradescopeTest{
		Name:       name,
		MaxScore:   maxScore,
		Visibility: visibility,
	}
}

func (gt *GradescopeTest) SetStatus(success bool) {
	if success {
		gt.Status = "passed"
	} else {
		gt.Status = "failed"
	}
}

func (gt *GradescopeTest) OutputPrintLn(str string) {
	gt.Output += str + "\n"
}
