package content

import (
	"fmt"
	"math"
)

// QuestionType 区分单选题与判断题。
type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionTrueFalse QuestionType = "true_false"
)

// Question 是一道测验题。单选题使用 Options/CorrectIndex，判断题使用 CorrectBool。
type Question struct {
	ID           int          `json:"id"`
	Type         QuestionType `json:"type"`
	Question     string       `json:"question"`
	Options      []string     `json:"options,omitempty"`
	CorrectIndex int          `json:"-"`
	CorrectBool  bool         `json:"-"`
}

// Quiz 是课程附带的测验。
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Answer 是学生对一道题的作答。未作答的题不计分。
type Answer struct {
	QuestionID int   `json:"question_id"`
	Choice     *int  `json:"choice,omitempty"`
	Value      *bool `json:"value,omitempty"`
}

// Result 是一次测验的得分。
type Result struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Score 统计与正确答案一致的作答数量，百分比四舍五入。
func (q Quiz) Score(answers []Answer) Result {
	byID := make(map[int]Answer, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a
	}

	result := Result{Total: len(q.Questions)}
	for _, question := range q.Questions {
		answer, ok := byID[question.ID]
		if !ok {
			continue
		}
		if question.matches(answer) {
			result.Score++
		}
	}
	if result.Total > 0 {
		result.Percentage = int(math.Round(float64(result.Score) / float64(result.Total) * 100))
	}
	return result
}

func (q Question) matches(a Answer) bool {
	switch q.Type {
	case QuestionMCQ:
		return a.Choice != nil && *a.Choice == q.CorrectIndex
	case QuestionTrueFalse:
		return a.Value != nil && *a.Value == q.CorrectBool
	default:
		return false
	}
}

// String 便于日志输出 "2/3 (67%)"。
func (r Result) String() string {
	return fmt.Sprintf("%d/%d (%d%%)", r.Score, r.Total, r.Percentage)
}
