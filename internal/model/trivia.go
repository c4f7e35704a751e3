package model

const (
	QuestionCount     = 7
	QuestionSetPoints = 50
	OptionCount       = 4
)

type TriviaQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
}

func (q TriviaQuestion) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}
