package gateway

import "github.com/zuca/portal/internal/model"

const (
	// FallbackInsight answers an insight request the generator could not serve.
	FallbackInsight = "The Lord is my shepherd, I shall not want. (API Quota reached, showing fallback)"

	// DefaultBlessing replaces an empty generated insight.
	DefaultBlessing = "May God bless you today."
)

var fallbackQuestions = []model.TriviaQuestion{
	{Question: "How many books are in the New Testament?", Options: []string{"24", "27", "39", "66"}, CorrectAnswer: 1, Explanation: "The New Testament consists of 27 books.", Points: 5},
	{Question: "Who was the first martyr of the Church?", Options: []string{"Peter", "Paul", "Stephen", "James"}, CorrectAnswer: 2, Explanation: "St. Stephen was the first martyr.", Points: 5},
	{Question: "Which Gospel was written first?", Options: []string{"Matthew", "Mark", "Luke", "John"}, CorrectAnswer: 1, Explanation: "Most scholars agree Mark was the first Gospel.", Points: 5},
	{Question: "How many days was Lazarus in the tomb?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: 3, Explanation: "Jesus raised Lazarus after 4 days.", Points: 5},
	{Question: "Who wrote the Book of Revelation?", Options: []string{"Peter", "Paul", "John", "Luke"}, CorrectAnswer: 2, Explanation: "John the Apostle wrote Revelation.", Points: 10},
	{Question: "What is the shortest verse in the Bible?", Options: []string{"Jesus wept.", "God is love.", "Pray without ceasing.", "Rejoice always."}, CorrectAnswer: 0, Explanation: "John 11:35: 'Jesus wept.'", Points: 10},
	{Question: "Who was the oldest man mentioned in the Bible?", Options: []string{"Adam", "Noah", "Methuselah", "Abraham"}, CorrectAnswer: 2, Explanation: "Methuselah lived to be 969 years old.", Points: 10},
}

// FallbackQuestions returns a fresh copy of the built-in question set.
func FallbackQuestions() []model.TriviaQuestion {
	return cloneQuestions(fallbackQuestions)
}

func cloneQuestions(questions []model.TriviaQuestion) []model.TriviaQuestion {
	out := make([]model.TriviaQuestion, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
