// Package dashboard aggregates a session's quiz progress.
package dashboard

import (
	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// RecentLimit is the number of history items shown on the dashboard.
const RecentLimit = 10

// TopicStats summarizes the questions seen for one topic.
type TopicStats struct {
	Topic     string  `json:"topic"`
	Attempted int     `json:"attempted"`
	Answered  int     `json:"answered"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// Summary is the progress view for one session.
type Summary struct {
	TotalQuestions int                       `json:"total_questions"`
	CorrectAnswers int                       `json:"correct_answers"`
	Accuracy       float64                   `json:"accuracy"`
	QuizScore      int                       `json:"quiz_score"`
	TopicsCovered  []string                  `json:"topics_covered"`
	Topics         []TopicStats              `json:"topics"`
	Recent         []domain.HistoryItem      `json:"recent"`
	LastFeedback   *domain.WorksheetFeedback `json:"last_feedback,omitempty"`
}

// Summarize builds the dashboard. Topics appear in order of first use and
// Recent holds the last RecentLimit history items, oldest first.
func Summarize(sess *domain.Session) Summary {
	s := Summary{
		TotalQuestions: sess.TotalQuestions,
		CorrectAnswers: sess.CorrectAnswers,
		Accuracy:       sess.Accuracy(),
		QuizScore:      sess.QuizScore,
		TopicsCovered:  []string{},
		Topics:         []TopicStats{},
		LastFeedback:   sess.LastFeedback,
	}

	index := make(map[string]int)
	for _, item := range sess.History {
		i, ok := index[item.Topic]
		if !ok {
			i = len(s.Topics)
			index[item.Topic] = i
			s.Topics = append(s.Topics, TopicStats{Topic: item.Topic})
			s.TopicsCovered = append(s.TopicsCovered, item.Topic)
		}
		ts := &s.Topics[i]
		ts.Attempted++
		if item.Answered {
			ts.Answered++
			if item.Correct {
				ts.Correct++
			}
		}
	}
	for i := range s.Topics {
		if s.Topics[i].Answered > 0 {
			s.Topics[i].Accuracy = float64(s.Topics[i].Correct) / float64(s.Topics[i].Answered) * 100
		}
	}

	start := max(len(sess.History)-RecentLimit, 0)
	s.Recent = append([]domain.HistoryItem{}, sess.History[start:]...)

	return s
}
