package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID      string
	PaperName      string
	Grade          string
	StartedAt      time.Time
	Duration       time.Duration
	TotalQuestions int
	Answered       int
	TotalCorrect   int

	// Accuracy is TotalCorrect over Answered, 0 when nothing was answered.
	Accuracy float64

	// Expired is true when the session ran out of time.
	Expired bool

	// Topics lists per-topic results in first-appearance order.
	Topics []TopicResult
}

// Score returns TotalCorrect over TotalQuestions.
func (s *Summary) Score() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalQuestions)
}

// TopicResult tracks per-topic performance within a single session.
type TopicResult struct {
	Topic     string
	Questions int
	Attempted int
	Correct   int
}

// Accuracy returns Correct over Attempted.
func (t TopicResult) Accuracy() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempted)
}

func (s *Session) buildSummaryLocked() *Summary {
	sum := &Summary{
		SessionID:      s.id,
		PaperName:      s.paperName,
		Grade:          s.grade,
		StartedAt:      s.startedAt,
		TotalQuestions: len(s.entries),
		Expired:        s.expiredLocked(),
	}

	sum.Duration = s.now().Sub(s.startedAt)
	if s.timeLimit > 0 && sum.Duration > s.timeLimit {
		sum.Duration = s.timeLimit
	}

	byTopic := make(map[string]int)
	for _, e := range s.entries {
		idx, ok := byTopic[e.Topic]
		if !ok {
			idx = len(sum.Topics)
			byTopic[e.Topic] = idx
			sum.Topics = append(sum.Topics, TopicResult{Topic: e.Topic})
		}
		tr := &sum.Topics[idx]
		tr.Questions++
		if e.Result == nil {
			continue
		}
		tr.Attempted++
		sum.Answered++
		if e.Result.Correct {
			tr.Correct++
			sum.TotalCorrect++
		}
	}

	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.Answered)
	}
	return sum
}
