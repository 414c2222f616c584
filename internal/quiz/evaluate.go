package quiz

import (
	"strconv"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

// Scorer scores one answer against one reference answer.
type Scorer interface {
	Score(user, reference string) float64
}

// Evaluate scores every aspect of the submitted questions. Ids missing from
// the bank are skipped. FinalScore is the mean aspect score as a percentage,
// or 0 when nothing was scored.
func Evaluate(b *Bank, sub Submission, s Scorer) Report {
	rep := Report{Results: []QuestionResult{}}
	total, possible := 0.0, 0.0

	for _, qid := range sub.QuestionIDs {
		q, err := b.Question(qid)
		if err != nil {
			continue
		}
		key := strconv.Itoa(qid)
		qr := QuestionResult{
			ID:       q.ID,
			Topic:    q.Topic,
			Category: q.Category,
			Fields:   make([]FieldResult, 0, len(q.Aspects)),
		}
		for _, a := range q.Aspects {
			user := sub.Answers.Lookup(key, a.Name)
			score := s.Score(user, a.Answer)
			total += score
			possible += 100
			qr.Fields = append(qr.Fields, FieldResult{
				Name:          a.Name,
				UserAnswer:    user,
				CorrectAnswer: a.Answer,
				Score:         grading.Round2(score),
			})
		}
		rep.Results = append(rep.Results, qr)
	}

	if possible > 0 {
		rep.FinalScore = grading.Round2(total / possible * 100)
	}
	return rep
}
