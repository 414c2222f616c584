package quiz

// Aspect is one independently scored part of a question.
type Aspect struct {
	Name   string `json:"名稱" yaml:"名稱"`
	Hint   string `json:"提示,omitempty" yaml:"提示,omitempty"`
	Answer string `json:"解答,omitempty" yaml:"解答,omitempty"` // reference answer; stripped before serving
}

// Question field names follow the bank file format.
type Question struct {
	ID          int      `json:"id" yaml:"id"`
	Category    string   `json:"分類" yaml:"分類"`
	Number      string   `json:"題號,omitempty" yaml:"題號,omitempty"`
	Topic       string   `json:"主題" yaml:"主題"`
	Description string   `json:"敘述,omitempty" yaml:"敘述,omitempty"`
	Aspects     []Aspect `json:"面向" yaml:"面向"`
}

// Public returns a copy of q safe to send to a quiz taker.
func (q Question) Public() Question {
	out := q
	out.Aspects = make([]Aspect, len(q.Aspects))
	for i, a := range q.Aspects {
		a.Answer = ""
		out.Aspects[i] = a
	}
	return out
}

// Answers maps a question id (decimal string) to aspect name to answer text.
type Answers map[string]map[string]string

// Lookup returns the submitted text, or "" when either key is absent.
func (a Answers) Lookup(questionID, aspect string) string {
	return a[questionID][aspect]
}

type Submission struct {
	QuestionIDs []int   `json:"question_ids"`
	Answers     Answers `json:"answers"`
}

type FieldResult struct {
	Name          string  `json:"name"`
	UserAnswer    string  `json:"user_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	Score         float64 `json:"score"`
}

type QuestionResult struct {
	ID       int           `json:"id"`
	Topic    string        `json:"主題"`
	Category string        `json:"分類"`
	Fields   []FieldResult `json:"fields"`
}

type Report struct {
	FinalScore float64          `json:"final_score"`
	Results    []QuestionResult `json:"results"`
}
