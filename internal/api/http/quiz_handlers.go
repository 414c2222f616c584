package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

// BankProvider yields the bank snapshot for a request.
type BankProvider interface {
	Bank(ctx context.Context) (*quiz.Bank, error)
}

type questionsResp struct {
	Success   bool            `json:"success"`
	Questions []quiz.Question `json:"questions"`
	Ticket    string          `json:"ticket,omitempty"`
}

// GET /api/questions
func QuestionsHandler(bp BankProvider, categories []string, pick quiz.Picker, tickets *auth.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bank, err := bp.Bank(r.Context())
		if err != nil {
			slog.Error("load bank", "error", err)
			http.Error(w, "question bank unavailable", http.StatusInternalServerError)
			return
		}

		selected := quiz.Select(bank, categories, pick)
		resp := questionsResp{Success: true, Questions: make([]quiz.Question, len(selected))}
		ids := make([]int, len(selected))
		for i, q := range selected {
			resp.Questions[i] = q.Public()
			ids[i] = q.ID
		}

		if tickets != nil {
			tok, err := tickets.Issue(ids)
			if err != nil {
				slog.Error("issue ticket", "error", err)
				http.Error(w, "issue ticket", http.StatusInternalServerError)
				return
			}
			resp.Ticket = tok
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type submitResp struct {
	Success bool `json:"success"`
	quiz.Report
}

// POST /api/submit
//
// When the request carries a verified ticket, its question ids replace the
// ones in the body.
func SubmitHandler(bp BankProvider, scorer quiz.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub quiz.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if c := auth.TicketFromContext(r.Context()); c != nil {
			sub.QuestionIDs = c.QuestionIDs
		}

		bank, err := bp.Bank(r.Context())
		if err != nil {
			slog.Error("load bank", "error", err)
			http.Error(w, "question bank unavailable", http.StatusInternalServerError)
			return
		}

		rep := quiz.Evaluate(bank, sub, scorer)
		slog.Debug("quiz scored", "questions", len(rep.Results), "final_score", rep.FinalScore)
		writeJSON(w, http.StatusOK, submitResp{Success: true, Report: rep})
	}
}

// Explainer scores one answer and reports how the score was reached.
type Explainer interface {
	Explain(user, reference string) grading.Result
}

// POST /api/score  { "user_answer": "...", "correct_answer": "..." }
func ScoreHandler(ex Explainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserAnswer    string `json:"user_answer"`
			CorrectAnswer string `json:"correct_answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res := ex.Explain(req.UserAnswer, req.CorrectAnswer)
		res.Score = grading.Round2(res.Score)
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
