package wizard

import "fmt"

const (
	ActionNext   = "次へ"
	ActionFinish = "完了"
)

// View is what a client needs to render the current question.
type View struct {
	Index     int     `json:"index"`
	Total     int     `json:"total"`
	Counter   string  `json:"counter"`
	Progress  float64 `json:"progress"`
	Step      Step    `json:"step"`
	Answer    *Answer `json:"answer"`
	CanGoBack bool    `json:"can_go_back"`
	CanSubmit bool    `json:"can_submit"`
	Action    string  `json:"action"`
	Completed bool    `json:"completed"`
	Answers   Answers `json:"answers"`
}

func (w *Wizard) View() View {
	total := len(w.steps)
	v := View{
		Index:     w.step,
		Total:     total,
		Counter:   fmt.Sprintf("%d / %d", w.step+1, total),
		Progress:  float64(w.step+1) / float64(total) * 100,
		Step:      w.Current(),
		CanGoBack: w.step > 0,
		Action:    ActionNext,
		Completed: w.completed,
		Answers:   w.Answers(),
	}
	if a, ok := w.answer(); ok {
		v.Answer = &a
		v.CanSubmit = a.Valid()
	}
	if w.isLast() {
		v.Action = ActionFinish
	}
	return v
}
