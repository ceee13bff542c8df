package wizard

type StepType string

const (
	StepSelect      StepType = "select"
	StepMultiSelect StepType = "multiSelect"
)

type Step struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Type     StepType `json:"type"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

func (s Step) offers(option string) bool {
	if len(s.Options) == 0 {
		return true
	}
	for _, o := range s.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Question ids of the default onboarding steps.
const (
	StepDesiredSalary    = 1
	StepDesiredLocations = 2
	StepSkills           = 3
)

// DefaultSteps is the engineer onboarding questionnaire.
var DefaultSteps = []Step{
	{
		ID:       StepDesiredSalary,
		Question: "希望する年収を教えてください",
		Type:     StepSelect,
		Options: []string{
			"300万円未満",
			"300万円〜400万円",
			"400万円〜500万円",
			"500万円〜600万円",
			"600万円〜800万円",
			"800万円以上",
		},
		Required: true,
	},
	{
		ID:       StepDesiredLocations,
		Question: "希望する勤務地を選択してください（複数選択可）",
		Type:     StepMultiSelect,
		Options: []string{
			"東京都",
			"神奈川県",
			"千葉県",
			"埼玉県",
			"その他関東",
			"大阪府",
			"京都府",
			"その他関西",
			"その他地域",
			"リモートワーク",
		},
		Required: true,
	},
	{
		ID:       StepSkills,
		Question: "得意なプログラミング言語や技術を教えてください（複数選択可）",
		Type:     StepMultiSelect,
		Options: []string{
			"JavaScript",
			"TypeScript",
			"Python",
			"Java",
			"Ruby",
			"PHP",
			"Go",
			"React",
			"Vue.js",
			"Angular",
			"Node.js",
			"Docker",
			"AWS",
			"GCP",
			"Azure",
		},
		Required: true,
	},
}
