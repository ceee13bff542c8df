package wizard

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
)

// Answer is a single-choice string or a multi-choice set. On the wire it is
// a JSON string or a JSON array of strings.
type Answer struct {
	Value  string
	Values []string
	Multi  bool
}

func Single(v string) Answer { return Answer{Value: v} }

func Multiple(vs ...string) Answer {
	return Answer{Values: append([]string{}, vs...), Multi: true}
}

// Valid reports whether the answer allows advancing: a non-blank string or a non-empty set.
func (a Answer) Valid() bool {
	if a.Multi {
		return len(a.Values) > 0
	}
	return strings.TrimSpace(a.Value) != ""
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return errors.Wrap(err, "answer must be a string or a list of strings")
		}
		*a = Multiple(vs...)
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "answer must be a string or a list of strings")
	}
	*a = Single(v)
	return nil
}

// Answers maps question id to answer.
type Answers map[int]Answer

func (a Answers) clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		if v.Multi {
			v.Values = append([]string{}, v.Values...)
		}
		out[k] = v
	}
	return out
}

// Preferences projects the default steps' answers onto an engineer's wizard preferences.
func (a Answers) Preferences() models.WizardPreferences {
	return models.WizardPreferences{
		DesiredSalary:    a[StepDesiredSalary].Value,
		DesiredLocations: a[StepDesiredLocations].Values,
		Skills:           a[StepSkills].Values,
	}
}
