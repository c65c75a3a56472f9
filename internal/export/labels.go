package export

import (
	"fmt"
	"sort"
	"strings"

	"vidquiz/internal/judge"
)

// Labels are the viewer-facing texts of the player.
type Labels struct {
	Submit       string `json:"submit"`
	Check        string `json:"check"`
	Continue     string `json:"continue"`
	Correct      string `json:"correct"`
	Incorrect    string `json:"incorrect"`
	True         string `json:"true"`
	False        string `json:"false"`
	OrderingHint string `json:"orderingHint"`
	NoVideo      string `json:"noVideo"`
}

var presets = map[string]Labels{
	"en": {
		Submit:       "Submit",
		Check:        "Check",
		Continue:     "Continue",
		Correct:      "Correct!",
		Incorrect:    "Incorrect!",
		True:         "True",
		False:        "False",
		OrderingHint: "Drag and drop to put the items in the correct order.",
		NoVideo:      "Your browser does not support the video tag.",
	},
	"vi": {
		Submit:       "Trả lời",
		Check:        "Kiểm tra",
		Continue:     "Tiếp tục",
		Correct:      "Chính xác!",
		Incorrect:    "Không chính xác!",
		True:         "Đúng",
		False:        "Sai",
		OrderingHint: "Kéo và thả để sắp xếp theo đúng thứ tự.",
		NoVideo:      "Trình duyệt của bạn không hỗ trợ thẻ video.",
	},
}

// Locales lists the label presets.
func Locales() []string {
	out := make([]string, 0, len(presets))
	for locale := range presets {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LabelsFor returns the preset for locale. Empty means "en".
func LabelsFor(locale string) (Labels, error) {
	if locale == "" {
		locale = "en"
	}
	labels, ok := presets[strings.ToLower(locale)]
	if !ok {
		return Labels{}, fmt.Errorf("unknown locale %q", locale)
	}
	return labels, nil
}

// With returns labels with overrides applied. Keys use the config names
// (submit, check, continue, correct, incorrect, true, false, ordering_hint,
// no_video); empty values are ignored.
func (l Labels) With(overrides map[string]string) (Labels, error) {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		switch key {
		case "submit":
			l.Submit = value
		case "check":
			l.Check = value
		case "continue":
			l.Continue = value
		case "correct":
			l.Correct = value
		case "incorrect":
			l.Incorrect = value
		case "true":
			l.True = value
		case "false":
			l.False = value
		case "ordering_hint":
			l.OrderingHint = value
		case "no_video":
			l.NoVideo = value
		default:
			return l, fmt.Errorf("unknown label %q", key)
		}
	}
	return l, nil
}

// TrueFalse returns the labels of the true/false pair.
func (l Labels) TrueFalse() judge.TrueFalseLabels {
	return judge.TrueFalseLabels{True: l.True, False: l.False}
}

// KnownLabel reports whether key names a label accepted by With.
func KnownLabel(key string) bool {
	_, err := Labels{}.With(map[string]string{key: key})
	return err == nil
}
