package question

// Kind identifies a question variant. The values are the wire strings used by
// exported players.
type Kind string

const (
	KindMultipleChoice Kind = "MULTIPLE_CHOICE"
	KindTrueFalse      Kind = "TRUE_FALSE"
	KindOrdering       Kind = "ORDERING"
)

// Kinds lists every question kind in selector order.
var Kinds = []Kind{KindMultipleChoice, KindTrueFalse, KindOrdering}

// Option and item bounds for MultipleChoice and Ordering questions.
const (
	MinOptions = 2
	MaxOptions = 5
)

// Fixed answer identifiers of a TrueFalse question.
const (
	AnswerTrue  = "true"
	AnswerFalse = "false"
)

// AnswerOption is a selectable option or an orderable item.
type AnswerOption struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Header holds the fields shared by every question kind.
type Header struct {
	ID   string
	Time float64
	Text string
}

// Meta returns the shared question fields.
func (h Header) Meta() Header { return h }

// Question is the closed set of question kinds: *MultipleChoice, *TrueFalse
// and *Ordering.
type Question interface {
	Meta() Header
	Kind() Kind
	sealed()
}

// MultipleChoice asks the viewer to pick one option. An empty CorrectAnswerID
// marks an unfinished draft.
type MultipleChoice struct {
	Header
	Options         []AnswerOption
	CorrectAnswerID string
}

// TrueFalse asks the viewer to pick AnswerTrue or AnswerFalse.
type TrueFalse struct {
	Header
	CorrectAnswerID string
}

// Ordering asks the viewer to arrange Items; Items holds the canonical order.
type Ordering struct {
	Header
	Items []AnswerOption
}

func (*MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (*TrueFalse) Kind() Kind      { return KindTrueFalse }
func (*Ordering) Kind() Kind       { return KindOrdering }

func (*MultipleChoice) sealed() {}
func (*TrueFalse) sealed()      {}
func (*Ordering) sealed()       {}

// ValidKind reports whether kind names a known question kind.
func ValidKind(kind Kind) bool {
	switch kind {
	case KindMultipleChoice, KindTrueFalse, KindOrdering:
		return true
	default:
		return false
	}
}
