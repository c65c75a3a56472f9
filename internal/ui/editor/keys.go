package editor

import "github.com/charmbracelet/bubbles/key"

type browseKeys struct {
	Left       key.Binding
	Right      key.Binding
	Back       key.Binding
	Forward    key.Binding
	Start      key.Binding
	Up         key.Binding
	Down       key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Jump       key.Binding
	Preview    key.Binding
	ExportHTML key.Binding
	ExportZip  key.Binding
	ExportDir  key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newBrowseKeys() browseKeys {
	return browseKeys{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "move 1s")),
		Right:      key.NewBinding(key.WithKeys("right", "l")),
		Back:       key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "move 10s")),
		Forward:    key.NewBinding(key.WithKeys("]")),
		Start:      key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("0", "start")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new at cursor")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Jump:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cursor to question")),
		Preview:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		ExportHTML: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export html")),
		ExportZip:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "export zip")),
		ExportDir:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "export folder")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save questions")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Preview, k.ExportHTML, k.Help, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Back, k.Start, k.Up},
		{k.New, k.Edit, k.Delete, k.Jump},
		{k.Preview, k.ExportHTML, k.ExportZip, k.ExportDir},
		{k.Save, k.Help, k.Quit},
	}
}

type formKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Add      key.Binding
	Remove   key.Binding
	Correct  key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Save     key.Binding
	Cancel   key.Binding
}

func newFormKeys() formKeys {
	return formKeys{
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "change kind/answer")),
		Right:    key.NewBinding(key.WithKeys("right")),
		Add:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add option")),
		Remove:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove option")),
		Correct:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mark correct")),
		MoveUp:   key.NewBinding(key.WithKeys("ctrl+up", "ctrl+k"), key.WithHelp("ctrl+↑/↓", "reorder")),
		MoveDown: key.NewBinding(key.WithKeys("ctrl+down", "ctrl+j")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Add, k.Correct, k.Save, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left},
		{k.Add, k.Remove, k.Correct, k.MoveUp},
		{k.Save, k.Cancel},
	}
}

type previewKeys struct {
	Toggle   key.Binding
	Up       key.Binding
	Down     key.Binding
	Choose   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Submit   key.Binding
	Back     key.Binding
	Forward  key.Binding
	Exit     key.Binding
}

func newPreviewKeys() previewKeys {
	return previewKeys{
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause or choose")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "highlight")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Choose:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "choose")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑/↓", "move item")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "J")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit/continue")),
		Back:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "seek 5s")),
		Forward:  key.NewBinding(key.WithKeys("right")),
		Exit:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "stop preview")),
	}
}

func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Up, k.Choose, k.MoveUp, k.Submit, k.Back, k.Exit}
}

func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Up, k.Choose}, {k.MoveUp, k.Submit}, {k.Back, k.Exit}}
}
