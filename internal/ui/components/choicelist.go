package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/sahana/lingo/internal/ui/theme"
)

// ChoiceList presents a question's answer choices plus a trailing opt-out
// entry. Unlike a practice drill there is no correctness feedback during a
// placement test, so the component only reports which choice was taken.
type ChoiceList struct {
	Prompt   string
	Choices  []string // server order, opt-out appended by the caller
	Selected int
}

// NewChoiceList creates a choice list for one question.
func NewChoiceList(prompt string, choices []string) ChoiceList {
	return ChoiceList{
		Prompt:  prompt,
		Choices: choices,
	}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. The second return value is the chosen
// option text when the user confirmed a choice, else "".
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, string) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, ""
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Choices)-1 {
			c.Selected++
		}
	case "enter":
		if c.Selected >= 0 && c.Selected < len(c.Choices) {
			return c, c.Choices[c.Selected]
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(c.Choices) {
			c.Selected = i
			return c, c.Choices[i]
		}
	}

	return c, ""
}

// View renders the choice list.
func (c ChoiceList) View() string {
	s := theme.Body.Bold(true).Render(c.Prompt) + "\n\n"

	for i, choice := range c.Choices {
		line := fmt.Sprintf("  %d)  %s", i+1, choice)
		if i == c.Selected {
			line = fmt.Sprintf("▸ %d)  %s", i+1, choice)
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
