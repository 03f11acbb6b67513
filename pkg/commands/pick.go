package commands

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/catalog"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// pickStory asks the user to choose a story, filtering by title as they type.
func pickStory(cmd *cobra.Command, stories []catalog.Story) (catalog.Story, error) {
	if len(stories) == 0 {
		return catalog.Story{}, errors.New("the catalog lists no stories")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Title | cyan }} {{ .ID | faint }}",
		Inactive: "   {{ .Title }} {{ .ID | faint }}",
		Selected: "➜  {{ .Title | green }}",
	}

	searcher := func(input string, index int) bool {
		title := strings.Replace(strings.ToLower(stories[index].Title), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(title, input)
	}

	prompt := promptui.Select{
		HideHelp:          true,
		Label:             "Story",
		Items:             stories,
		Templates:         templates,
		Size:              10,
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             io.NopCloser(cmd.InOrStdin()),
		Stdout:            nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return catalog.Story{}, err
	}
	return stories[i], nil
}

// promptValue asks for a single value, re-prompting until validate passes.
func promptValue(cmd *cobra.Command, label string, validate func(string) error) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}
	return prompt.Run()
}
