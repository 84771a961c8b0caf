package cheatsheet

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

var clipboardWriteAll = clipboard.WriteAll

// PlainText flattens the cheatsheet into headed paragraphs suitable for
// pasting into a notes app.
func PlainText(cs *api.Cheatsheet) string {
	var b strings.Builder
	heading := func(s string) { fmt.Fprintf(&b, "\n\n%s\n", s) }

	heading(sectionScript)
	for i, it := range cs.Script {
		heading(orNumbered(it.Title, "스크립트", i))
		b.WriteString(it.Content + "\n")
		if it.Example != "" {
			b.WriteString(it.Example + "\n")
		}
	}

	heading(sectionQuestions)
	for i, it := range cs.Questions {
		heading(orNumbered(it.Title, "질문", i))
		b.WriteString(it.Question + "\n")
		if it.Answer != "" {
			b.WriteString(it.Answer + "\n")
		}
	}

	if len(cs.Listening) > 0 {
		heading(sectionListening)
		for _, it := range cs.Listening {
			b.WriteString("• " + it.Text + "\n")
		}
	}

	heading(sectionMyQuestions)
	for i, it := range cs.MyQuestions {
		heading(orNumbered(it.Title, "내 질문", i))
		b.WriteString(it.Text + "\n")
	}

	heading(sectionPrecautions)
	for i, it := range cs.Precautions {
		heading(orNumbered(it.Title, "주의사항", i))
		b.WriteString(it.Text + "\n")
	}

	return strings.TrimSpace(b.String())
}

// Copy writes the whole cheatsheet to the system clipboard.
func Copy(cs *api.Cheatsheet) error {
	if err := clipboardWriteAll(PlainText(cs)); err != nil {
		return fmt.Errorf("copy cheatsheet: %w", err)
	}
	return nil
}
