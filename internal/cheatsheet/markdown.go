package cheatsheet

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

const (
	sectionScript      = "📝 진료 스크립트"
	sectionQuestions   = "❓ 예상 질문과 답변"
	sectionListening   = "👂 들어야 할 내용"
	sectionMyQuestions = "🙋 내가 할 질문"
	sectionPrecautions = "⚠️ 주의사항"
)

// Markdown lays the cheatsheet out as a markdown document. Empty sections
// show a placeholder line; untitled items are numbered.
func Markdown(cs *api.Cheatsheet) string {
	var b strings.Builder

	title := cs.Title
	if title == "" {
		title = "진료 치트시트"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if p := cs.PatientInfo; p.ParticipantID != "" || p.InitialSymptoms != "" {
		if p.ParticipantID != "" {
			fmt.Fprintf(&b, "- **참가자**: %s\n", p.ParticipantID)
		}
		if p.InitialSymptoms != "" {
			fmt.Fprintf(&b, "- **증상**: %s\n", p.InitialSymptoms)
		}
		if p.GeneratedDate != "" {
			fmt.Fprintf(&b, "- **생성일**: %s\n", p.GeneratedDate)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", sectionScript)
	if len(cs.Script) == 0 {
		b.WriteString("생성된 스크립트가 없습니다.\n\n")
	}
	for i, it := range cs.Script {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", orNumbered(it.Title, "스크립트", i), it.Content)
		if it.Example != "" {
			fmt.Fprintf(&b, "> %s\n\n", it.Example)
		}
	}

	fmt.Fprintf(&b, "## %s\n\n", sectionQuestions)
	if len(cs.Questions) == 0 {
		b.WriteString("생성된 질문이 없습니다.\n\n")
	}
	for i, it := range cs.Questions {
		fmt.Fprintf(&b, "### %s\n\n**Q.** %s\n\n", orNumbered(it.Title, "질문", i), it.Question)
		if it.Answer != "" {
			fmt.Fprintf(&b, "**A.** %s\n\n", it.Answer)
		}
	}

	if len(cs.Listening) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", sectionListening)
		writeItems(&b, cs.Listening, "")
	}

	fmt.Fprintf(&b, "## %s\n\n", sectionMyQuestions)
	if len(cs.MyQuestions) == 0 {
		b.WriteString("생성된 질문이 없습니다.\n\n")
	}
	writeItems(&b, cs.MyQuestions, "내 질문")

	fmt.Fprintf(&b, "## %s\n\n", sectionPrecautions)
	if len(cs.Precautions) == 0 {
		b.WriteString("생성된 주의사항이 없습니다.\n\n")
	}
	writeItems(&b, cs.Precautions, "주의사항")

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeItems(b *strings.Builder, items []api.TextItem, prefix string) {
	for i, it := range items {
		switch {
		case it.Title != "":
			fmt.Fprintf(b, "### %s\n\n%s\n\n", it.Title, it.Text)
		case prefix != "":
			fmt.Fprintf(b, "### %s\n\n%s\n\n", orNumbered("", prefix, i), it.Text)
		default:
			fmt.Fprintf(b, "- %s\n", it.Text)
			if i == len(items)-1 {
				b.WriteString("\n")
			}
		}
	}
}

func orNumbered(title, prefix string, i int) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf("%s %d", prefix, i+1)
}

// Render renders markdown for a terminal of the given width. style is a
// glamour style name ("dark", "light", "notty"); "" detects it from the
// terminal.
func Render(md string, width int, style string) (string, error) {
	if width < 20 {
		width = 20
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render cheatsheet: %w", err)
	}
	return out, nil
}
