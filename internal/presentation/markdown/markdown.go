// Package markdown renders a compiled document as a readable screenplay.
package markdown

import (
	"fmt"
	"strings"

	"github.com/aretw0/timescript/pkg/domain"
)

// Render writes doc as Markdown, one paragraph per top-level node.
func Render(doc domain.Document) string {
	var sb strings.Builder
	for i, node := range doc {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeNode(&sb, node)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, node domain.Node) {
	switch n := node.(type) {
	case *domain.Question:
		fmt.Fprintf(sb, "%s asks: %s\n\n", speaker(n.Statement), n.Content)
		for _, opt := range n.Options {
			fmt.Fprintf(sb, "%d. %s → `%s`\n", opt.ID, opt.Content, opt.Target)
		}
	case *domain.Answer:
		qid, _ := n.Metadata.Get(domain.MetaQID)
		fmt.Fprintf(sb, "> _Answer to %s_\n", qid)
		for _, block := range n.Responses {
			for _, d := range block.Dialogues {
				fmt.Fprintf(sb, ">\n> %s: %s\n", speaker(d.Statement), d.Content)
			}
		}
	case *domain.Dialogue:
		switch n.Type {
		case domain.KindTitle:
			fmt.Fprintf(sb, "# %s\n", n.Content)
		case domain.KindSubtitle:
			fmt.Fprintf(sb, "## %s\n", n.Content)
		default:
			fmt.Fprintf(sb, "%s: %s\n", speaker(n.Statement), n.Content)
		}
	}
}

func speaker(st domain.Statement) string {
	if st.VoiceType == "" || st.VoiceType == domain.VoiceDefault {
		return fmt.Sprintf("**%s**", st.Speaker)
	}
	return fmt.Sprintf("**%s** _(%s)_", st.Speaker, st.VoiceType)
}
