package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/timescript/pkg/domain"
)

// Overlay marks branch labels on the chart.
type Overlay struct {
	// Missing lists option targets that no conversation end closes.
	Missing []string
}

// GenerateMermaid produces a Mermaid flowchart of a compiled document.
// Top-level nodes are chained in order with the following shapes:
// - Title/Subtitle: ([Stadium])
// - Question: [/Parallelogram/], with one edge per option to its target label
// - Answer: [[Subroutine]]
// - Default: [Rectangle]
// Target labels are drawn as ((Circles)) and shared between questions.
func GenerateMermaid(doc domain.Document, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	labels := make(map[string]bool)
	var order []string

	prev := ""
	for i, node := range doc {
		id := fmt.Sprintf("n%d", i)

		opener, closer := "[", "]"
		switch node.Kind() {
		case domain.KindTitle, domain.KindSubtitle:
			opener, closer = "([", "])"
		case domain.KindQuestion:
			opener, closer = "[/", "/]"
		case domain.KindAnswer:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, vertexLabel(node), closer))

		if prev != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", prev, id))
		}
		prev = id

		q, ok := node.(*domain.Question)
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			target := labelID(opt.Target)
			if !labels[opt.Target] {
				labels[opt.Target] = true
				order = append(order, opt.Target)
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%d: %s\" --> %s\n", id, opt.ID, escape(opt.Content), target))
		}
	}

	for _, label := range order {
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", labelID(label), escape(label)))
	}

	if overlay != nil && len(overlay.Missing) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		seen := make(map[string]bool)
		for _, label := range overlay.Missing {
			if labels[label] && !seen[label] {
				seen[label] = true
				sb.WriteString(fmt.Sprintf("    class %s missing;\n", labelID(label)))
			}
		}
	}

	return sb.String()
}

func vertexLabel(node domain.Node) string {
	h := node.Header()
	switch n := node.(type) {
	case *domain.Answer:
		qid, _ := n.Metadata.Get(domain.MetaQID)
		speaker, ok := n.Metadata.Get(domain.MetaSpeaker)
		if !ok {
			speaker = h.Speaker
		}
		return fmt.Sprintf("answer %s (%s)", qid, speaker)
	default:
		return fmt.Sprintf("%s: %s", h.Speaker, escape(truncate(h.Content, 40)))
	}
}

func labelID(label string) string {
	return "L_" + sanitizeMermaidID(label)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
