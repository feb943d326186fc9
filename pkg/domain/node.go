package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Statement is the header shared by every compiled node.
type Statement struct {
	UIType    string
	DataTag   string
	VoiceType string
	Speaker   string
	Content   string
	Metadata  Metadata
}

// Node is a compiled top-level statement.
// It is implemented by *Dialogue, *Question and *Answer only.
type Node interface {
	Kind() NodeKind
	Header() *Statement
	isNode()
}

// Dialogue is a plain line of speech. Type is one of
// KindDialogue, KindTitle, KindSubtitle or KindConversation.
type Dialogue struct {
	Statement
	Type NodeKind
}

// Question is a prompt followed by its branch options.
type Question struct {
	Statement
	Options []Option
}

// Answer closes a conversation block answering a question.
type Answer struct {
	Statement
	Responses []ResponseBlock
}

// Option is one branch of a Question.
type Option struct {
	ID        int      `json:"id" yaml:"id"`
	UIType    string   `json:"uiType" yaml:"uiType"`
	DataTag   string   `json:"dataTag" yaml:"dataTag"`
	VoiceType string   `json:"voiceType" yaml:"voiceType"`
	Speaker   string   `json:"speaker" yaml:"speaker"`
	Target    string   `json:"target" yaml:"target"`
	Content   string   `json:"content" yaml:"content"`
	Metadata  Metadata `json:"metadata,omitzero" yaml:"metadata,omitempty"`
}

// ResponseBlock is the conversation body spoken in reply to question QID.
type ResponseBlock struct {
	QID       int         `json:"qid" yaml:"qid"`
	Dialogues []*Dialogue `json:"dialogues" yaml:"dialogues"`
}

func (d *Dialogue) Kind() NodeKind     { return d.Type }
func (d *Dialogue) Header() *Statement { return &d.Statement }
func (*Dialogue) isNode()              {}

func (q *Question) Kind() NodeKind     { return KindQuestion }
func (q *Question) Header() *Statement { return &q.Statement }
func (*Question) isNode()              {}

func (a *Answer) Kind() NodeKind     { return KindAnswer }
func (a *Answer) Header() *Statement { return &a.Statement }
func (*Answer) isNode()              {}

// IsZero reports whether the mapping is empty.
func (m Metadata) IsZero() bool { return len(m.keys) == 0 }

// nodeWire is the serialised shape of every node variant.
type nodeWire struct {
	Type      NodeKind         `json:"type" yaml:"type"`
	UIType    string           `json:"uiType" yaml:"uiType"`
	DataTag   string           `json:"dataTag" yaml:"dataTag"`
	VoiceType string           `json:"voiceType" yaml:"voiceType"`
	Speaker   string           `json:"speaker" yaml:"speaker"`
	Content   string           `json:"content" yaml:"content"`
	Metadata  Metadata         `json:"metadata" yaml:"metadata"`
	Options   *[]Option        `json:"options,omitempty" yaml:"options,omitempty"`
	Responses *[]ResponseBlock `json:"responses,omitempty" yaml:"responses,omitempty"`
}

func wireOf(kind NodeKind, st Statement) nodeWire {
	return nodeWire{
		Type:      kind,
		UIType:    st.UIType,
		DataTag:   st.DataTag,
		VoiceType: st.VoiceType,
		Speaker:   st.Speaker,
		Content:   st.Content,
		Metadata:  st.Metadata,
	}
}

func (w nodeWire) statement() Statement {
	return Statement{
		UIType:    w.UIType,
		DataTag:   w.DataTag,
		VoiceType: w.VoiceType,
		Speaker:   w.Speaker,
		Content:   w.Content,
		Metadata:  w.Metadata,
	}
}

func (d *Dialogue) wire() nodeWire { return wireOf(d.Type, d.Statement) }

func (q *Question) wire() nodeWire {
	w := wireOf(KindQuestion, q.Statement)
	opts := q.Options
	if opts == nil {
		opts = []Option{}
	}
	w.Options = &opts
	return w
}

func (a *Answer) wire() nodeWire {
	w := wireOf(KindAnswer, a.Statement)
	resp := a.Responses
	if resp == nil {
		resp = []ResponseBlock{}
	}
	w.Responses = &resp
	return w
}

func (d *Dialogue) MarshalJSON() ([]byte, error) { return json.Marshal(d.wire()) }
func (q *Question) MarshalJSON() ([]byte, error) { return json.Marshal(q.wire()) }
func (a *Answer) MarshalJSON() ([]byte, error)   { return json.Marshal(a.wire()) }

func (d *Dialogue) MarshalYAML() (interface{}, error) { return d.wire(), nil }
func (q *Question) MarshalYAML() (interface{}, error) { return q.wire(), nil }
func (a *Answer) MarshalYAML() (interface{}, error)   { return a.wire(), nil }

// UnmarshalJSON decodes a dialogue-kind node.
func (d *Dialogue) UnmarshalJSON(data []byte) error {
	var w nodeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n, err := w.node()
	if err != nil {
		return err
	}
	dl, ok := n.(*Dialogue)
	if !ok {
		return fmt.Errorf("expected a dialogue node, got %q", w.Type)
	}
	*d = *dl
	return nil
}

// UnmarshalYAML decodes a dialogue-kind node.
func (d *Dialogue) UnmarshalYAML(value *yaml.Node) error {
	var w nodeWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	n, err := w.node()
	if err != nil {
		return err
	}
	dl, ok := n.(*Dialogue)
	if !ok {
		return fmt.Errorf("expected a dialogue node, got %q", w.Type)
	}
	*d = *dl
	return nil
}

func (w nodeWire) node() (Node, error) {
	switch w.Type {
	case KindDialogue, KindTitle, KindSubtitle, KindConversation:
		return &Dialogue{Statement: w.statement(), Type: w.Type}, nil
	case KindQuestion:
		q := &Question{Statement: w.statement(), Options: []Option{}}
		if w.Options != nil {
			q.Options = *w.Options
		}
		return q, nil
	case KindAnswer:
		a := &Answer{Statement: w.statement(), Responses: []ResponseBlock{}}
		if w.Responses != nil {
			a.Responses = *w.Responses
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown node type %q", w.Type)
	}
}

// Document is the ordered top-level output of a compilation.
type Document []Node

// Count returns how many top-level nodes have the given kind.
func (doc Document) Count(kind NodeKind) int {
	n := 0
	for _, node := range doc {
		if node.Kind() == kind {
			n++
		}
	}
	return n
}

// Questions returns the question nodes in encounter order.
func (doc Document) Questions() []*Question {
	var out []*Question
	for _, node := range doc {
		if q, ok := node.(*Question); ok {
			out = append(out, q)
		}
	}
	return out
}

// MarshalJSON always writes an array, never null.
func (doc Document) MarshalJSON() ([]byte, error) {
	if doc == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Node(doc))
}

// UnmarshalJSON decodes each element by its "type" discriminator.
func (doc *Document) UnmarshalJSON(data []byte) error {
	var wires []nodeWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return err
	}
	return doc.fromWires(wires)
}

// UnmarshalYAML decodes each element by its "type" discriminator.
func (doc *Document) UnmarshalYAML(value *yaml.Node) error {
	var wires []nodeWire
	if err := value.Decode(&wires); err != nil {
		return err
	}
	return doc.fromWires(wires)
}

func (doc *Document) fromWires(wires []nodeWire) error {
	out := make(Document, 0, len(wires))
	for i, w := range wires {
		n, err := w.node()
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		out = append(out, n)
	}
	*doc = out
	return nil
}
