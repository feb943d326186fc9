package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/syntax"
)

// Compiler builds dialogue documents from source text.
type Compiler struct {
	logger *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used to report skipped lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Compiler. Without WithLogger, warnings are only returned, not logged.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// state is the parse context threaded through one compilation.
type state struct {
	question *domain.Question
	response *response
}

// response is an answer statement waiting for its conversation end.
type response struct {
	line      int
	header    syntax.Header
	qid       int
	dialogues []*domain.Dialogue
}

// assembly accumulates the output of one compilation.
type assembly struct {
	logger   *slog.Logger
	doc      domain.Document
	warnings []domain.Diagnostic
}

// Compile compiles source into a document. It never fails: lines that do not
// match their form are skipped and reported as warnings.
func (c *Compiler) Compile(source string) *domain.Compilation {
	src := syntax.Split(source)
	out := &assembly{
		logger:   c.logger,
		doc:      domain.Document{},
		warnings: []domain.Diagnostic{},
	}

	var st state
	for _, line := range src.Lines {
		st = step(st, line, out)
	}
	if st.response != nil {
		out.warn(st.response.line, 1, domain.DiagContext,
			fmt.Sprintf("Conversation for qid %d is never closed and was discarded", st.response.qid))
	}

	c.logger.Debug("compiled script",
		"lines", len(src.Lines),
		"nodes", len(out.doc),
		"warnings", len(out.warnings),
	)
	return &domain.Compilation{Document: out.doc, Warnings: out.warnings}
}

// step applies one line to the parse context and returns the updated context.
func step(st state, line syntax.Line, out *assembly) state {
	form := syntax.Classify(line.Text)
	switch form {
	case syntax.FormOption:
		return option(st, line, out)
	case syntax.FormUnknown, syntax.FormParameter:
		out.logger.Debug("skipping line", "line", line.Number, "form", form.String())
		return st
	}

	// Any other statement ends the option list of the open question.
	st.question = nil

	switch form {
	case syntax.FormStatement:
		return statement(st, line, out)
	case syntax.FormAnswer:
		return answer(st, line, out)
	case syntax.FormConversation:
		return conversation(st, line, out)
	case syntax.FormConversationEnd:
		return conversationEnd(st, line, out)
	}
	return st
}

func statement(st state, line syntax.Line, out *assembly) state {
	s, err := syntax.ParseStatement(line.Text)
	if err != nil {
		out.skip(line, err)
		return st
	}
	header := statementOf(s)
	switch kind := domain.KindForUIType(s.Header.UIType.Value); kind {
	case domain.KindQuestion:
		q := &domain.Question{Statement: header, Options: []domain.Option{}}
		out.doc = append(out.doc, q)
		st.question = q
	case domain.KindAnswer:
		out.doc = append(out.doc, &domain.Answer{Statement: header, Responses: []domain.ResponseBlock{}})
	default:
		out.doc = append(out.doc, &domain.Dialogue{Statement: header, Type: kind})
	}
	return st
}

func option(st state, line syntax.Line, out *assembly) state {
	if st.question == nil {
		out.warn(line.Number, 1, domain.DiagContext, "Question option without an open question")
		return st
	}
	s, err := syntax.ParseOption(line.Text)
	if err != nil {
		out.skip(line, err)
		return st
	}
	st.question.Options = append(st.question.Options, domain.Option{
		ID:        s.Number,
		UIType:    s.Header.UIType.Value,
		DataTag:   s.Header.DataTag.Value,
		VoiceType: s.Header.VoiceType.Value,
		Speaker:   s.Header.Speaker.Value,
		Target:    s.Target.Value,
		Content:   s.Content,
		Metadata:  s.Metadata,
	})
	return st
}

func answer(st state, line syntax.Line, out *assembly) state {
	s, err := syntax.ParseAnswer(line.Text)
	if err != nil {
		out.skip(line, err)
		return st
	}
	if st.response != nil {
		out.warn(line.Number, 1, domain.DiagContext,
			fmt.Sprintf("Answer statement replaces the conversation opened at line %d, which was never closed", st.response.line))
	}
	st.response = &response{
		line:      line.Number,
		header:    s.Header,
		qid:       s.Number,
		dialogues: []*domain.Dialogue{},
	}
	return st
}

func conversation(st state, line syntax.Line, out *assembly) state {
	if st.response == nil {
		out.warn(line.Number, 1, domain.DiagContext, "Conversation dialogue without an open answer")
		return st
	}
	s, err := syntax.ParseConversation(line.Text)
	if err != nil {
		out.skip(line, err)
		return st
	}
	st.response.dialogues = append(st.response.dialogues, &domain.Dialogue{
		Statement: statementOf(s),
		Type:      domain.KindDialogue,
	})
	return st
}

func conversationEnd(st state, line syntax.Line, out *assembly) state {
	if _, err := syntax.ParseConversationEnd(line.Text); err != nil {
		out.skip(line, err)
		return st
	}
	r := st.response
	if r == nil {
		out.logger.Debug("conversation end without open answer", "line", line.Number)
		return st
	}
	out.doc = append(out.doc, &domain.Answer{
		Statement: domain.Statement{
			UIType:    domain.UIAnswer,
			DataTag:   domain.AnswerDataTag,
			VoiceType: domain.VoiceDefault,
			Speaker:   domain.AnswerSpeaker,
			Metadata: domain.NewMetadata(
				domain.MetaQID, strconv.Itoa(r.qid),
				domain.MetaDataTag, r.header.DataTag.Value,
				domain.MetaVoiceType, r.header.VoiceType.Value,
				domain.MetaSpeaker, r.header.Speaker.Value,
			),
		},
		Responses: []domain.ResponseBlock{{QID: r.qid, Dialogues: r.dialogues}},
	})
	st.response = nil
	return st
}

func statementOf(s *syntax.Statement) domain.Statement {
	return domain.Statement{
		UIType:    s.Header.UIType.Value,
		DataTag:   s.Header.DataTag.Value,
		VoiceType: s.Header.VoiceType.Value,
		Speaker:   s.Header.Speaker.Value,
		Content:   s.Content,
		Metadata:  s.Metadata,
	}
}

// skip records a line dropped because extraction failed.
func (a *assembly) skip(line syntax.Line, err error) {
	column := 1
	var synErr *syntax.Error
	if errors.As(err, &synErr) {
		column = synErr.Column
	}
	a.warn(line.Number, column, domain.DiagPattern, err.Error())
}

func (a *assembly) warn(line, column int, kind domain.DiagnosticKind, msg string) {
	a.logger.Warn(msg, "line", line, "column", column, "kind", string(kind))
	a.warnings = append(a.warnings, domain.Diagnostic{
		Line:     line,
		Column:   column,
		Message:  msg,
		Severity: domain.SeverityWarning,
		Kind:     kind,
	})
}
