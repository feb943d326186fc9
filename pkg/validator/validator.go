package validator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/syntax"
)

// Validator lints TimeScript source and reports diagnostics.
// It never stops at the first problem: every line is checked.
type Validator struct {
	cfg        Config
	uiTypes    map[string]bool
	voiceTypes map[string]bool
	logger     *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithConfig replaces the default value checks. Empty type lists fall back to the defaults.
func WithConfig(cfg Config) Option {
	return func(v *Validator) {
		v.cfg = cfg
	}
}

// WithLogger sets the logger used for the per-run summary.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates a Validator with DefaultConfig unless WithConfig is given.
func New(opts ...Option) *Validator {
	v := &Validator{
		cfg:    DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	if len(v.cfg.UITypes) == 0 {
		v.cfg.UITypes = domain.DefaultUITypes()
	}
	if len(v.cfg.VoiceTypes) == 0 {
		v.cfg.VoiceTypes = domain.DefaultVoiceTypes()
	}
	v.uiTypes = setOf(v.cfg.UITypes)
	v.voiceTypes = setOf(v.cfg.VoiceTypes)
	return v
}

// Config returns the checks in effect.
func (v *Validator) Config() Config { return v.cfg }

// run is the per-call state of one validation.
type run struct {
	diags        []domain.Diagnostic
	questionOpen bool
	responseLine int // line of the open answer statement, 0 when none
	opened       int
	closed       int
	openBraces   int
	closeBraces  int
}

// Validate checks source and returns its diagnostics: per-line findings in
// line order, then document-level findings.
func (v *Validator) Validate(source string) []domain.Diagnostic {
	src := syntax.Split(source)
	r := &run{diags: []domain.Diagnostic{}}

	for _, line := range src.Lines {
		v.line(r, line)
	}

	if r.opened != r.closed {
		r.add(1, 1, domain.SeverityError, domain.DiagStructure,
			fmt.Sprintf("Mismatched conversation blocks: %d opened, %d closed", r.opened, r.closed))
	}
	if r.openBraces != r.closeBraces {
		r.add(1, 1, domain.SeverityWarning, domain.DiagStructure,
			fmt.Sprintf("Unbalanced braces: %d '{' and %d '}'", r.openBraces, r.closeBraces))
	}
	if src.OpenComment > 0 {
		r.add(src.OpenComment, 1, domain.SeverityWarning, domain.DiagStructure, "Unterminated block comment")
	}

	v.logger.Debug("validated script",
		"lines", len(src.Lines),
		"errors", domain.CountSeverity(r.diags, domain.SeverityError),
		"warnings", domain.CountSeverity(r.diags, domain.SeverityWarning),
	)
	return r.diags
}

func (v *Validator) line(r *run, line syntax.Line) {
	form := syntax.Classify(line.Text)
	if form == syntax.FormUnknown {
		return
	}
	r.openBraces += strings.Count(line.Text, "{")
	r.closeBraces += strings.Count(line.Text, "}")

	// Parameter definitions sit outside the statement flow.
	if form != syntax.FormOption && form != syntax.FormParameter {
		r.questionOpen = false
	}

	switch form {
	case syntax.FormStatement:
		s, err := syntax.ParseStatement(line.Text)
		if !v.spoken(r, line, form, s, err) {
			return
		}
		if s.Header.UIType.Value == domain.UIQuestion {
			r.questionOpen = true
		}
	case syntax.FormOption:
		if !r.questionOpen {
			r.add(line.Number, 1, domain.SeverityError, domain.DiagContext, "Question option without an open question")
			return
		}
		s, err := syntax.ParseOption(line.Text)
		if !v.spoken(r, line, form, s, err) {
			return
		}
		if errors.Is(err, syntax.ErrNumberRange) || !v.cfg.OptionID.Contains(s.Number) {
			r.add(line.Number, s.NumberField.Column, domain.SeverityError, domain.DiagField,
				"Option ID must be "+v.cfg.OptionID.describe())
		}
	case syntax.FormConversation:
		if r.responseLine == 0 {
			r.add(line.Number, 1, domain.SeverityWarning, domain.DiagContext, "Conversation dialogue without an open answer")
		}
		s, err := syntax.ParseConversation(line.Text)
		v.spoken(r, line, form, s, err)
	case syntax.FormAnswer:
		v.answer(r, line)
	case syntax.FormConversationEnd:
		if _, err := syntax.ParseConversationEnd(line.Text); err != nil {
			r.mismatch(line, syntax.FormConversationEnd, err)
			return
		}
		if r.responseLine == 0 {
			r.add(line.Number, 1, domain.SeverityWarning, domain.DiagContext, "Conversation end without an open answer")
		}
		r.closed++
		r.responseLine = 0
	case syntax.FormParameter:
		if !strings.Contains(line.Text, syntax.ParamColon) || !strings.Contains(line.Text, syntax.ParamSemicolon) {
			r.add(line.Number, 1, domain.SeverityError, domain.DiagPattern, "Invalid parameter definition format")
		}
	}
}

// spoken runs the checks shared by forms ending in "~: content". It reports
// false when the fixed part of the form did not match.
func (v *Validator) spoken(r *run, line syntax.Line, form syntax.Form, s *syntax.Statement, err error) bool {
	if s == nil {
		r.mismatch(line, form, err)
		return false
	}
	if !v.uiTypes[s.Header.UIType.Value] {
		r.add(line.Number, s.Header.UIType.Column, domain.SeverityError, domain.DiagField,
			"Invalid UI type: "+s.Header.UIType.Value)
	}
	v.checkVoice(r, line, s.Header)
	if errors.Is(err, syntax.ErrMissingContent) {
		var synErr *syntax.Error
		column := 1
		if errors.As(err, &synErr) {
			column = synErr.Column
		}
		r.add(line.Number, column, domain.SeverityError, domain.DiagPattern, "Missing dialogue content")
	}
	checkBraces(r, line)
	return true
}

func (v *Validator) answer(r *run, line syntax.Line) {
	s, err := syntax.ParseAnswer(line.Text)
	if s == nil {
		r.mismatch(line, syntax.FormAnswer, err)
		return
	}
	v.checkVoice(r, line, s.Header)
	if errors.Is(err, syntax.ErrNumberRange) || !v.cfg.QID.Contains(s.Number) {
		r.add(line.Number, s.NumberField.Column, domain.SeverityError, domain.DiagField,
			"QID must be "+v.cfg.QID.describe())
	}
	if r.responseLine != 0 {
		r.add(line.Number, 1, domain.SeverityWarning, domain.DiagContext,
			fmt.Sprintf("Answer statement opened while the conversation from line %d is still open", r.responseLine))
	}
	r.opened++
	r.responseLine = line.Number
}

func (v *Validator) checkVoice(r *run, line syntax.Line, h syntax.Header) {
	if !v.voiceTypes[h.VoiceType.Value] {
		r.add(line.Number, h.VoiceType.Column, domain.SeverityError, domain.DiagField,
			"Invalid voice type: "+h.VoiceType.Value)
	}
}

// checkBraces flags a data block opened but never closed on its line.
func checkBraces(r *run, line syntax.Line) {
	if strings.Contains(line.Text, "{") && !strings.Contains(line.Text, "}") {
		end := utf8.RuneCountInString(strings.TrimRight(line.Text, " \t"))
		r.add(line.Number, end, domain.SeverityError, domain.DiagField, "Missing closing brace in data block")
	}
}

func (r *run) mismatch(line syntax.Line, form syntax.Form, err error) {
	msg := fmt.Sprintf("Invalid %s format", form)
	var synErr *syntax.Error
	if errors.As(err, &synErr) {
		msg += ": " + synErr.Reason
	}
	r.add(line.Number, 1, domain.SeverityError, domain.DiagPattern, msg)
}

func (r *run) add(line, column int, sev domain.Severity, kind domain.DiagnosticKind, msg string) {
	r.diags = append(r.diags, domain.Diagnostic{
		Line:     line,
		Column:   column,
		Message:  msg,
		Severity: sev,
		Kind:     kind,
	})
}

func setOf(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
