// Package validator lints TimeScript source.
//
// Unlike the compiler it keeps going after every problem and reports each
// one as a positioned domain.Diagnostic. Value checks (allowed uiType and
// voiceType codes, option id and qid ranges) come from a Config.
package validator
