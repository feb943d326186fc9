package domain

// NodeKind is the discriminator carried by every compiled node.
type NodeKind string

const (
	KindDialogue     NodeKind = "dialogue"
	KindQuestion     NodeKind = "question"
	KindAnswer       NodeKind = "answer"
	KindConversation NodeKind = "conversation"
	KindTitle        NodeKind = "title"
	KindSubtitle     NodeKind = "subtitle"
)

// UI type codes recognised by the grammar.
const (
	UITitle          = "T1"
	UISubtitle       = "ST1"
	UIDialogue       = "D1"
	UIQuestion       = "Q1"
	UIAnswerShort    = "A"
	UIAnswer         = "A1"
	UIAnswerDialogue = "AD1"
	UIMessage        = "M1"
)

// Voice type codes recognised by the grammar.
const (
	VoiceDefault = "Default"
	VoiceV1      = "V1"
	VoiceP1      = "P1"
	VoiceT1      = "T1"
)

// MetaQID is the metadata key under which an Answer records the question it resolves.
const MetaQID = "qid"

// Metadata keys holding the fields of the answer statement that opened a
// conversation. The Answer header itself is fixed, see AnswerHeader.
const (
	MetaDataTag   = "dataTag"
	MetaVoiceType = "voiceType"
	MetaSpeaker   = "speaker"
)

// Header fields of every synthesized Answer node.
const (
	AnswerDataTag = "A"
	AnswerSpeaker = "CONVERSATION"
)

// DefaultUITypes returns the uiType codes accepted by a default validator.
func DefaultUITypes() []string {
	return []string{UITitle, UISubtitle, UIDialogue, UIQuestion, UIAnswerShort, UIAnswer, UIAnswerDialogue, UIMessage}
}

// DefaultVoiceTypes returns the voiceType codes accepted by a default validator.
func DefaultVoiceTypes() []string {
	return []string{VoiceDefault, VoiceV1, VoiceP1, VoiceT1}
}

// KindForUIType maps a uiType code to the node kind it produces.
func KindForUIType(uiType string) NodeKind {
	switch uiType {
	case UITitle:
		return KindTitle
	case UISubtitle:
		return KindSubtitle
	case UIQuestion:
		return KindQuestion
	case UIAnswer:
		return KindAnswer
	default:
		return KindDialogue
	}
}
