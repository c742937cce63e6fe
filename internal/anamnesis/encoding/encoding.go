// Package encoding maps UI-facing answer values to the representation stored
// by the remote backend and back.
//
// Decoding never fails: garbled backend data degrades to "no answer" so that
// progress computation keeps working.
package encoding

import (
	"math"
	"strconv"
	"strings"

	"anamnesis/internal/anamnesis/catalog"
	"anamnesis/internal/anamnesis/models"
	dErrors "anamnesis/pkg/domain-errors"
)

// SymptomLevel is the 5-point ordinal used by body questions.
type SymptomLevel string

const (
	LevelSem      SymptomLevel = "sem"
	LevelLeve     SymptomLevel = "leve"
	LevelModerado SymptomLevel = "moderado"
	LevelGrave    SymptomLevel = "grave"
	LevelPlena    SymptomLevel = "plena"
)

// Levels lists the symptom levels in ascending order.
var Levels = []SymptomLevel{LevelSem, LevelLeve, LevelModerado, LevelGrave, LevelPlena}

var ordinals = map[SymptomLevel]int{
	LevelSem:      0,
	LevelLeve:     1,
	LevelModerado: 2,
	LevelGrave:    3,
	LevelPlena:    4,
}

var byOrdinal = map[int]SymptomLevel{
	0: LevelSem,
	1: LevelLeve,
	2: LevelModerado,
	3: LevelGrave,
	4: LevelPlena,
}

// aliases resolves option keys used by older questionnaire versions.
var aliases = map[string]SymptomLevel{
	"none":      LevelSem,
	"low":       LevelLeve,
	"medium":    LevelModerado,
	"high":      LevelGrave,
	"very_high": LevelPlena,

	"sem":      LevelSem,
	"leve":     LevelLeve,
	"moderado": LevelModerado,
	"grave":    LevelGrave,
	"plena":    LevelPlena,

	"0": LevelSem,
	"1": LevelLeve,
	"2": LevelModerado,
	"3": LevelGrave,
	"4": LevelPlena,
}

// Ordinal returns the position of the level on the scale, or -1.
func (l SymptomLevel) Ordinal() int {
	if n, ok := ordinals[l]; ok {
		return n
	}
	return -1
}

func (l SymptomLevel) String() string {
	return string(l)
}

// ParseSymptomLevel validates a level name sent by a client.
func ParseSymptomLevel(s string) (SymptomLevel, error) {
	level := SymptomLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ordinals[level]; !ok {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid symptom level: "+s)
	}
	return level, nil
}

// EncodeSymptomLevel renders a level as the answerText stored remotely.
// Unknown levels render as an empty string, which decodes to no answer.
func EncodeSymptomLevel(level SymptomLevel) string {
	n, ok := ordinals[level]
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}

// DecodeAnswer resolves a stored body answer. answerText is tried first as an
// ordinal, then the option key through the alias table, then the option key's
// integer form through the alias table.
func DecodeAnswer(answerText *string, answerOptionKey *string) (SymptomLevel, bool) {
	if answerText != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(*answerText)); err == nil {
			if level, ok := byOrdinal[n]; ok {
				return level, true
			}
		}
	}
	if answerOptionKey == nil {
		return "", false
	}
	key := normalizeKey(*answerOptionKey)
	if level, ok := aliases[key]; ok {
		return level, true
	}
	if numeric, ok := canonicalNumber(key); ok {
		if level, ok := aliases[numeric]; ok {
			return level, true
		}
	}
	return "", false
}

// EncodeSingleChoice is a passthrough for opaque option keys.
func EncodeSingleChoice(key string) string {
	return key
}

// DecodeSingleChoice returns the stored key; an absent or blank key is no
// answer.
func DecodeSingleChoice(key *string) (string, bool) {
	if key == nil || strings.TrimSpace(*key) == "" {
		return "", false
	}
	return *key, true
}

// DecodeForSection resolves an answer with the encoding of its section. The
// answer's option id is mapped to the option key through the question. The
// returned value is a level name or an option key.
func DecodeForSection(section catalog.Section, question models.Question, answer *models.UserAnswer) (string, bool) {
	if answer == nil {
		return "", false
	}
	var optionKey *string
	if answer.AnswerOptionID != nil {
		if opt, ok := question.OptionByID(*answer.AnswerOptionID); ok {
			optionKey = &opt.Key
		}
	}

	switch section.Encoding {
	case catalog.EncodingSymptomScale:
		level, ok := DecodeAnswer(answer.AnswerText, optionKey)
		return string(level), ok
	default:
		if key, ok := DecodeSingleChoice(optionKey); ok {
			return key, true
		}
		if answer.AnswerText != nil {
			if opt, ok := question.OptionByKey(*answer.AnswerText); ok {
				return DecodeSingleChoice(&opt.Key)
			}
		}
		return "", false
	}
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer("-", "_", " ", "_").Replace(key)
}

// canonicalNumber renders numeric keys such as "2.0" or "02" as "2".
func canonicalNumber(key string) (string, bool) {
	f, err := strconv.ParseFloat(key, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return "", false
	}
	return strconv.FormatInt(int64(f), 10), true
}
