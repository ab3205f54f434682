// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package prompt builds the instruction text sent to the model ahead of the
// subtitles being translated.
package prompt

import "fmt"

// DefaultLanguage is the target language when none is configured.
const DefaultLanguage = "Vietnamese"

// baseTemplate holds the formatting rules that apply to every request
const baseTemplate = `Translate the subtitles in this file into %s with the following requirements: 
Maintain the original format, including sequence numbers, timestamps, and the number of lines.
Preserve the capitalization exactly as in the original text for languages that distinguish between uppercase and lowercase letters (e.g., English).
For languages that do not distinguish between uppercase and lowercase letters (e.g., Chinese):
Detect proper nouns (e.g., names of people, places, or organizations) and convert them to standard pinyin. Ensure the first letter of each word in pinyin is capitalized.
Use standard pinyin rules: No diacritics (e.g., "Song Chengli" instead of "sòng chénglǐ").
Retain other parts of the sentence in lowercase and capitalize only the first letter of the sentence.
Keep the original Chinese characters when applicable, without any modification.
Do not merge content from different timestamps into a single translation block.
Retain all punctuation, special characters, and line breaks from the original content to preserve the original flow and structure of the subtitles.
Return only the translated content in the specified format, without any additional explanations, introductions, or questions.
`

// toneTemplate is used when the caller doesn't bring their own style instructions
const toneTemplate = `Ensure translations are accurate and match the context, culture, and situations in the movie. Use natural and conversational %[1]s that reflects the tone and emotion of the original dialogue.
Avoid literal translations that sound unnatural in %[1]s. Adjust word choices and sentence structures to make the translation feel fluent and emotionally aligned with the movie's tone.
`

// Builder renders prompts for a fixed target language. The zero value
// targets DefaultLanguage.
type Builder struct {
	Language string
}

// New returns a Builder for language, falling back to DefaultLanguage.
func New(language string) Builder {
	return Builder{Language: language}
}

func (b Builder) language() string {
	if b.Language == "" {
		return DefaultLanguage
	}
	return b.Language
}

// Base returns the rule block every prompt starts with.
func (b Builder) Base() string {
	return fmt.Sprintf(baseTemplate, b.language())
}

// DefaultTone returns the style block used when no custom prompt is given.
func (b Builder) DefaultTone() string {
	return fmt.Sprintf(toneTemplate, b.language())
}

// Build concatenates the rule block, the tone block (or customPrompt in its
// place) and content. content always comes last and is never altered.
func (b Builder) Build(content, customPrompt string) string {
	tone := customPrompt
	if tone == "" {
		tone = b.DefaultTone()
	}
	return b.Base() + tone + content
}
