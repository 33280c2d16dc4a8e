package summarizer

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

var styleInstructions = map[domain.Style]string{
	domain.StyleConcise: `Write a concise bullet-point digest of the lecture.
- One bullet per key idea, at most 12 bullets
- Keep each bullet to one line
- Put important terms in **bold**`,

	domain.StyleDetailed: `Write an exhaustive, explanatory summary of the lecture for a student who missed it.
- Start with a one-sentence overview of the topic
- Cover every topic in the order it was presented, using markdown headings
- Explain definitions, examples, formulas and warnings the lecturer gave
- Keep technical terms in their original language in parentheses
- End with a "Key takeaways" section`,

	domain.StyleNarrative: `Retell the lecture as a short narrative of two to four paragraphs.
- Flowing prose, no bullet points
- Follow the order in which ideas were introduced`,

	domain.StyleThematic: `Organize the lecture content into thematic sections.
- Group related points under a markdown heading per theme, regardless of when they were said
- Under each heading give a short paragraph and supporting bullets`,

	domain.StyleQA: `Turn the lecture into study questions with answers.
- Write 8 to 15 question and answer pairs covering the main material
- Format each pair as "**Q:** ..." on one line and "**A:** ..." on the next`,

	domain.StyleGlossary: `Build a glossary of the terms and concepts introduced in the lecture.
- One entry per term, sorted alphabetically
- Format: "**term**: definition as explained in the lecture"`,

	domain.StyleSteps: `Extract the lecture content as an ordered list of steps or procedures.
- Number every step
- Each step states the action and, briefly, why it matters`,

	domain.StyleTLDR: `Summarize the entire lecture in a single sentence (TL;DR).
- Output exactly one sentence, no headings, no bullet points`,
}

var languageDirectives = map[domain.Language]string{
	domain.LangHebrew:  "Write the entire answer in Hebrew (עברית).",
	domain.LangEnglish: "Write the entire answer in English.",
	domain.LangArabic:  "Write the entire answer in Arabic (العربية).",
	domain.LangFrench:  "Write the entire answer in French (français).",
	domain.LangRussian: "Write the entire answer in Russian (русский).",
}

const chunkPrompt = `You are an expert academic note-taker summarizing a recorded university lecture.

%s

%s

Lecture transcript (part %d of %d):
---
%s
---`

const combinePrompt = `You are an expert academic note-taker. The text below contains summaries of consecutive parts of one lecture, in order.
Merge them into a single coherent result. Remove repetition and keep the order of topics.

%s

%s

Partial summaries:
---
%s
---`

const audioPrompt = `You are an expert academic note-taker. The attached audio is a recorded university lecture.

%s

%s`

func instructions(opts domain.SummaryOptions) (string, string) {
	style, ok := styleInstructions[opts.Style]
	if !ok {
		style = styleInstructions[domain.StyleDetailed]
	}
	lang, ok := languageDirectives[opts.Language]
	if !ok {
		lang = languageDirectives[domain.LangHebrew]
	}
	return style, lang
}

func buildChunkPrompt(chunk domain.TranscriptChunk, total int, opts domain.SummaryOptions) string {
	style, lang := instructions(opts)
	return fmt.Sprintf(chunkPrompt, style, lang, chunk.Index+1, total, chunk.Text)
}

func buildCombinePrompt(partials []string, opts domain.SummaryOptions) string {
	style, lang := instructions(opts)
	return fmt.Sprintf(combinePrompt, style, lang, strings.Join(partials, "\n\n---\n\n"))
}

func buildAudioPrompt(opts domain.SummaryOptions) string {
	style, lang := instructions(opts)
	return fmt.Sprintf(audioPrompt, style, lang)
}
