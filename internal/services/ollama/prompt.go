package ollama

import (
	"context"
	"fmt"
	"strings"
)

const correctionPromptTemplate = `You are a transcript correction assistant. Your task is to fix errors in speech-to-text transcription while preserving the original meaning.

Fix the following issues:
- Grammar and punctuation errors
- Obvious ASR mistakes (words that sound similar but are wrong)
- Missing punctuation and capitalization
- Run-on sentences (add proper breaks)

Do NOT:
- Change the meaning or content
- Add information not present in the original
- Translate to another language
- Add commentary or explanations

Return ONLY the corrected text, nothing else.

Text to correct:
%s`

const translationPromptTemplate = `You are a professional translator. Translate the following text to %[1]s.

Requirements:
- Maintain the original meaning and tone
- Preserve any technical terms or proper nouns appropriately
- Use natural, fluent %[1]s
- Do not add explanations or commentary

Return ONLY the translation, nothing else.

Text to translate:
%[2]s`

func correctionPrompt(text string) string {
	return fmt.Sprintf(correctionPromptTemplate, text)
}

func translationPrompt(language, text string) string {
	return fmt.Sprintf(translationPromptTemplate, language, text)
}

// Correct asks the model to fix grammar and transcription errors. The
// original text is returned when the model produces empty output.
func (c *Client) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	result, err := c.Generate(ctx, correctionPrompt(text), len(text)*2)
	if err != nil {
		return "", err
	}
	if result == "" {
		return text, nil
	}
	return result, nil
}

// Translate renders the text into the target language. The target is a
// human-readable language name, not an ISO code.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	result, err := c.Generate(ctx, translationPrompt(targetLanguage, text), len(text)*3)
	if err != nil {
		return "", err
	}
	if result == "" {
		return text, nil
	}
	return result, nil
}
