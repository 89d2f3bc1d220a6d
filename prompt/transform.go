package prompt

import "fmt"

// Translate asks for text translated into language.
func Translate(text, language string) string {
	return fmt.Sprintf("Translate the following text to %s: ", language) + Fence(Backticks, text)
}

// DetectLanguage asks which language text is written in.
func DetectLanguage(text string) string {
	return "Tell me which language this is: " + Fence(Backticks, text)
}

// ToneTransform rewrites text from one register to another, e.g. slang to a business letter.
func ToneTransform(text, from, to string) string {
	return fmt.Sprintf("Translate the following from %s to %s: ", from, to) + Fence(Backticks, text)
}

// FormatConvert converts data between formats, e.g. JSON to an HTML table.
func FormatConvert(data, from, to string) string {
	return fmt.Sprintf("Translate the following data from %s to %s: ", from, to) + Fence(Backticks, data)
}

// ProofRead asks for a corrected version of text, or "No errors found".
func ProofRead(text string) string {
	return `Proofread and correct the following text and rewrite the corrected version. If you don't find any errors, just say "No errors found". Don't use any punctuation around the text: ` +
		Fence(Backticks, text)
}
