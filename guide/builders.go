package guide

import (
	"strconv"
	"strings"

	"github.com/birmacher/prompt-guide/logger"
	"github.com/birmacher/prompt-guide/prompt"
)

type builder func(input string, params map[string]string) string

var builders = map[string]builder{
	"summarize-delimited": func(input string, _ map[string]string) string {
		return prompt.SummarizeSentence(input)
	},
	"structured-output": func(input string, params map[string]string) string {
		return prompt.StructuredOutput(input, list(params["keys"]))
	},
	"condition-check-steps": func(input string, _ map[string]string) string {
		return prompt.ConditionCheck(input)
	},
	"condition-check-no-steps": func(input string, _ map[string]string) string {
		return prompt.ConditionCheck(input)
	},
	"few-shot": func(input string, params map[string]string) string {
		return prompt.FewShot(params["instruction"],
			prompt.Speakers{Input: params["input_speaker"], Output: params["output_speaker"]},
			[]prompt.Shot{{Input: params["shot_input"], Output: params["shot_output"]}},
			input)
	},
	"specify-steps": func(input string, _ map[string]string) string {
		return prompt.Steps(
			[]string{
				"Summarize the following text delimited by <> with 1 sentence.",
				"Translate the summary into French.",
				"List each name in the French summary.",
				"Output a json object that contains the following keys: french_summary, num_names.",
			},
			[]string{
				"Text: <text to summarize>",
				"Summary: <summary>",
				"Translation: <summary translation>",
				"Names: <list of names in summary>",
				"Output JSON: <json with summary and num_names>",
			},
			input, prompt.AngleBrackets)
	},
	"work-out-first": func(input string, params map[string]string) string {
		return prompt.WorkOutFirst(input, params["student_solution"])
	},
	"product-description": func(input string, params map[string]string) string {
		return prompt.ProductDescription(input, params["audience"], number(params, "max_words"))
	},
	"summarize-review": func(input string, params map[string]string) string {
		return prompt.Summarize(input, summarizeOptions(params, false))
	},
	"extract-review": func(input string, params map[string]string) string {
		return prompt.Summarize(input, summarizeOptions(params, true))
	},
	"sentiment": func(input string, _ map[string]string) string {
		return prompt.Sentiment(input)
	},
	"emotions": func(input string, _ map[string]string) string {
		return prompt.Emotions(input)
	},
	"review-facts": func(input string, _ map[string]string) string {
		return prompt.ReviewFacts(input)
	},
	"infer-topics": func(input string, params map[string]string) string {
		return prompt.InferTopics(input, number(params, "count"))
	},
	"topic-presence": func(input string, params map[string]string) string {
		return prompt.TopicPresence(input, list(params["topics"]))
	},
	"translate": func(input string, params map[string]string) string {
		return prompt.Translate(input, params["language"])
	},
	"detect-language": func(input string, _ map[string]string) string {
		return prompt.DetectLanguage(input)
	},
	"tone-transform": func(input string, params map[string]string) string {
		return prompt.ToneTransform(input, params["from"], params["to"])
	},
	"format-convert": func(input string, params map[string]string) string {
		return prompt.FormatConvert(input, params["from"], params["to"])
	},
	"proofread": func(input string, _ map[string]string) string {
		return prompt.ProofRead(input)
	},
	"reply-to-review": func(input string, params map[string]string) string {
		return prompt.ReplyToReview(input, params["sentiment"])
	},
}

func summarizeOptions(params map[string]string, extract bool) prompt.SummarizeOptions {
	return prompt.SummarizeOptions{
		Subject:  params["subject"],
		Audience: params["audience"],
		Focus:    params["focus"],
		MaxWords: number(params, "max_words"),
		Extract:  extract,
	}
}

// list splits a comma separated parameter, dropping blanks
func list(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// number reads an integer parameter, zero when missing or malformed
func number(params map[string]string, key string) int {
	value, ok := params[key]
	if !ok || value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warnf("Ignoring parameter %s: %q is not a number", key, value)
		return 0
	}
	return n
}
