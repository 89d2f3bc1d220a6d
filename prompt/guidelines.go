package prompt

import (
	"fmt"
	"strings"
)

// SummarizeSentence asks for a one-sentence summary of text fenced in backticks.
func SummarizeSentence(text string) string {
	return "Summarize the text delimited by triple backticks into a single sentence.\n" +
		Fence(Backticks, text)
}

// StructuredOutput appends a request for JSON output with the given keys to task.
func StructuredOutput(task string, keys []string) string {
	return strings.TrimSpace(task) + "\nProvide them in JSON format with the following keys: " +
		strings.Join(keys, ", ") + "."
}

// ConditionCheck asks the model to check whether text holds a sequence of
// instructions before rewriting it, with an explicit answer for when it doesn't.
func ConditionCheck(text string) string {
	return `You will be provided with text delimited by triple quotes.
If it contains a sequence of instructions, re-write those instructions in the following format:

Step 1 - ...
Step 2 - ...
...
Step N - ...

If the text does not contain a sequence of instructions, then simply write "No steps provided."

` + Fence(Quotes, text)
}

// Shot is one worked example of a few-shot prompt.
type Shot struct {
	Input  string
	Output string
}

// Speakers names the two sides of a few-shot conversation, e.g. child and grandparent.
type Speakers struct {
	Input  string
	Output string
}

// FewShot shows the model the given exchanges before asking query, leaving
// the answer for the model to complete in the same style.
func FewShot(instruction string, speakers Speakers, shots []Shot, query string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\n")
	for _, shot := range shots {
		fmt.Fprintf(&b, "<%s>: %s\n\n", speakers.Input, shot.Input)
		fmt.Fprintf(&b, "<%s>: %s\n\n", speakers.Output, shot.Output)
	}
	fmt.Fprintf(&b, "<%s>: %s", speakers.Input, query)
	return b.String()
}

// Steps spells out the steps of a task and the format of the answer, then
// appends text inside d.
func Steps(steps []string, format []string, text string, d Delimiter) string {
	var b strings.Builder
	b.WriteString("Your task is to perform the following actions:\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "%d - %s\n", i+1, step)
	}
	if len(format) > 0 {
		b.WriteString("\nUse the following format:\n")
		for _, line := range format {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nText: ")
	b.WriteString(Fence(d, text))
	return b.String()
}

// WorkOutFirst makes the model solve the problem itself before grading the
// student's solution, instead of rushing to a verdict.
func WorkOutFirst(problem, studentSolution string) string {
	return `Your task is to determine if the student's solution is correct or not.
To solve the problem do the following:
- First, work out your own solution to the problem including the final total.
- Then compare your solution to the student's solution and evaluate if the student's solution is correct or not.
Don't decide if the student's solution is correct until you have done the problem yourself.

Use the following format:
Question:
` + "```" + `
question here
` + "```" + `
Student's solution:
` + "```" + `
student's solution here
` + "```" + `
Actual solution:
` + "```" + `
steps to work out the solution and your solution here
` + "```" + `
Is the student's solution the same as actual solution just calculated:
` + "```" + `
yes or no
` + "```" + `
Student grade:
` + "```" + `
correct or incorrect
` + "```" + `

Question:
` + Fence(Backticks, "\n"+problem+"\n") + `
Student's solution:
` + Fence(Backticks, "\n"+studentSolution+"\n") + `
Actual solution:`
}

// ProductDescription turns a technical fact sheet into marketing copy for the
// given audience, capped at maxWords when positive.
func ProductDescription(factSheet, audience string, maxWords int) string {
	var b strings.Builder
	b.WriteString("Your task is to help a marketing team create a description for a retail website of a product based on a technical fact sheet.\n\n")
	b.WriteString("Write a product description based on the information provided in the technical specifications delimited by triple backticks.\n")
	if audience != "" {
		fmt.Fprintf(&b, "\nThe description is intended for %s, so tailor its wording and the details it covers to them.\n", audience)
	}
	if maxWords > 0 {
		fmt.Fprintf(&b, "\nUse at most %d words.\n", maxWords)
	}
	b.WriteString("\nTechnical specifications: ")
	b.WriteString(Fence(Backticks, factSheet))
	return b.String()
}
