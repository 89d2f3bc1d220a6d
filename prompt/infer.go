package prompt

import (
	"fmt"
	"strings"
)

// Sentiment asks for a one-word positive or negative verdict on review.
func Sentiment(review string) string {
	return `What is the sentiment of the following product review, which is delimited with triple backticks?

Give your answer as a single word, either "positive" or "negative".

Review text: ` + Fence(Backticks, review)
}

// Emotions asks for at most five emotions the writer of review expresses.
func Emotions(review string) string {
	return `Identify a list of emotions that the writer of the following review is expressing. Include no more than five items in the list. Format your answer as a list of lower-case words separated by commas.

Review text: ` + Fence(Backticks, review)
}

// ReviewFacts extracts sentiment, anger, item and brand from review as JSON.
func ReviewFacts(review string) string {
	return `Identify the following items from the review text:
- Sentiment (positive or negative)
- Is the reviewer expressing anger? (true or false)
- Item purchased by reviewer
- Company that made the item

The review is delimited with triple backticks. Format your response as a JSON object with "Sentiment", "Anger", "Item" and "Brand" as the keys.
If the information isn't present, use "unknown" as the value.
Make your response as short as possible.
Format the Anger value as a boolean.

Review text: ` + Fence(Backticks, review)
}

// InferTopics asks for n short topics discussed in text.
func InferTopics(text string, n int) string {
	return fmt.Sprintf(`Determine %d topics that are being discussed in the following text, which is delimited by triple backticks.

Make each item one or two words long.

Format your response as a list of items separated by commas.

Text sample: `, n) + Fence(Backticks, text)
}

// TopicPresence asks, for each topic, whether text discusses it (1) or not (0).
func TopicPresence(text string, topics []string) string {
	return `Determine whether each item in the following list of topics is a topic in the text below, which is delimited with triple backticks.

Give your answer as list with 0 or 1 for each topic.

List of topics: ` + strings.Join(topics, ", ") + `

Text sample: ` + Fence(Backticks, text)
}
