package prompt

// ReplyToReview drafts a customer service email answering review, thanking
// or apologising depending on sentiment.
func ReplyToReview(review, sentiment string) string {
	return `You are a customer service AI assistant.
Your task is to send an email reply to a valued customer.
Given the customer email delimited by triple backticks, generate a reply to thank the customer for their review.
If the sentiment is positive or neutral, thank them for their review.
If the sentiment is negative, apologize and suggest that they can reach out to customer service.
Make sure to use specific details from the review.
Write in a concise and professional tone.
Sign the email as ` + "`AI customer agent`" + `.
Customer review: ` + Fence(Backticks, review) + `
Review sentiment: ` + sentiment
}
