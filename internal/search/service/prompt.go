package service

import "strings"

// The trailing spaces on the first two lines and after "Answer:" are part of the template.
const promptTemplate = "You are a helpful AI assistant with expertise in programming, technology, and general knowledge. \n" +
	"Please provide a clear, direct, and accurate answer to the following question. \n" +
	"If the question is about code or technical topics, include relevant code examples or step-by-step instructions.\n" +
	"\n" +
	"Question: {query}\n" +
	"\n" +
	"Answer: "

// BuildPrompt embeds query verbatim into the prompt template.
func BuildPrompt(query string) string {
	return strings.Replace(promptTemplate, "{query}", query, 1)
}
