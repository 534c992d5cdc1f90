package fill

import "fmt"

const promptTemplate = `Fill out this JSON template completely. Keep all keys and their structure exactly the same, only replace the values.
Write realistic, science-like academic content in a formal scholarly tone.
The headline and the content should fit the topic: "%s".
The text must be in English.
Return only the pure JSON without explanations, comments, or Markdown formatting.

Return the JSON exactly in the same formatting, indentation, and multi-line layout as the example below.
Keep all line breaks and spaces exactly the same as in the template.
Do not output in a single line.
Output nothing except the JSON.

%s
`

// BuildPrompt embeds the topic and the raw stub text into the fill instruction.
func BuildPrompt(topic, stubText string) string {
	return fmt.Sprintf(promptTemplate, topic, stubText)
}
