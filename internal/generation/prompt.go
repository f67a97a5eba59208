package generation

import (
	"bytes"
	"strings"
)

const (
	noQuotesInstruction   = "\nDo not put quotation marks or escape character \\ in the output fields."
	listChoiceInstruction = "\nIf output field is a list, classify output into the best element of the list."
	dynamicInstruction    = "\nAny text enclosed by < and > indicates you must generate content to replace it. " +
		"Example input: Go to <location>, Example output: Go to the garden" +
		"\nAny output key containing < and > indicates you must generate the key name to replace it. " +
		"Example input: {'<location>': 'description of location'}, Example output: {school: a place for education}"
	listInputInstruction = "\nGenerate an array of json, one json for each input element."
)

// ComposePrompt builds the full instruction text for one attempt.
// errorContext is empty on the first attempt and carries the previous
// attempt's output and failure reason afterwards.
func ComposePrompt(systemPrompt string, userPrompts []string, schema Schema, errorContext string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString(outputFormatPrompt(schema, len(userPrompts) > 1))
	b.WriteString(errorContext)
	b.WriteString("\n")
	b.WriteString(renderUserPrompts(userPrompts))
	return b.String()
}

func outputFormatPrompt(schema Schema, listInput bool) string {
	var b strings.Builder
	b.WriteString("\nYou must output an array of objects in the following json format: ")
	b.WriteString(schema.String())
	b.WriteString(".")
	b.WriteString(noQuotesInstruction)
	// Output is always an array, so enumerated fields always need the hint.
	b.WriteString(listChoiceInstruction)
	if schema.HasDynamic() {
		b.WriteString(dynamicInstruction)
	}
	if listInput {
		b.WriteString(listInputInstruction)
	}
	return b.String()
}

func renderUserPrompts(userPrompts []string) string {
	switch len(userPrompts) {
	case 0:
		return ""
	case 1:
		return userPrompts[0]
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, userPrompts); err != nil {
		return strings.Join(userPrompts, "\n")
	}
	return buf.String()
}
