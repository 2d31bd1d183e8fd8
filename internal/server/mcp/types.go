package mcp

// Tool arguments. Schemas are inferred by the SDK from these structs.

type CreateLanguageArgs struct{}

type TranslateArgs struct {
	ID   string `json:"id" jsonschema:"Language id returned by create_language"`
	Text string `json:"text" jsonschema:"Text to translate; split on whitespace"`
}

type GenerateWordsArgs struct {
	ID           string `json:"id" jsonschema:"Language id returned by create_language"`
	Count        int    `json:"count,omitempty" jsonschema:"Number of words to generate (default 5)"`
	MinSyllables int    `json:"min_syllables,omitempty" jsonschema:"Minimum syllables per word (default 1)"`
}

type ValidateWordArgs struct {
	ID   string `json:"id" jsonschema:"Language id returned by create_language"`
	Word string `json:"word" jsonschema:"Word to check"`
}

type LanguageArgs struct {
	ID string `json:"id" jsonschema:"Language id returned by create_language"`
}

// Tool results, encoded as JSON text content

type WordsResult struct {
	Words []string `json:"words"`
}

type ValidateResult struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}
