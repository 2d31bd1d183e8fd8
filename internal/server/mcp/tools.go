package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultWordCount = 5

func (s *Server) handleCreateLanguage(ctx context.Context, req *sdk.CallToolRequest, args CreateLanguageArgs) (*sdk.CallToolResult, any, error) {
	info, err := s.service.CreateLanguage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create language: %w", err)
	}
	s.log.Infof("mcp: created language %s", info.ID)
	return jsonResult(info)
}

func (s *Server) handleTranslate(ctx context.Context, req *sdk.CallToolRequest, args TranslateArgs) (*sdk.CallToolResult, any, error) {
	tr, err := s.service.Translate(ctx, args.ID, args.Text)
	if err != nil {
		return nil, nil, fmt.Errorf("translation failed: %w", err)
	}
	return jsonResult(tr)
}

func (s *Server) handleGenerateWords(ctx context.Context, req *sdk.CallToolRequest, args GenerateWordsArgs) (*sdk.CallToolResult, any, error) {
	count := args.Count
	if count == 0 {
		count = defaultWordCount
	}
	minSyllables := args.MinSyllables
	if minSyllables == 0 {
		minSyllables = 1
	}

	words, err := s.service.Words(ctx, args.ID, count, minSyllables)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate words: %w", err)
	}
	return jsonResult(WordsResult{Words: words})
}

func (s *Server) handleValidateWord(ctx context.Context, req *sdk.CallToolRequest, args ValidateWordArgs) (*sdk.CallToolResult, any, error) {
	valid, err := s.service.Validate(ctx, args.ID, args.Word)
	if err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}
	return jsonResult(ValidateResult{Word: args.Word, Valid: valid})
}

func (s *Server) handleDescribeGrammar(ctx context.Context, req *sdk.CallToolRequest, args LanguageArgs) (*sdk.CallToolResult, any, error) {
	g, err := s.service.Grammar(ctx, args.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get grammar: %w", err)
	}

	content := []sdk.Content{
		&sdk.TextContent{Text: fmt.Sprintf("Word order: %v", g.WordOrder)},
	}
	for _, rule := range g.PhraseStructure {
		content = append(content, &sdk.TextContent{Text: fmt.Sprintf("- %s", rule)})
	}
	return &sdk.CallToolResult{Content: content}, nil, nil
}

func (s *Server) handleDescribePhonemes(ctx context.Context, req *sdk.CallToolRequest, args LanguageArgs) (*sdk.CallToolResult, any, error) {
	inv, err := s.service.Inventory(ctx, args.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get phonemes: %w", err)
	}
	return jsonResult(inv)
}

func jsonResult(v any) (*sdk.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
	}, nil, nil
}
