package mcp

import (
	"context"

	"github.com/emmett/conlang/internal/app"
	"github.com/emmett/conlang/internal/logging"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type Config struct {
	ServerName    string
	ServerVersion string
}

type Server struct {
	config    Config
	mcpServer *sdk.Server
	service   *app.Service
	log       *logging.Logger
}

func NewServer(cfg Config, service *app.Service, log *logging.Logger) *Server {
	s := &Server{
		config:  cfg,
		service: service,
		log:     log,
	}

	// Create MCP server
	s.mcpServer = sdk.NewServer(&sdk.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, nil)

	// Register tools
	s.registerTools()

	return s
}

// Start serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects
func (s *Server) Start(ctx context.Context) error {
	return s.Run(ctx, &sdk.StdioTransport{})
}

// Run serves MCP over transport
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) Stop() error {
	return s.service.Close()
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "create_language",
		Description: "Create a new random constructed language and return its phonemes, syllable templates and example words",
	}, s.handleCreateLanguage)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "translate",
		Description: "Replace every word of the text with a freshly generated word of the language (no meaning is carried over)",
	}, s.handleTranslate)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "generate_words",
		Description: "Generate random words in a language",
	}, s.handleGenerateWords)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "validate_word",
		Description: "Check whether a word uses only the language's phonemes",
	}, s.handleValidateWord)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "describe_grammar",
		Description: "Show the word order, phrase structure rules and morphology of a language",
	}, s.handleDescribeGrammar)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "describe_phonemes",
		Description: "List a language's consonants and vowels with their articulatory features",
	}, s.handleDescribePhonemes)
}
