package grpc

import (
	"context"
	"errors"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/emmett/conlang/internal/app"
	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/session"
)

// LexiconServiceName is the fully qualified gRPC service name
const LexiconServiceName = "conlang.v1.Lexicon"

// LexiconServer is the server API for the conlang.v1.Lexicon service.
// Messages are protobuf well-known types so no generated code is needed.
type LexiconServer interface {
	CreateLanguage(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Translate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Validate(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	StreamWords(*structpb.Struct, grpc.ServerStreamingServer[wrapperspb.StringValue]) error
}

// RegisterLexiconServer registers srv on s
func RegisterLexiconServer(s grpc.ServiceRegistrar, srv LexiconServer) {
	s.RegisterService(&lexiconServiceDesc, srv)
}

var lexiconServiceDesc = grpc.ServiceDesc{
	ServiceName: LexiconServiceName,
	HandlerType: (*LexiconServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateLanguage", Handler: createLanguageHandler},
		{MethodName: "Translate", Handler: translateHandler},
		{MethodName: "Validate", Handler: validateHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamWords", Handler: streamWordsHandler, ServerStreams: true},
	},
	Metadata: "conlang/v1/lexicon.proto",
}

func createLanguageHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LexiconServer).CreateLanguage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + LexiconServiceName + "/CreateLanguage"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LexiconServer).CreateLanguage(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func translateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LexiconServer).Translate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + LexiconServiceName + "/Translate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LexiconServer).Translate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func validateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LexiconServer).Validate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + LexiconServiceName + "/Validate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LexiconServer).Validate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func streamWordsHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LexiconServer).StreamWords(in, &grpc.GenericServerStream[structpb.Struct, wrapperspb.StringValue]{ServerStream: stream})
}

// LexiconService implements LexiconServer on top of app.Service
type LexiconService struct {
	service *app.Service
}

// NewLexiconService creates a new lexicon service
func NewLexiconService(service *app.Service) *LexiconService {
	return &LexiconService{service: service}
}

// CreateLanguage creates a language and returns its id, phonemes, syllable
// templates and example words
func (s *LexiconService) CreateLanguage(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	info, err := s.service.CreateLanguage(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"id":                 info.ID,
		"name":               info.Name,
		"phonemes":           toList(info.Phonemes),
		"syllable_structure": toList(info.SyllableStructure),
		"example_words":      toList(info.ExampleWords),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode language: %v", err)
	}
	return out, nil
}

// Translate expects {"id": string, "text": string}
func (s *LexiconService) Translate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, text := stringField(req, "id"), stringField(req, "text")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	tr, err := s.service.Translate(ctx, id, text)
	if err != nil {
		return nil, toStatus(err)
	}

	mapping := make(map[string]interface{}, len(tr.WordMapping))
	for k, v := range tr.WordMapping {
		mapping[k] = v
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"original":     tr.Original,
		"translated":   tr.Translated,
		"word_mapping": mapping,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode translation: %v", err)
	}
	return out, nil
}

// Validate expects {"id": string, "word": string}
func (s *LexiconService) Validate(ctx context.Context, req *structpb.Struct) (*wrapperspb.BoolValue, error) {
	id := stringField(req, "id")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	valid, err := s.service.Validate(ctx, id, stringField(req, "word"))
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Bool(valid), nil
}

// StreamWords expects {"id": string, "count": number, "min_syllables": number}
// and sends one word per message
func (s *LexiconService) StreamWords(req *structpb.Struct, stream grpc.ServerStreamingServer[wrapperspb.StringValue]) error {
	id := stringField(req, "id")
	if id == "" {
		return status.Error(codes.InvalidArgument, "id is required")
	}
	count, err := intField(req, "count", 1)
	if err != nil {
		return err
	}
	minSyllables, err := intField(req, "min_syllables", 1)
	if err != nil {
		return err
	}

	words, err := s.service.Words(stream.Context(), id, count, minSyllables)
	if err != nil {
		return toStatus(err)
	}

	for _, w := range words {
		if err := stream.Send(wrapperspb.String(w)); err != nil {
			return err
		}
	}
	return nil
}

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

// intField reads a whole number, or def when the field is absent.
// Fractions, NaN, infinities and non-numbers are InvalidArgument.
func intField(s *structpb.Struct, name string, def int) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return def, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	f := n.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a whole number, got %v", name, f)
	}
	return int(f), nil
}

func toList(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}

// toStatus maps service errors onto gRPC status codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, phonology.ErrInvalidParameter):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, phonology.ErrConfiguration):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
