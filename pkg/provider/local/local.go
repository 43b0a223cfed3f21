// Package local adapts a gRPC analyzer sidecar to the provider event set.
// The sidecar hosts a locally served model and streams AnalyzeResponse
// messages over the analyzer.v1 protocol.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/pricing"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
	analyzerv1 "github.com/qqringman/anr-tombstone-ai-analyzer-sub000/proto"
)

// Adapter calls a local analyzer sidecar over gRPC.
type Adapter struct {
	conn   *grpc.ClientConn
	client analyzerv1.AnalyzerServiceClient
}

// New dials the sidecar. The connection is lazy; failures surface on the
// first Stream call.
func New(addr string) (*Adapter, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to analyzer sidecar at %s: %w", addr, err)
	}
	return &Adapter{
		conn:   conn,
		client: analyzerv1.NewAnalyzerServiceClient(conn),
	}, nil
}

// NewWithClient wraps an existing service client, typically for tests.
func NewWithClient(client analyzerv1.AnalyzerServiceClient) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) Name() models.ProviderType { return models.ProviderLocal }

func (a *Adapter) Models() pricing.Catalog {
	catalog, _ := pricing.CatalogFor(models.ProviderLocal)
	return catalog
}

func (a *Adapter) ModelForMode(mode models.AnalysisMode) (string, error) {
	return pricing.ModelForMode(models.ProviderLocal, mode)
}

// Stream opens one Analyze call and pumps sidecar messages into the
// uniform event channel.
func (a *Adapter) Stream(ctx context.Context, req provider.StreamRequest) (<-chan provider.Event, error) {
	if req.Model == "" {
		return nil, errors.New("local: model identifier is required")
	}

	stream, err := a.client.Analyze(ctx, &analyzerv1.AnalyzeRequest{
		Model:           req.Model,
		System:          req.System,
		Prompt:          req.Prompt,
		MaxOutputTokens: int32(req.MaxOutputTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("analyzer sidecar Analyze call failed: %w", err)
	}

	events := make(chan provider.Event, 32)
	go pump(ctx, stream, events)
	return events, nil
}

// Close releases the gRPC connection.
func (a *Adapter) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}

func pump(ctx context.Context, stream grpc.ServerStreamingClient[analyzerv1.AnalyzeResponse], events chan<- provider.Event) {
	defer close(events)

	emit := func(ev provider.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			emit(&provider.EndEvent{})
			return
		}
		if err != nil {
			emit(&provider.ErrorEvent{Message: err.Error(), Retryable: true})
			return
		}
		if ev := fromProto(resp); ev != nil {
			if !emit(ev) {
				return
			}
		}
	}
}

func fromProto(resp *analyzerv1.AnalyzeResponse) provider.Event {
	switch c := resp.Content.(type) {
	case *analyzerv1.AnalyzeResponse_Start:
		return &provider.StartEvent{InputTokens: int(c.Start.InputTokens)}
	case *analyzerv1.AnalyzeResponse_Delta:
		return &provider.DeltaEvent{Text: c.Delta.Text}
	case *analyzerv1.AnalyzeResponse_Usage:
		return &provider.UsageEvent{
			InputTokens:  int(c.Usage.InputTokens),
			OutputTokens: int(c.Usage.OutputTokens),
		}
	case *analyzerv1.AnalyzeResponse_Error:
		return &provider.ErrorEvent{
			Message:   c.Error.Message,
			Retryable: c.Error.Retryable,
		}
	default:
		return nil
	}
}
