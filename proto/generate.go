// Package analyzerv1 holds the gRPC contract for local analyzer sidecars.
// The Go bindings are generated from analyzer.proto and are not committed.
package analyzerv1

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative analyzer.proto
