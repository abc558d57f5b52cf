// Package mocks provides a tracer that records nothing, for service and
// handler tests that do not assert on spans.
package mocks

import (
	"context"

	"guesthouse/infras/otel"
)

type nopOtel struct{}

func (nopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return nopOtel{}
}

type nopScope struct{}

func (nopScope) AddEvent(string) {}
func (nopScope) End() {}
func (nopScope) SetAttribute(string, any) {}
func (nopScope) SetAttributes(map[string]any) {}
func (nopScope) TraceError(error) {}
func (nopScope) TraceIfError(error) {}

func NewScope() otel.Scope {
	return nopScope{}
}
