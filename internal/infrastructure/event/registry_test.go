package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_RegisterAndGet(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &recordingHandler{}

	registry.Register(handler, "DonationReceived")

	assert.Len(t, registry.GetHandlers("DonationReceived"), 1)
	assert.Empty(t, registry.GetHandlers("FundraiserPublished"))
}

func TestHandlerRegistry_WildcardHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := &recordingHandler{}
	specific := &recordingHandler{}

	registry.Register(wildcard)
	registry.Register(specific, "DonationReceived")

	assert.Len(t, registry.GetHandlers("DonationReceived"), 2)
	assert.Len(t, registry.GetHandlers("FundraiserClosed"), 1)
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &recordingHandler{}

	registry.Register(handler, "DonationReceived", "FundraiserPublished")
	registry.Unregister(handler)

	assert.Empty(t, registry.GetHandlers("DonationReceived"))
	assert.Empty(t, registry.GetHandlers("FundraiserPublished"))
}

func TestHandlerRegistry_UnregisterWildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &recordingHandler{}

	registry.Register(handler)
	registry.Unregister(handler)

	assert.Empty(t, registry.GetHandlers("DonationReceived"))
}

func TestHandlerRegistry_GetAllHandlersDeduplicates(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &recordingHandler{}
	other := &recordingHandler{}

	registry.Register(handler, "DonationReceived", "FundraiserPublished")
	registry.Register(other)

	assert.Len(t, registry.GetAllHandlers(), 2)
}
