package hitbtc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints_AreUnique(t *testing.T) {
	seen := make(map[Endpoint]bool, len(endpoints))
	for _, ep := range endpoints {
		assert.False(t, seen[ep], "duplicate endpoint %s %s %s", ep.API, ep.Method, ep.Path)
		seen[ep] = true
	}
}

func TestEndpoints_PrivateWritesAreNotGet(t *testing.T) {
	writes := []Endpoint{privateCreateOrder, privateWithdraw, privateTransfer, privateCommitWithdraw, privateCancelOrder}
	for _, ep := range writes {
		assert.Equal(t, Private, ep.API)
		assert.NotEqual(t, "GET", ep.Method, ep.Path)
	}
}
