package rtms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamSignature_KnownVector(t *testing.T) {
	// hex(HMAC-SHA256("topsecret", "client123,meeting-uuid-1,stream-abc"))
	got := StreamSignature("client123", "meeting-uuid-1", "stream-abc", "topsecret")
	assert.Equal(t, "5af5d4ee5ed101bb073c8cc154c3dd79306fca2ec217b700d87d4d30f0c4b356", got)
}

func TestStreamSignature_DependsOnEveryInput(t *testing.T) {
	base := StreamSignature("a", "b", "c", "secret")
	assert.NotEqual(t, base, StreamSignature("x", "b", "c", "secret"))
	assert.NotEqual(t, base, StreamSignature("a", "x", "c", "secret"))
	assert.NotEqual(t, base, StreamSignature("a", "b", "x", "secret"))
	assert.NotEqual(t, base, StreamSignature("a", "b", "c", "other"))
}
