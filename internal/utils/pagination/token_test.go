package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeIDToken(t *testing.T) {
	token := EncodeIDToken(4821)
	assert.NotEmpty(t, token, "Token should not be empty")

	id, err := DecodeIDToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, int64(4821), id)
}

func TestDecodeIDToken_Invalid(t *testing.T) {
	_, err := DecodeIDToken("!!not-base64!!")
	assert.Error(t, err, "Should error on invalid base64")

	_, err = DecodeIDToken(EncodeIDToken(0))
	assert.Error(t, err, "Should reject non-positive ids")

	_, err = DecodeIDToken("YWJj") // "abc"
	assert.Error(t, err, "Should reject non-numeric payload")
}
