package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	want := primitive.NewObjectID()

	got, err := ParseID(want.Hex())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, raw := range []string{
		"",
		"abc",
		"zzzzzzzzzzzzzzzzzzzzzzzz",
		want.Hex() + "00",
		"123456789012",
		" " + want.Hex(),
		want.Hex() + "\t",
		"\n" + want.Hex() + " ",
	} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}
