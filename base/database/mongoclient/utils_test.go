package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Mohit8269/Action-House/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type patchableListing struct {
		ItemName    *string `bson:"itemName,omitempty"`
		CurrentBid  *int64  `bson:"currentBid,omitempty"`
		Description string  `bson:"description"`
		Seller      string  `bson:"seller"`
	}

	patchable := &patchableListing{}
	patchable.ItemName = ptr.String("")
	patchable.CurrentBid = ptr.Int64(110)
	patchable.Seller = "alice"

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"itemName":   "",
			"currentBid": int64(110),
			// description is empty, so ignored
			"seller": "alice",
		},
		updater,
	)
}
