package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBundlePreviewExcludedFromJSON tests that the raw preview bytes never
// travel over the wire; only line item attributes carry the preview URI.
func TestBundlePreviewExcludedFromJSON(t *testing.T) {
	bundle := Bundle{
		ID:           "b1",
		PreviewImage: []byte("<svg/>"),
		ZoneNames:    []string{"Front"},
		LineItems: []LineItem{{
			MerchandiseID: "tumbler-20oz-brass",
			Quantity:      1,
			Attributes:    map[string]string{AttrBundleID: "b1"},
		}},
	}

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "<svg/>")
	assert.Contains(t, string(raw), "b1")
}

// TestLineItemAttributeKeys tests the underscore-prefixed attribute contract
// the external cart consumer relies on for cascading removal.
func TestLineItemAttributeKeys(t *testing.T) {
	for _, key := range []string{AttrBundleID, AttrZones, AttrPreview, AttrTierLabel, AttrCharacterOverflow, AttrFeeType} {
		assert.Equal(t, byte('_'), key[0], "attribute %q must be underscore-prefixed", key)
	}
}
