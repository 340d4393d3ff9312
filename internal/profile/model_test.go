package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"bob@x.com", true},
		{"  jane.doe@example.org ", true},
		{"", false},
		{"   ", false},
		{"not-an-email", false},
		{"a@", false},
		{"@b.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.in), "input %q", tt.in)
	}
}

func TestSubmittableEmail(t *testing.T) {
	assert.Equal(t, "bob@x.com", SubmittableEmail("bob@x.com"))
	assert.Equal(t, "", SubmittableEmail("bob at x dot com"))
	assert.Equal(t, "", SubmittableEmail(""))
	assert.Equal(t, "bob@x.com", SubmittableEmail("  bob@x.com "))
	assert.True(t, ValidEmail(SubmittableEmail("\tbob@x.com\n")), "what is submitted must validate on its own")
}

func TestUser_ShapeDetection(t *testing.T) {
	var empty User
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.HasExpectedShape())

	var nilUser *User
	assert.True(t, nilUser.IsEmpty())
	assert.False(t, nilUser.HasExpectedShape())

	var partial User
	require.NoError(t, json.Unmarshal([]byte(`{"username":"bob","displayName":""}`), &partial))
	assert.False(t, partial.IsEmpty())
	assert.False(t, partial.HasExpectedShape(), "photos key is missing")

	var full User
	require.NoError(t, json.Unmarshal([]byte(`{"username":"bob","displayName":"","photos":[]}`), &full))
	assert.True(t, full.HasExpectedShape())
}

func TestUser_ZeroValuedKeyIsNotEmpty(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"username":""}`), &u))
	assert.False(t, u.IsEmpty())
	assert.False(t, u.HasExpectedShape())
	assert.False(t, u.Clone().IsEmpty(), "clones keep key presence")

	raw, err := json.Marshal(&u)
	require.NoError(t, err)
	var again User
	require.NoError(t, json.Unmarshal(raw, &again))
	assert.False(t, again.IsEmpty(), "key presence survives a round trip through storage")

	raw, err = json.Marshal(&User{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestUser_CloneIsDeep(t *testing.T) {
	orig := &User{Username: "bob", DisplayName: String("Bob"), Photos: PhotoList("/a.png")}
	cp := orig.Clone()

	*cp.DisplayName = "Changed"
	(*cp.Photos)[0].Value = "/b.png"

	assert.Equal(t, "Bob", *orig.DisplayName)
	assert.Equal(t, "/a.png", (*orig.Photos)[0].Value)
}
