// File: internal/profile/model.go
package profile

import "encoding/json"

// Photo is one entry of a user's photo list.
type Photo struct {
	Value string `json:"value"`
}

// User is the authoritative profile as returned by the profile backend.
//
// Optional keys are pointers so that an absent key can be told apart from an
// empty value: a user without displayName or photos is treated as not yet loaded.
type User struct {
	OAuthID     string   `json:"oAuthId,omitempty"`
	Username    string   `json:"username,omitempty"`
	DisplayName *string  `json:"displayName,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Photos      *[]Photo `json:"photos,omitempty"`

	// keyed is set when a decoded object had keys but every known value was zero.
	keyed bool
}

// UnmarshalJSON records whether the object carried any key at all.
func (u *User) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	type alias User
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*u = User(a)
	u.keyed = len(keys) > 0 && u.OAuthID == "" && u.Username == "" &&
		u.DisplayName == nil && u.Email == nil && u.Photos == nil
	return nil
}

// MarshalJSON keeps a keyed but zero-valued user from collapsing into {}.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	raw, err := json.Marshal(alias(u))
	if err != nil {
		return nil, err
	}
	if u.keyed && string(raw) == "{}" {
		return []byte(`{"username":""}`), nil
	}
	return raw, nil
}

// IsEmpty reports whether u carries no keys at all. A nil user is empty.
// A decoded user such as {"username":""} has a key and is not empty.
func (u *User) IsEmpty() bool {
	if u == nil {
		return true
	}
	return !u.keyed && u.OAuthID == "" && u.Username == "" &&
		u.DisplayName == nil && u.Email == nil && u.Photos == nil
}

// HasExpectedShape reports whether both displayName and photos are present.
func (u *User) HasExpectedShape() bool {
	return u != nil && u.DisplayName != nil && u.Photos != nil
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.DisplayName != nil {
		cp.DisplayName = String(*u.DisplayName)
	}
	if u.Email != nil {
		cp.Email = String(*u.Email)
	}
	if u.Photos != nil {
		photos := append([]Photo(nil), (*u.Photos)...)
		cp.Photos = &photos
	}
	return &cp
}

// UpdateRequest is the body sent to POST {baseURL}/user.
type UpdateRequest struct {
	OAuthID     string `json:"oAuthId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Envelope is the response shape shared by the profile endpoints.
type Envelope struct {
	User *User `json:"user"`
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// PhotoList returns a pointer to a photo list built from the given URLs.
func PhotoList(urls ...string) *[]Photo {
	photos := make([]Photo, 0, len(urls))
	for _, u := range urls {
		photos = append(photos, Photo{Value: u})
	}
	return &photos
}
