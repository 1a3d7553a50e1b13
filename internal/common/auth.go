package common

import "encoding/json"

// AuthPayload carries everything needed to identify a user. It is stored as
// plain JSON; nothing here hashes or encrypts the passphrase.
type AuthPayload struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}

// UnmarshalJSON also accepts the older {"username": ...} spelling.
func (p *AuthPayload) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name       string `json:"name"`
		Username   string `json:"username"`
		Passphrase string `json:"passphrase"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Name = raw.Name
	if p.Name == "" {
		p.Name = raw.Username
	}
	p.Passphrase = raw.Passphrase
	return nil
}
