package domain

// User is the signed-in account as stored under the "user" key.
type User struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// IsValid reports whether the record identifies a user.
func (u User) IsValid() bool {
	return u.ID != ""
}
