// go-models/versioned.go
package models

// Versioned adds optimistic-lock helpers. Embed it anonymously.
// The version is a storage detail and never leaves the API.
type Versioned struct {
	RowVersion int64 `json:"-"`
}

// ----- interface helpers -----
func (v *Versioned) GetRowVersion() int64  { return v.RowVersion }
func (v *Versioned) SetRowVersion(n int64) { v.RowVersion = n }
