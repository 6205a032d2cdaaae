package domain

// UserAccount mirrors the user_accounts table. JSON names are the column names
// clients already use.
type UserAccount struct {
	ID       int64  `json:"Id"`
	IDNumber string `json:"IdNumber"`
	FullName string `json:"FullName"`
	Username string `json:"Username"`
	// Stored exactly as submitted; hashing is not done at this layer.
	Password string `json:"Password"`
	Section  string `json:"Section"`
	Role     string `json:"Role"`
}

// AccountInput is the caller-supplied field set for create and full-replace update.
type AccountInput struct {
	IDNumber string
	FullName string
	Username string
	Password string
	Section  string
	Role     string
}

// Record builds the stored shape of in under id.
func (in AccountInput) Record(id int64) UserAccount {
	return UserAccount{
		ID:       id,
		IDNumber: in.IDNumber,
		FullName: in.FullName,
		Username: in.Username,
		Password: in.Password,
		Section:  in.Section,
		Role:     in.Role,
	}
}
