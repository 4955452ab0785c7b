package models

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Phone        string `json:"phone" db:"phone"`
	Token        string `json:"-" db:"token"`
}

// PublicUser is the projection of a user that is safe to return to any
// caller: no password hash, no token.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// Item carries a denormalized copy of its owner taken at creation time
// (owner_* columns). Later edits to the user do not touch the copy.
type Item struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Image       string `json:"image" db:"image"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
	OwnerName   string `json:"-" db:"owner_name"`
	OwnerEmail  string `json:"-" db:"owner_email"`
	OwnerPhone  string `json:"-" db:"owner_phone"`
}

// ItemResponse is the wire shape of an item: the owner snapshot is
// rendered as a nested user object.
type ItemResponse struct {
	ID          int64      `json:"id"`
	Image       string     `json:"image"`
	CreatedAt   int64      `json:"created_at"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	UserID      int64      `json:"user_id"`
	User        PublicUser `json:"user"`
}

func (i *Item) Response() ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Image:       i.Image,
		CreatedAt:   i.CreatedAt,
		Title:       i.Title,
		Description: i.Description,
		UserID:      i.UserID,
		User: PublicUser{
			ID:    i.UserID,
			Name:  i.OwnerName,
			Email: i.OwnerEmail,
			Phone: i.OwnerPhone,
		},
	}
}
