// Package models defines the documents persisted by the server and the
// limits enforced on them at registration time.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Username and password limits (enforced by UserService.Register).
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 8
)

// User is a credential document. HashedPassword is the bcrypt output and
// is opaque to everything except auth.VerifyPassword.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	HashedPassword string             `bson:"hashed_password"`
}
