package model

// Actor identifies who performs a mutating operation.
// Repositories check it against the author of the record being changed.
type Actor struct {
	UserID string
	Role   Role
}

// BotActor authors the assistant replies posted into chat.
var BotActor = Actor{UserID: BotUserID, Role: RoleGuest}

func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

func (a Actor) IsTrainer() bool {
	return a.Role == RoleTrainer
}

// CanModify reports whether the actor may edit or delete a record
// written by authorID: its author or any Trainer.
func (a Actor) CanModify(authorID string) bool {
	if !a.Authenticated() {
		return false
	}
	return a.UserID == authorID || a.IsTrainer()
}
