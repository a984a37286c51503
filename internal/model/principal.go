package model

import "github.com/google/uuid"

type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   string
}

func (p Principal) IsManager() bool {
	return p.Role == "MANAGER" || p.Role == "ADMIN"
}

func (p Principal) IsForeman() bool {
	return p.Role == "FOREMAN"
}

func (p Principal) IsViewer() bool {
	return p.Role == "VIEWER"
}
