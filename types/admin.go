package types

// AdminUser 管理后台用户列表项
type AdminUser struct {
	ProfileResponse
	ResourceCount int64 `json:"resource_count"`
}

type ToggleRoleResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type PurgeNotesResponse struct {
	Deleted  int      `json:"deleted"`
	Warnings []string `json:"warnings,omitempty"`
}
